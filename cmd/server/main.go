// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"prospect-pipeline/internal/canonical"
	"prospect-pipeline/internal/common/config"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/common/observability"
	"prospect-pipeline/internal/crustdata"
	"prospect-pipeline/internal/llm"
	"prospect-pipeline/internal/pipeline"
	"prospect-pipeline/internal/server"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting pipeline server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Re-create the logger at the configured level and format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log = logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// An absent LLM key is a supported mode; canonicalization then
	// uses the deterministic parser only.
	var completer llm.Completer
	if cfg.LLM.APIKey != "" {
		completer = llm.NewClient(cfg.LLM, log)
	} else {
		zapLog.Warn("CLAUDE_API_KEY not set, canonicalization runs without the LLM")
	}

	canonicalizer := canonical.New(completer, log)
	provider := crustdata.NewClient(cfg.Crustdata, log)
	pipe := pipeline.New(canonicalizer, provider, log)

	handlers := server.NewHandlers(pipe, cfg.Crustdata.APIKey != "", cfg.App.Name, cfg.App.Version, log)
	srv := server.New(cfg, handlers, obs, log)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zapLog.Fatal("server failed", zap.Error(err))
	case sig := <-stop:
		zapLog.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
}
