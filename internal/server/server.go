package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"prospect-pipeline/internal/common/config"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/common/observability"
)

// Server is the pipeline HTTP service.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

// New assembles the router, middleware chain, and CORS policy for the
// pipeline service.
func New(cfg *config.Config, handlers *Handlers, obs *observability.Observability, log logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/parse", handlers.HandleParse)
	mux.HandleFunc("POST /api/run", handlers.HandleRun)
	mux.HandleFunc("GET /health", handlers.HandleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	corsPolicy := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	})

	var handler http.Handler = mux
	handler = withLogging(log, obs, handler)
	handler = withRecovery(log, handler)
	handler = withRequestID(handler)
	handler = corsPolicy.Handler(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Server.PipelineAddr,
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
			WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		},
		logger: log,
	}
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
