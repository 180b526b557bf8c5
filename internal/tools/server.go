package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"prospect-pipeline/internal/common/apierror"
	"prospect-pipeline/internal/common/config"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/llm"
)

// envelope is the request frame of the /mcp endpoint.
type envelope struct {
	ID     interface{}     `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// envelopeReply is the matching response frame.
type envelopeReply struct {
	ID     interface{}    `json:"id"`
	Result interface{}    `json:"result,omitempty"`
	Error  *envelopeError `json:"error,omitempty"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// callParams is the payload of a call_tool request.
type callParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

type completeRequest struct {
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
}

type completeResponse struct {
	Completion string `json:"completion"`
}

// Server is the tools HTTP service. The completer may be nil; the
// completion proxy then answers 503.
type Server struct {
	httpServer *http.Server
	service    *Service
	completer  llm.Completer
	logger     logger.Logger
}

func NewServer(cfg *config.Config, service *Service, completer llm.Completer, log logger.Logger) *Server {
	s := &Server{
		service:   service,
		completer: completer,
		logger:    log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /mcp", s.handleEnvelope)
	mux.HandleFunc("GET /tools", s.handleListTools)
	mux.HandleFunc("POST /api/ai/complete", s.handleComplete)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	corsPolicy := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ToolsAddr,
		Handler:      corsPolicy.Handler(mux),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}
	return s
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("tools server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// handleEnvelope dispatches list_tools and call_tool requests. Tool
// errors travel inside the envelope; only a malformed frame is an
// HTTP-level error.
func (s *Server) handleEnvelope(w http.ResponseWriter, r *http.Request) {
	var env envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		apierror.WriteJSON(w, apierror.Wrap(apierror.ErrCodeInvalidRequest, "Request body must be JSON", err))
		return
	}

	switch env.Method {
	case "list_tools":
		s.reply(w, envelopeReply{ID: env.ID, Result: s.service.Registry().List()})

	case "call_tool":
		var params callParams
		if len(env.Params) > 0 {
			if err := json.Unmarshal(env.Params, &params); err != nil {
				s.replyError(w, env.ID, apierror.Wrap(apierror.ErrCodeInvalidRequest, "Malformed call_tool params", err))
				return
			}
		}
		result, err := s.service.Call(r.Context(), params.Name, params.Arguments)
		if err != nil {
			s.replyError(w, env.ID, apierror.Normalize(err))
			return
		}
		s.reply(w, envelopeReply{ID: env.ID, Result: result})

	default:
		s.replyError(w, env.ID, apierror.New(apierror.ErrCodeInvalidRequest, "Unknown method "+env.Method))
	}
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tools": s.service.Registry().List(),
	})
}

// handleComplete proxies a single completion request to the LLM.
func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	if s.completer == nil {
		apierror.WriteJSON(w, apierror.New(apierror.ErrCodeLLMUnavailable, "LLM credentials are not configured"))
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.WriteJSON(w, apierror.Wrap(apierror.ErrCodeInvalidRequest, "Request body must be JSON", err))
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		apierror.WriteJSON(w, apierror.New(apierror.ErrCodePromptRequired, "prompt is required"))
		return
	}

	completion, err := s.completer.Complete(r.Context(), req.System, req.Prompt)
	if err != nil {
		if errors.Is(err, llm.ErrLLMUnavailable) {
			apierror.WriteJSON(w, apierror.Wrap(apierror.ErrCodeLLMUnavailable, "Completion failed", err))
			return
		}
		apierror.WriteJSON(w, apierror.Normalize(err))
		return
	}

	writeJSON(w, http.StatusOK, completeResponse{Completion: completion})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "tools",
	})
}

func (s *Server) reply(w http.ResponseWriter, reply envelopeReply) {
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) replyError(w http.ResponseWriter, id interface{}, stdErr *apierror.StandardError) {
	writeJSON(w, http.StatusOK, envelopeReply{
		ID: id,
		Error: &envelopeError{
			Code:    string(stdErr.Code),
			Message: stdErr.Message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
