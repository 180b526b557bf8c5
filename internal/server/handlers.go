// Package server exposes the pipeline over HTTP: a dry-run parse
// endpoint, a full run endpoint, and the usual health and metrics
// surfaces.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"prospect-pipeline/internal/common/apierror"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/pipeline"
)

// promptRequest is the body of both pipeline endpoints.
type promptRequest struct {
	Prompt string `json:"prompt"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Handlers carries the pipeline endpoints' dependencies.
type Handlers struct {
	pipeline       *pipeline.Pipeline
	providerKeySet bool
	service        string
	version        string
	logger         logger.Logger
}

func NewHandlers(p *pipeline.Pipeline, providerKeySet bool, service, version string, log logger.Logger) *Handlers {
	return &Handlers{
		pipeline:       p,
		providerKeySet: providerKeySet,
		service:        service,
		version:        version,
		logger:         log.WithFields(map[string]interface{}{"component": "handlers"}),
	}
}

// HandleParse canonicalizes the prompt and returns payloads and curl
// commands without calling the provider. A missing prompt is the
// caller's fault, never a 500.
func (h *Handlers) HandleParse(w http.ResponseWriter, r *http.Request) {
	prompt, ok := h.readPrompt(w, r)
	if !ok {
		return
	}

	result := h.pipeline.Parse(r.Context(), prompt)
	writeJSON(w, http.StatusOK, result)
}

// HandleRun executes the full pipeline. The provider credential is
// checked up front so a misconfigured deployment fails with a clear
// code instead of four upstream 401s.
func (h *Handlers) HandleRun(w http.ResponseWriter, r *http.Request) {
	prompt, ok := h.readPrompt(w, r)
	if !ok {
		return
	}

	if !h.providerKeySet {
		apierror.WriteJSON(w, apierror.New(apierror.ErrCodeConfigMissing, "CRUSTDATA_API_KEY is not configured"))
		return
	}

	result := h.pipeline.Run(r.Context(), prompt)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: h.service,
		Version: h.version,
	})
}

// readPrompt decodes and validates the request body. It writes the
// error response itself and reports success through the bool.
func (h *Handlers) readPrompt(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.WriteJSON(w, apierror.Wrap(apierror.ErrCodeInvalidRequest, "Request body must be JSON", err))
		return "", false
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		apierror.WriteJSON(w, apierror.New(apierror.ErrCodePromptRequired, "prompt is required"))
		return "", false
	}
	return prompt, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
