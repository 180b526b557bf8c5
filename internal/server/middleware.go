package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"prospect-pipeline/internal/common/apierror"
	"prospect-pipeline/internal/common/logger"
	"prospect-pipeline/internal/common/metrics"
	"prospect-pipeline/internal/common/observability"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDFromContext returns the request ID set by the middleware
// chain, or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// statusRecorder captures the status code a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestID assigns every request a UUID, echoed in the
// X-Request-ID response header.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withLogging logs one line per request and records request metrics.
func withLogging(log logger.Logger, obs *observability.Observability, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		status := strconv.Itoa(rec.status)
		metrics.PipelineRequests.WithLabelValues(r.URL.Path, status).Inc()
		if obs != nil {
			obs.RecordRequest(r.Context(), r.URL.Path, status)
			obs.RecordDuration(r.Context(), r.URL.Path, duration)
		}

		log.Info("request handled", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"durationMs": duration.Milliseconds(),
			"requestId":  RequestIDFromContext(r.Context()),
		})
	})
}

// withRecovery converts handler panics into a JSON 500.
func withRecovery(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("handler panic", map[string]interface{}{
					"path":      r.URL.Path,
					"panic":     rec,
					"requestId": RequestIDFromContext(r.Context()),
				})
				apierror.WriteJSON(w, apierror.New(apierror.ErrCodeInternal, "Internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
