package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	storage Pinger
	backend string
	log     *slog.Logger
}

func NewHealthChecker(storage Pinger, backend string, log *slog.Logger) *HealthChecker {
	return &HealthChecker{
		storage: storage,
		backend: backend,
		log:     log,
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	var err error
	status := map[string]string{"backend": h.backend}
	overallStatus := http.StatusOK

	if err = h.storage.Ping(req.Context()); err != nil {
		status["storage"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: storage ping", "backend", h.backend, "error", err)
	} else {
		status["storage"] = "ok"
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err = json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", "error", err)
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}
