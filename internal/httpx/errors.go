package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeError writes a JSON error body with the given status code.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg})
	if cid, ok := GetCorrelationID(ctx); ok {
		slog.Debug("wrote error response", "cid", cid, "status", code)
	}
}

// writeFieldErrors reports per-field validation failures for the JSON API.
func (h *Handler) writeFieldErrors(ctx context.Context, w http.ResponseWriter, errs fieldErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}{Error: "validation failed", Fields: errs})
	if cid, ok := GetCorrelationID(ctx); ok {
		slog.Debug("wrote validation response", "cid", cid, "fields", len(errs))
	}
}
