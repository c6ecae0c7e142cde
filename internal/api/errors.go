package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/menus/internal/contract"
	"github.com/alexanderramin/menus/internal/domain"
)

// statusFor maps an error kind onto its HTTP status and wire name.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (h *MenuHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request_failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		msg = "internal error"
	}
	writeJSON(w, status, contract.ErrorResponse{Error: kind, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Warn("encoding response failed", "error", err.Error())
	}
}
