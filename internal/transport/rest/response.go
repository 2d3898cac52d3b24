package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordcards/internal/domain"
	"github.com/heartmarshall/wordcards/pkg/ctxutil"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// publicError maps an error to the status and message shown to clients.
func publicError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrMalformedEntry):
		return http.StatusBadGateway, "no usable dictionary entry"
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, "dictionary unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "dictionary timed out"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, msg := publicError(err)
	log = ctxutil.Logger(r.Context(), log)
	switch {
	case status == http.StatusInternalServerError:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
	case status > http.StatusInternalServerError:
		log.WarnContext(r.Context(), "upstream error", slog.String("error", err.Error()))
	}
	writeError(w, status, msg)
}
