package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dgallion1/pinetree/internal/pine"
	"github.com/dgallion1/pinetree/internal/session"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

// writeError maps domain errors onto status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		var fields []string
		for _, fe := range validationErrs {
			fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
		}
		jsonError(w, "validation failed on "+strings.Join(fields, ", "), http.StatusBadRequest)
		return
	}

	var buildErr *pine.BuildError
	if errors.As(err, &buildErr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   buildErr.Error(),
			"item_id": buildErr.ID,
		})
		return
	}

	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrNoSuchTarget):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrUnknownPart), errors.Is(err, pine.ErrInvalidPrefix):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrTooMany):
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, session.ErrCapacity):
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		s.log.Error("request failed", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
