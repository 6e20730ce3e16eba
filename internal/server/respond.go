package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/repticare/internal/forms"
	"github.com/mesh-intelligence/repticare/pkg/types"
)

type errorResponse struct {
	Error  string            `json:"error,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// writeJSON encodes v before writing the header so an unencodable value
// turns into a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// savedInMemoryOnly reports whether err is only a failed store write. The
// repository has already applied the change, so the handler answers as if it
// succeeded and the failure is logged.
func (a *api) savedInMemoryOnly(err error, op string) bool {
	if !errors.Is(err, types.ErrPersist) {
		return false
	}
	a.log.Warn("change applied but not persisted", zap.String("op", op), zap.Error(err))
	return true
}

// writeError maps repository and validation errors onto HTTP statuses.
func (a *api) writeError(w http.ResponseWriter, err error) {
	var fieldErrs forms.Errors
	switch {
	case errors.As(err, &fieldErrs):
		writeJSON(w, http.StatusBadRequest, errorResponse{Errors: fieldErrs})
	case errors.Is(err, types.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, types.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		a.log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decodeJSON reads the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(types.ErrInvalidInput, err)
	}
	return nil
}
