// Package httpx renders JSON responses and maps domain failures onto HTTP
// status codes at the transport boundary.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/llmtrace/internal/query"
	"github.com/emiliopalmerini/llmtrace/internal/tracelog"
)

// JSON writes v with the given status. Encoding failures are logged by the
// caller's middleware recoverer; nothing more can be sent at that point.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// Error maps err onto the response taxonomy. NotFound and validation faults
// are caller-actionable and keep their message; everything else is flattened
// to an opaque body while the full cause goes to the operator log.
func Error(w http.ResponseWriter, log zerolog.Logger, err error) {
	var ve *query.ValidationError
	switch {
	case errors.As(err, &ve):
		JSON(w, http.StatusBadRequest, errorBody{Error: ve.Msg})
	case errors.Is(err, tracelog.ErrNotFound):
		JSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, tracelog.ErrStoreUnavailable):
		log.Error().Err(err).Msg("store unavailable")
		JSON(w, http.StatusServiceUnavailable, errorBody{Error: "service unavailable"})
	default:
		log.Error().Err(err).Msg("request failed")
		JSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
