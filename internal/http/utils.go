package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/pkg/logger"
)

// maxRequestBodySize bounds JSON request bodies
const maxRequestBodySize = 1 << 20

// WriteJSONError writes a JSON error response with the given message and status code.
// It sets the Content-Type header to application/json and automatically formats
// the response as {"error": "message"}.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a JSON request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize)).Decode(dst)
}

// writeServiceError maps domain errors to status codes. Anything unexpected
// is logged and answered with the generic fallback message.
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error, fallback string) {
	var validationErr domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, validationErr.Message, http.StatusBadRequest)
	case domain.IsNotFound(err):
		WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrSaveInProgress):
		WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		log.WithField("error", err.Error()).Error(fallback)
		WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}
