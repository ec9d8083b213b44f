package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/moneymornings/intake/internal/models"
	"github.com/moneymornings/intake/internal/service"
	"github.com/moneymornings/intake/internal/storage"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// writeServiceError translates the service error taxonomy into HTTP status
// codes: validation failures are client errors, unknown IDs are not found,
// anything else is a server error whose detail stays in the logs.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "application not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseJSONBody decodes the request body into v.
func parseJSONBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
