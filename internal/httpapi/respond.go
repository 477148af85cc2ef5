package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dejobratic/storefront/internal/apperr"
)

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteMessage writes a JSON error body with an explicit status.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]any{"error": message})
}

// WriteError maps an application error to its HTTP status and writes it.
func WriteError(w http.ResponseWriter, err error) {
	WriteMessage(w, StatusOf(err), err.Error())
}

// StatusOf translates the error taxonomy into HTTP status codes.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidArgument:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
