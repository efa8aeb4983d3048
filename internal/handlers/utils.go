package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JadedPigeon/typechecker/internal/effectiveness"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps a lookup failure onto the HTTP status returned for it.
func statusFor(err error) int {
	switch {
	case errors.Is(err, effectiveness.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	switch effectiveness.KindOf(err) {
	case effectiveness.KindNotFound:
		return http.StatusNotFound
	case effectiveness.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
