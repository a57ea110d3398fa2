// Package httputil provides shared JSON response helpers for route handlers
// and middleware.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/nin-supply/commerce/internal/errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes the free-text error envelope used across the API.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}

// WriteError maps an error onto an HTTP response. Service errors keep their
// status and message; anything else is reported as an upstream failure.
func WriteError(w http.ResponseWriter, err error) {
	se := errors.GetServiceError(err)
	if se == nil {
		se = errors.Upstream("request failed", err)
	}
	WriteMessage(w, se.HTTPStatus, se.Message)
}
