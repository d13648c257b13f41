package api

import (
	"encoding/json"
	"net/http"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// renderJSON writes data as a JSON response.
func renderJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError writes a structured error response. Messages are user-facing;
// transport internals never leak here.
func renderError(w http.ResponseWriter, code int, message string) {
	renderJSON(w, code, errorBody{
		Code:    code,
		Message: message,
	})
}
