package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response wrapper: every endpoint, success or
// failure, answers with {success, message, data}.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a 200 envelope with the given payload.
func WriteSuccess(w http.ResponseWriter, message string, data any) {
	if data == nil {
		data = []any{}
	}
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// WriteError writes an error envelope. Data is an empty array unless the
// caller provides field-level detail (validation failures).
func WriteError(w http.ResponseWriter, code int, message string, data any) {
	if data == nil {
		data = []any{}
	}
	WriteJSON(w, code, Envelope{Success: false, Message: message, Data: data})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Required for responses carrying tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
