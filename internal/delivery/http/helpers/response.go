package helpers

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the standardized envelope for all API responses.
// Success reports whether the request achieved its business outcome; a
// request can be well-formed and authenticated and still come back with
// success=false (for example responding to an invitation that was never
// sent). Message is human readable. Data carries the payload when there
// is one.
// swagger:model APIResponse
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// WriteSuccess writes statusCode with success=true and the given message
// and payload.
func WriteSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	writeJSON(w, statusCode, APIResponse{Success: true, Message: message, Data: data})
}

// WriteBusinessRejection writes 200 OK with success=false. Used when the
// request was understood but the domain said no: not invited, already
// responded, not the owner, event not found.
func WriteBusinessRejection(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, APIResponse{Success: false, Message: message})
}

// WriteError writes a protocol-level failure (400, 401, 403, 500) with
// success=false.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, APIResponse{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
