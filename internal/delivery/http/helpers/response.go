package helpers

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope for all API responses: success flag, a message
// on failures and mutations, an item count on list responses, and the payload
// on success.
// swagger:model APIResponse
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WriteJSONSuccess writes a success envelope with an optional message and payload.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	writeJSON(w, statusCode, APIResponse{Success: true, Message: message, Data: data})
}

// WriteJSONList writes a success envelope for list responses, including the item count.
func WriteJSONList(w http.ResponseWriter, statusCode int, count int, data any) {
	writeJSON(w, statusCode, APIResponse{Success: true, Count: &count, Data: data})
}

// WriteJSONError writes a failure envelope with the given message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, APIResponse{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}
