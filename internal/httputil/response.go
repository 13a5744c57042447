package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code.
// Marshaling happens before headers are written so an encoding failure
// cannot produce a partial response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// errorBody is the shape of every error response
type errorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// RespondError writes a JSON error response
func RespondError(w http.ResponseWriter, status int, message string) {
	payload, err := json.Marshal(errorBody{Error: message, Status: status})
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
