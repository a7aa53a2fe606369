package errors

import (
	"encoding/json"
	"net/http"
)

// Response is the browser-facing error envelope. API failures always
// answer with JSON and a matching status; redirects belong to the route
// gate only.
type Response struct {
	Error string `json:"error"`
}

func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	Write(w, status, Response{Error: message})
}
