package handlers

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"

	"github.com/Haipriority/tasksie/internal/transport/http/errors"
	"github.com/Haipriority/tasksie/internal/upstream"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

// forwardUpstream relays the upstream status and body to the browser.
// Non-JSON bodies are wrapped so the client always receives JSON.
func forwardUpstream(w http.ResponseWriter, res upstream.Result) {
	body := bytes.TrimSpace(res.Body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.Status)

	switch {
	case len(body) == 0:
		_, _ = w.Write([]byte("{}"))
	case json.Valid(body):
		_, _ = w.Write(body)
	default:
		_ = json.NewEncoder(w).Encode(map[string]string{"message": string(body)})
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	errors.WriteMessage(w, http.StatusBadRequest, message)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	errors.WriteMessage(w, http.StatusUnauthorized, message)
}

func writeInternal(w http.ResponseWriter, message string) {
	errors.WriteMessage(w, http.StatusInternalServerError, message)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
