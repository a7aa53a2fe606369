package httpclient

import (
	"net/http"
	"time"
)

// New returns a client with a hard timeout. Every upstream call goes
// through one of these so a stalled backend cannot pin request handlers.
func New(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
