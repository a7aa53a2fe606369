package session

import (
	"net/http"
	"strings"
	"time"
)

// CookieName is the browser session cookie. The route gate treats this
// cookie as the single source of truth for navigation gating.
const CookieName = "token"

// Carrier moves the session token across its two transports: the HTTP-only
// cookie written by the BFF and the Authorization header attached by the
// client for API calls.
type Carrier struct {
	secure bool
	ttl    time.Duration
}

func NewCarrier(secure bool, ttl time.Duration) *Carrier {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Carrier{secure: secure, ttl: ttl}
}

func (c *Carrier) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(token, int(c.ttl.Seconds())))
}

// Clear expires the cookie. Name, path and flags must match Set exactly:
// mismatched attributes silently fail to delete the cookie.
func (c *Carrier) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie("", -1))
}

// Read returns the token from the Authorization header if present, then
// from the session cookie.
func (c *Carrier) Read(r *http.Request) (string, bool) {
	if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
		return token, true
	}
	return ReadCookie(r)
}

// ReadCookie returns the token from the session cookie only. The route
// gate uses this: a missing cookie means unauthenticated regardless of any
// header the client attached.
func ReadCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (c *Carrier) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func bearerToken(value string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(value), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return parts[1], true
}
