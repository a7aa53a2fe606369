package session

import (
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Validator verifies session tokens issued by the upstream auth service.
// An empty secret rejects every token: validation fails closed rather than
// falling back to a default key.
type Validator struct {
	secret []byte
	now    func() time.Time
}

func NewValidator(secret string) *Validator {
	return &Validator{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (v *Validator) Valid(raw string) bool {
	_, ok := v.parse(raw)
	return ok
}

// UserID returns the user identifier carried by a verified token, reading
// the userId claim first and the registered subject as a fallback.
func (v *Validator) UserID(raw string) (string, bool) {
	claims, ok := v.parse(raw)
	if !ok {
		return "", false
	}

	if id := claimString(claims, "userId"); id != "" {
		return id, true
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub, true
	}
	return "", false
}

func (v *Validator) parse(raw string) (jwt.MapClaims, bool) {
	if len(v.secret) == 0 || strings.TrimSpace(raw) == "" {
		return nil, false
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || token == nil || !token.Valid {
		return nil, false
	}

	return claims, true
}

func claimString(claims jwt.MapClaims, key string) string {
	switch value := claims[key].(type) {
	case string:
		return value
	case float64:
		return strconv.FormatInt(int64(value), 10)
	default:
		return ""
	}
}
