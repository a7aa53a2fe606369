package bffapp

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Haipriority/tasksie/internal/gate"
	"github.com/Haipriority/tasksie/internal/session"
)

func ApplyMiddlewares(r chiRouter, log *zap.Logger) {
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(requestLogger(log))
}

// RouteGate intercepts page navigation before any handler runs. It derives
// the per-request authentication state from the session cookie alone,
// applies the gate decision and either passes the request through or
// redirects. Any token decode failure counts as unauthenticated; the gate
// never produces anything but allow-or-redirect.
func RouteGate(validator *session.Validator, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authenticated := false
			if token, ok := session.ReadCookie(r); ok {
				authenticated = validator.Valid(token)
			}

			decision := gate.Decide(r.URL.Path, authenticated)
			if decision.Allow {
				next.ServeHTTP(w, r)
				return
			}

			if log != nil {
				log.Debug("route gate redirect",
					zap.String("path", r.URL.Path),
					zap.String("location", decision.Location),
					zap.Bool("authenticated", authenticated),
				)
			}
			http.Redirect(w, r, decision.Location, http.StatusTemporaryRedirect)
		})
	}
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if log != nil {
				log.Info("http_request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Duration("duration", time.Since(start)),
				)
			}
		})
	}
}

type chiRouter interface {
	Use(middlewares ...func(http.Handler) http.Handler)
}
