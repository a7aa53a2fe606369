package bffapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Haipriority/tasksie/internal/config"
	"github.com/Haipriority/tasksie/internal/ratelimit"
	"github.com/Haipriority/tasksie/internal/session"
	"github.com/Haipriority/tasksie/internal/transport/http/handlers"
	"github.com/Haipriority/tasksie/internal/upstream"
)

type Dependencies struct {
	Upstream     *upstream.Client
	Carrier      *session.Carrier
	Validator    *session.Validator
	LoginLimiter *ratelimit.Limiter
	Logger       *zap.Logger
	Config       config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Upstream, deps.Carrier, deps.LoginLimiter, deps.Logger)
	tasksHandler := handlers.NewTasksHandler(deps.Upstream, deps.Carrier, deps.Validator, deps.Logger)
	healthHandler := handlers.NewHealthHandler()
	pagesHandler := handlers.NewPagesHandler(deps.Config.Static.Dir)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", tasksHandler.List)
		r.Post("/", tasksHandler.Create)
		r.Get("/{id}", tasksHandler.Get)
		r.Patch("/{id}", tasksHandler.Update)
		r.Delete("/{id}", tasksHandler.Delete)
	})

	// Everything else is a page navigation: the route gate has already
	// decided access, the SPA shell takes it from here.
	r.NotFound(pagesHandler.Handle)
}
