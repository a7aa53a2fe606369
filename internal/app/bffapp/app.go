package bffapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Haipriority/tasksie/internal/config"
	"github.com/Haipriority/tasksie/internal/ratelimit"
	redrepo "github.com/Haipriority/tasksie/internal/repo/redis"
	"github.com/Haipriority/tasksie/internal/session"
	"github.com/Haipriority/tasksie/internal/upstream"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Warn("jwt secret is not set, every session token will be rejected")
	}

	validator := session.NewValidator(cfg.Auth.JWTSecret)
	carrier := session.NewCarrier(cfg.IsProd(), cfg.Auth.CookieTTL)
	upstreamClient := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)

	var redisClient *goredis.Client
	var loginLimiter *ratelimit.Limiter
	if cfg.Redis.Addr != "" && cfg.RateLimit.LoginPerMinute > 0 {
		redisClient = redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis init failed, login rate limiting disabled", zap.Error(err))
			_ = redisClient.Close()
			redisClient = nil
		} else {
			loginLimiter = ratelimit.NewLimiter(redrepo.NewRateRepo(redisClient), cfg.RateLimit.LoginPerMinute)
		}
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)
	r.Use(RouteGate(validator, log))

	RegisterRoutes(r, Dependencies{
		Upstream:     upstreamClient,
		Carrier:      carrier,
		Validator:    validator,
		LoginLimiter: loginLimiter,
		Logger:       log,
		Config:       cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("bff server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
