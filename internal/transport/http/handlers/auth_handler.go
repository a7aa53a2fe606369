package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Haipriority/tasksie/internal/pkg/validate"
	"github.com/Haipriority/tasksie/internal/ratelimit"
	"github.com/Haipriority/tasksie/internal/session"
	"github.com/Haipriority/tasksie/internal/transport/http/dto"
	httperrors "github.com/Haipriority/tasksie/internal/transport/http/errors"
	"github.com/Haipriority/tasksie/internal/upstream"
)

type AuthHandler struct {
	upstream *upstream.Client
	carrier  *session.Carrier
	limiter  *ratelimit.Limiter
	log      *zap.Logger
}

func NewAuthHandler(client *upstream.Client, carrier *session.Carrier, limiter *ratelimit.Limiter, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		upstream: client,
		carrier:  carrier,
		limiter:  limiter,
		log:      log,
	}
}

// Login exchanges credentials with the upstream API. On success the issued
// token is written to the session cookie and the upstream response is
// forwarded verbatim so the client can keep its own copy of the token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if !validate.Required(req.Email) || !validate.Required(req.Password) {
		writeBadRequest(w, "Email and password are required")
		return
	}

	if retryAfter, allowed := h.allowLogin(r); !allowed {
		w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
		httperrors.WriteMessage(w, http.StatusTooManyRequests, "Too many login attempts")
		return
	}

	res, err := h.upstream.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Error("login proxy failed", zap.Error(err))
		writeInternal(w, "Internal server error")
		return
	}

	if token := res.Token(); res.OK() && token != "" {
		h.carrier.Set(w, token)
	}

	forwardUpstream(w, res)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if !validate.Required(req.Email) || !validate.Required(req.Password) {
		writeBadRequest(w, "Email and password are required")
		return
	}

	res, err := h.upstream.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.log.Error("register proxy failed", zap.Error(err))
		writeInternal(w, "Internal server error")
		return
	}

	forwardUpstream(w, res)
}

// Logout expires the session cookie. It is best-effort and idempotent:
// clearing an already-absent cookie is a no-op for the browser and the
// caller always receives 200.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.carrier.Clear(w)
	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}

// Me fetches the authenticated profile from upstream. A 401 from upstream
// also clears the session cookie so a stale token heals itself on the next
// navigation.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := h.carrier.Read(r)
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	res, err := h.upstream.Me(r.Context(), token)
	if err != nil {
		h.log.Error("profile proxy failed", zap.Error(err))
		writeInternal(w, "Internal server error")
		return
	}

	if res.Status == http.StatusUnauthorized {
		h.carrier.Clear(w)
	}

	forwardUpstream(w, res)
}

func (h *AuthHandler) allowLogin(r *http.Request) (int64, bool) {
	retryAfter, allowed, err := h.limiter.AllowLogin(r.Context(), clientIP(r))
	if err != nil {
		// Rate limiting degrades open when the store is unreachable.
		h.log.Warn("login rate limit check failed", zap.Error(err))
		return 0, true
	}
	return retryAfter, allowed
}
