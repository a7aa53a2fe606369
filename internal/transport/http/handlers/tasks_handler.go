package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Haipriority/tasksie/internal/pkg/validate"
	"github.com/Haipriority/tasksie/internal/session"
	"github.com/Haipriority/tasksie/internal/transport/http/dto"
	"github.com/Haipriority/tasksie/internal/upstream"
)

const maxTaskBodyBytes = 1 << 20

// TasksHandler proxies task CRUD calls to the upstream API. It never
// implements task logic itself: it checks for a token, forwards the call
// with the bearer header and relays whatever upstream answered.
type TasksHandler struct {
	upstream  *upstream.Client
	carrier   *session.Carrier
	validator *session.Validator
	log       *zap.Logger
}

func NewTasksHandler(client *upstream.Client, carrier *session.Carrier, validator *session.Validator, log *zap.Logger) *TasksHandler {
	return &TasksHandler{
		upstream:  client,
		carrier:   carrier,
		validator: validator,
		log:       log,
	}
}

func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	token, ok := h.carrier.Read(r)
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	h.forward(w, r, http.MethodGet, "/tasks", token, nil, nil)
}

func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	token, ok := h.carrier.Read(r)
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxTaskBodyBytes))
	if err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	var req dto.CreateTaskRequest
	if err := json.Unmarshal(body, &req); err != nil || !validate.Required(req.Title) {
		writeBadRequest(w, "Title is required")
		return
	}

	h.forward(w, r, http.MethodPost, "/tasks", token, bytes.NewReader(body), nil)
}

func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	token, ok := h.verifiedToken(w, r)
	if !ok {
		return
	}

	h.forward(w, r, http.MethodGet, taskPath(r), token, nil, nil)
}

func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	token, ok := h.verifiedToken(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxTaskBodyBytes))
	if err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	h.forward(w, r, http.MethodPatch, taskPath(r), token, bytes.NewReader(body), nil)
}

// Delete needs a resolvable user id: the userId query parameter wins, the
// token's userId/sub claim is the fallback. Without either the upstream
// route cannot scope the delete, so the request fails before any call.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	token, ok := h.verifiedToken(w, r)
	if !ok {
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID, _ = h.validator.UserID(token)
	}
	if userID == "" {
		writeBadRequest(w, "userId is required")
		return
	}

	query := url.Values{"userId": []string{userID}}
	h.forward(w, r, http.MethodDelete, taskPath(r), token, nil, query)
}

func (h *TasksHandler) forward(w http.ResponseWriter, r *http.Request, method, path, token string, body io.Reader, query url.Values) {
	res, err := h.upstream.Forward(r.Context(), method, path, token, body, query)
	if err != nil {
		h.log.Error("tasks proxy failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		writeInternal(w, "Internal server error")
		return
	}

	forwardUpstream(w, res)
}

// verifiedToken requires a locally verifiable token for item routes,
// mirroring the distinction between the collection routes (presence check
// only) and the id routes (signature check before forwarding).
func (h *TasksHandler) verifiedToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := h.carrier.Read(r)
	if !ok {
		writeUnauthorized(w, "Unauthorized")
		return "", false
	}
	if !h.validator.Valid(token) {
		writeUnauthorized(w, "Invalid token")
		return "", false
	}
	return token, true
}

func taskPath(r *http.Request) string {
	return "/tasks/" + url.PathEscape(chi.URLParam(r, "id"))
}
