package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// PagesHandler serves the single-page app shell for navigation routes.
// Unknown paths fall back to index.html so client-side routing works; the
// route gate has already run by the time a request lands here.
type PagesHandler struct {
	staticDir string
}

func NewPagesHandler(staticDir string) *PagesHandler {
	return &PagesHandler{staticDir: staticDir}
}

func (h *PagesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.staticDir == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<!doctype html><title>tasksie</title><div id=\"root\"></div>"))
		return
	}

	name := filepath.Join(h.staticDir, filepath.FromSlash(strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}
