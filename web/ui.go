// Package web serves the built UI shell as a single-page application.
package web

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// Handler serves files from a UI build directory. Unknown paths get
// index.html so client-side routing can take over; /api/ and /health never
// fall through to the UI.
type Handler struct {
	files fs.FS
	fsrv  http.Handler
}

// NewHandler returns a handler for the build tree in files.
func NewHandler(files fs.FS) *Handler {
	return &Handler{
		files: files,
		fsrv:  http.FileServer(http.FS(files)),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestPath := r.URL.Path

	// Don't serve UI for API routes or health check
	if strings.HasPrefix(requestPath, "/api/") || requestPath == "/health" {
		http.NotFound(w, r)
		return
	}

	if requestPath == "/" || requestPath == "" {
		h.serveIndexHTML(w)
		return
	}

	// Serve the file when it exists and is not a directory
	filePath := strings.TrimPrefix(path.Clean(requestPath), "/")
	if info, err := fs.Stat(h.files, filePath); err == nil && !info.IsDir() {
		h.fsrv.ServeHTTP(w, r)
		return
	}

	h.serveIndexHTML(w)
}

// serveIndexHTML serves index.html directly so the file server does not
// redirect it to the directory.
func (h *Handler) serveIndexHTML(w http.ResponseWriter) {
	data, err := fs.ReadFile(h.files, "index.html")
	if err != nil {
		http.Error(w, "UI not built", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
