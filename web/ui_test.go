package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func TestHandler(t *testing.T) {
	files := fstest.MapFS{
		"index.html":        {Data: []byte("<html>shell</html>")},
		"static/js/main.js": {Data: []byte("console.log('hi')")},
	}
	h := NewHandler(files)

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/", http.StatusOK, "shell"},
		{"/static/js/main.js", http.StatusOK, "console.log"},
		{"/games/color-match", http.StatusOK, "shell"},
		{"/static/js", http.StatusOK, "shell"},
		{"/api/unknown", http.StatusNotFound, ""},
		{"/health", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

		if rec.Code != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.path, rec.Code, tt.status)
		}
		if !strings.Contains(rec.Body.String(), tt.contains) {
			t.Errorf("GET %s body = %q, want %q", tt.path, rec.Body.String(), tt.contains)
		}
	}
}

func TestHandler_NotBuilt(t *testing.T) {
	h := NewHandler(fstest.MapFS{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
