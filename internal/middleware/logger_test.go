package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func performLogged(t *testing.T, status int) string {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(Logger(logger))
	r.GET("/test", func(c *gin.Context) {
		c.Status(status)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return buf.String()
}

func TestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantLevel string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusBadRequest, "level=WARN"},
		{http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tt := range tests {
		out := performLogged(t, tt.status)
		if !strings.Contains(out, tt.wantLevel) {
			t.Errorf("status %d: log %q missing %q", tt.status, out, tt.wantLevel)
		}
		if !strings.Contains(out, "method=GET") || !strings.Contains(out, "path=/test") {
			t.Errorf("status %d: log %q missing request fields", tt.status, out)
		}
	}
}

func TestLogger_NilFallsBackToDefault(t *testing.T) {
	r := gin.New()
	r.Use(Logger(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
