package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
)

var hexIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestRequestID_GeneratesID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())

	var captured string
	r.GET("/", func(c *gin.Context) {
		captured = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !hexIDPattern.MatchString(captured) {
		t.Errorf("request id = %q, want 32 hex chars", captured)
	}
	if got := w.Header().Get("X-Request-ID"); got != captured {
		t.Errorf("response header = %q, context id = %q", got, captured)
	}
}

func TestRequestID_IgnoresUpstreamByDefault(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())

	var captured string
	r.GET("/", func(c *gin.Context) {
		captured = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if captured == "upstream-id" {
		t.Error("upstream id must not be trusted by default")
	}
}

func TestRequestID_TrustUpstream(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDWithConfig(RequestIDConfig{TrustUpstream: true}))

	var captured string
	r.GET("/", func(c *gin.Context) {
		captured = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	t.Run("valid id reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "client-abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if captured != "client-abc-123" {
			t.Errorf("request id = %q, want client-abc-123", captured)
		}
	})

	t.Run("invalid id replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "bad id with spaces")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if captured == "bad id with spaces" {
			t.Error("invalid upstream id must be replaced")
		}
	})
}

func TestGetRequestID_Unset(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if got := GetRequestID(c); got != "" {
		t.Errorf("expected empty id, got %q", got)
	}
}
