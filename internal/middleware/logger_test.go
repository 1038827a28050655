package middleware_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/middleware"
)

func loggerRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/sheets", func(c *gin.Context) { c.String(http.StatusOK, "[]") })
	return r
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestLogger_IncludesRequestID(t *testing.T) {
	buf := captureLog(t)
	r := loggerRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/sheets", nil)
	req.Header.Set("X-Request-ID", "req-42")
	r.ServeHTTP(w, req)

	assert.Contains(t, buf.String(), "[req-42] GET /sheets 200")
}

func TestLogger_SkipsHealthChecks(t *testing.T) {
	buf := captureLog(t)
	r := loggerRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String())
}
