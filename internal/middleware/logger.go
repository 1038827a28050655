package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID injects an X-Request-ID header into the request and response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Health checks arrive every few seconds; logging them drowns out the
// extraction traffic.
var unloggedPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
}

// Logger logs each HTTP request with method, path, status, and latency.
// Handler errors collected on the context are appended to the line.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		if unloggedPaths[c.Request.URL.Path] && c.Writer.Status() < 400 {
			return
		}

		requestID, _ := c.Get("request_id")
		errs := ""
		if len(c.Errors) > 0 {
			errs = " errors=" + c.Errors.String()
		}
		log.Printf("[%s] %s %s %d %s%s",
			requestID,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency,
			errs,
		)
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
