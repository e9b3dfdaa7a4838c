package logger

import (
	"io"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's X-Request-ID
// when present, and stores it on the request context for FromCtx.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
		}

		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), reqID))
		c.Header(RequestIDHeader, reqID)
		c.Set("request_id", reqID)

		c.Next()
	}
}

// AccessLog writes one line per request to out, skipping /health and /metrics.
func AccessLog(out io.Writer) gin.HandlerFunc {
	return ginlog.SetLogger(
		ginlog.WithWriter(out),
		ginlog.WithUTC(true),
		ginlog.WithSkipPath([]string{"/health", "/metrics"}),
	)
}
