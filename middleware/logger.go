package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("uri", c.Request.URL.RequestURI()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", c.GetString(ContextRequestID)),
		}
		if userID := UserID(c); userID != 0 {
			attrs = append(attrs, slog.Uint64("user_id", uint64(userID)))
		}

		if status >= 500 {
			if len(c.Errors) > 0 {
				attrs = append(attrs, slog.String("err", c.Errors.String()))
			}
			slog.LogAttrs(c.Request.Context(), slog.LevelError, "REQUEST_ERROR", attrs...)
			return
		}
		slog.LogAttrs(c.Request.Context(), slog.LevelInfo, "REQUEST", attrs...)
	}
}
