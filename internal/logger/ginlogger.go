package logger

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinLogger logs one line per request at a level chosen by status code.
// Health checks are logged at debug.
func GinLogger(l *zap.Logger, name string) gin.HandlerFunc {
	if l == nil {
		panic("logger.GinLogger received a nil *zap.Logger")
	}

	logger := l.Named(name)

	return func(c *gin.Context) {
		t1 := time.Now()
		c.Next()

		r := c.Request
		statusCode := c.Writer.Status()
		fields := []zap.Field{
			zap.String("type", "http_request"),
			zap.String("http_method", r.Method),
			zap.String("http_path", r.URL.Path),
			zap.String("http_route", c.FullPath()),
			zap.String("remote_addr", c.ClientIP()),
			zap.Int("http_status_code", statusCode),
			zap.String("http_status_text", statusLabel(statusCode)),
			zap.Int("response_bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(t1)),
			zap.String("user_agent", r.UserAgent()),
		}
		if userID := c.GetString("user_id"); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		msg := fmt.Sprintf("HTTP request completed: %s", r.URL.Path)

		switch {
		case statusCode >= 500:
			logger.Error(msg, fields...)
		case statusCode >= 400:
			logger.Warn(msg, fields...)
		default:
			if isHealthCheck(r.Method, r.URL.Path) {
				logger.Debug(msg, fields...)
			} else {
				logger.Info(msg, fields...)
			}
		}
	}
}

func isHealthCheck(method string, path string) bool {
	return method == http.MethodGet && (path == "/health" || path == "/metrics")
}

func statusLabel(status int) string {
	switch {
	case status >= 100 && status < 300:
		return fmt.Sprintf("%d OK", status)
	case status >= 300 && status < 400:
		return fmt.Sprintf("%d Redirect", status)
	case status >= 400 && status < 500:
		return fmt.Sprintf("%d Client Error", status)
	case status >= 500:
		return fmt.Sprintf("%d Server Error", status)
	default:
		return fmt.Sprintf("%d Unknown", status)
	}
}
