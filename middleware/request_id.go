package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"abchotels/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "requestID"
)

// RequestID reuses the caller's X-Request-ID or generates one, and echoes it back
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}

// AccessLog writes one structured line per request
func AccessLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("request_id", c.GetString(RequestIDKey)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("error", c.Errors.Last().Error()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request", attrs...)
		case status >= http.StatusBadRequest:
			log.Warn("request", attrs...)
		default:
			log.Info("request", attrs...)
		}
	}
}

// Recovery turns a panic into the standard 500 envelope. gin handles broken
// pipes and captures the stack, which is forwarded to log.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(traceWriter{log: log}, func(c *gin.Context, rec any) {
		log.Error("panic recovered",
			slog.String("request_id", c.GetString(RequestIDKey)),
			slog.String("panic", fmt.Sprint(rec)),
		)
		response.ServerError(c)
		c.Abort()
	})
}

// traceWriter receives gin's recovery dump and logs it as one record
type traceWriter struct {
	log *slog.Logger
}

func (w traceWriter) Write(p []byte) (int, error) {
	trace := strings.TrimSpace(strings.NewReplacer("\x1b[31m", "", "\x1b[0m", "").Replace(string(p)))
	w.log.Error("panic trace", slog.String("trace", trace))
	return len(p), nil
}
