package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tfl_backend/internal/logger"
	"tfl_backend/pkg/contextkeys"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags each request with an id, reusing the caller's
// X-Request-ID when one is sent.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggingMiddleware writes one line per request
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		log := logger.FromContext(c.Request.Context())
		fields := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("size_bytes", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, slog.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("HTTP Server Error", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("HTTP Client Error", fields...)
		default:
			log.Info("HTTP Request", fields...)
		}
	}
}

// DBMiddleware puts the shared *gorm.DB on the gin context. A transaction
// already carried by the request context wins.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	dbKey := string(contextkeys.DBContextKey)
	return func(c *gin.Context) {
		if tx, ok := c.Request.Context().Value(contextkeys.DBContextKey).(*gorm.DB); ok && tx != nil {
			c.Set(dbKey, tx)
		} else {
			c.Set(dbKey, db)
		}
		c.Next()
	}
}

// CORSMiddleware lets the configured front-end origin call the API with
// credentials. Other origins get no CORS headers.
func CORSMiddleware(origin string) gin.HandlerFunc {
	origin = strings.TrimRight(origin, "/")
	return func(c *gin.Context) {
		if reqOrigin := c.GetHeader("Origin"); reqOrigin != "" && reqOrigin == origin {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
