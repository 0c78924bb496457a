package api

import (
	"net/http"
	"strings"
	"time"

	"alcyxob/workouthub/internal/logging"
	"alcyxob/workouthub/internal/metrics"
	"alcyxob/workouthub/internal/service"

	"github.com/gin-gonic/gin"
)

// Constants for context keys
const (
	ContextUserIDKey = "userID"

	requestIDHeader = "X-Request-ID"
)

// RequestLogger attaches a request id to the request context and logs one
// line per request when it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}
		c.Header(requestIDHeader, requestID)
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()

		status := c.Writer.Status()
		event := logging.Ctx(c.Request.Context()).Info()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(c.Request.Context()).Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("Request handled")
	}
}

// Metrics records request count and latency per matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// AuthMiddleware reads an optional bearer token. A present token must be
// valid; its uid claim is stored in the context. With a nil TokenService
// authentication is disabled and the header is ignored.
func AuthMiddleware(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			c.Next()
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := tokens.ParseToken(parts[1])
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// RequireUser rejects requests that did not carry a valid token.
// Must run AFTER AuthMiddleware.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := getUserIDFromContext(c); !ok {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get User ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) (string, bool) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := idRaw.(string)
	return id, ok && id != ""
}
