package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/utils/response"
	"boxoffice/internal/users"
	"boxoffice/pkg/logger"
)

// Context keys set by the auth middleware
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextUserRole = "user_role"
	ContextRequest  = "request_id"
)

// authenticate validates the bearer token and stores its claims on the
// context. It aborts with 401 and returns false on any failure.
func authenticate(c *gin.Context, secret string) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.AbortWithError(c, http.StatusUnauthorized, "Authorization header is required")
		return false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.AbortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
		return false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		logger.GetDefault().LogAuthFailure(c.Request.Context(), "invalid token", c.ClientIP())
		response.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		response.AbortWithError(c, http.StatusUnauthorized, "Invalid token claims")
		return false
	}
	if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
		response.AbortWithError(c, http.StatusUnauthorized, "Invalid token type")
		return false
	}

	c.Set(ContextUserID, claims["user_id"])
	c.Set(ContextUsername, claims["username"])
	c.Set(ContextUserRole, claims["role"])
	return true
}

// JWTAuthWithConfig creates a JWT authentication middleware
func JWTAuthWithConfig(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, cfg.Secret) {
			c.Next()
		}
	}
}

// hasRole reports whether the authenticated user holds one of roles,
// aborting the request otherwise.
func hasRole(c *gin.Context, roles ...string) bool {
	userRole, exists := c.Get(ContextUserRole)
	if !exists {
		response.AbortWithError(c, http.StatusUnauthorized, "User role not found in context")
		return false
	}
	role, _ := userRole.(string)
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	response.AbortWithError(c, http.StatusForbidden, "Insufficient permissions")
	return false
}

// RequireRoles middleware checks if user has any of the required roles
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hasRole(c, requiredRoles...) {
			c.Next()
		}
	}
}

// RequireAdmin middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(string(users.RoleAdmin))
}

// RequireOperator guards mutating routes with an operator token. With auth
// disabled it lets every request through.
func RequireOperator(cfg config.JWTConfig) gin.HandlerFunc {
	if !cfg.AuthEnabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if !authenticate(c, cfg.Secret) {
			return
		}
		if !hasRole(c, string(users.RoleAdmin)) {
			return
		}
		c.Next()
	}
}

// RequestID tags every request with an id, reusing the caller's
// X-Request-ID when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequest, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger logs each request once it has been handled
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l := log
		if id := c.GetString(ContextRequest); id != "" {
			l = l.WithRequestID(id)
		}
		if op, ok := c.Get(ContextUsername); ok {
			if name, _ := op.(string); name != "" {
				l = l.WithOperator(name)
			}
		}
		if len(c.Errors) > 0 {
			l.LogHTTPError(c, c.Errors.Last(), c.Writer.Status())
		}
		l.LogHTTPRequest(c, time.Since(start))
	}
}
