package middleware

import (
	"strings"

	"careassoc_backend/internal/auth"
	"careassoc_backend/internal/models"
	"careassoc_backend/pkg/apperrors"
	"careassoc_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token and puts the identity into
// the Gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Missing or invalid access token"))
			c.Abort()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// SoftAuthMiddleware resolves the identity when a token is present but never
// aborts. The account gate uses it: an unauthenticated request is a routing
// input, not an error.
func SoftAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// RequireRoles restricts a route to the given roles. Must run after
// AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			c.Abort()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		apperrors.HandleError(c, apperrors.NewForbiddenError("Insufficient role for this operation"))
		c.Abort()
	}
}

// GetUserID returns the authenticated user id from the Gin context.
func GetUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get(string(contextkeys.UserIDContextKey))
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// GetRole returns the authenticated role from the Gin context.
func GetRole(c *gin.Context) (models.UserRole, bool) {
	val, ok := c.Get(string(contextkeys.RoleContextKey))
	if !ok {
		return "", false
	}
	role, ok := val.(models.UserRole)
	return role, ok
}

func bearerClaims(c *gin.Context) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}
	claims, err := auth.ParseToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(string(contextkeys.UserIDContextKey), claims.UserID)
	c.Set(string(contextkeys.RoleContextKey), claims.Role)
}
