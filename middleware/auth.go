package middleware

import (
	"strings"

	apperrors "abchotels/errors"
	"abchotels/response"
	"abchotels/services"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware
const (
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

// AuthMiddleware requires a valid access token and, when roles are given, one of those roles.
// The token comes from the Bearer header, or the token query parameter for websocket upgrades.
func AuthMiddleware(verifier services.TokenVerifier, roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		userInfo, err := verifier.ParseToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(userInfo.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(UserIDKey, userInfo.UserId)
		c.Set(UserRoleKey, userInfo.Role)
		c.Next()
	}
}

// RoleMiddleware narrows an authenticated group to the given roles
func RoleMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(UserRoleKey)
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		role, _ := userRole.(int)
		if !hasRole(role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ErrorHandler answers for handlers that recorded an error with c.Error but wrote nothing
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		if apperrors.IsAppError(err) {
			response.FromError(c, err)
			return
		}
		response.ServerError(c)
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			return strings.TrimSpace(header[7:])
		}
		return ""
	}
	return c.Query("token")
}

func hasRole(role int, roles []int) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
