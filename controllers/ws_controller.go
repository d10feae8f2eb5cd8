package controllers

import (
	"abchotels/middleware"
	"abchotels/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// StaffSocket upgrades an authenticated request onto the staff notification hub.
// It must run behind middleware.AuthMiddleware so the role is on the context.
func StaffSocket(m *melody.Melody) gin.HandlerFunc {
	return func(c *gin.Context) {
		keys := map[string]interface{}{
			notification.RoleKey: c.GetInt(middleware.UserRoleKey),
			"userID":             c.GetUint(middleware.UserIDKey),
		}
		if err := m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
			c.Error(err)
		}
	}
}
