package middleware

import (
	"net/http"
	"strings"

	"kisan_unnati/internal/model"
	"kisan_unnati/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware admits only tokens whose role is one of allowedRoles.
// JWTAuthMiddleware must run first.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			response.Abort(c, http.StatusForbidden, "Invalid role type in token")
			return
		}

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		response.Abort(c, http.StatusForbidden, "Access denied. Required role: "+strings.Join(allowedRoles, " or "))
	}
}

// AdminMiddleware checks if the user is an admin
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

// ShopkeeperMiddleware checks if the caller logged in as a shopkeeper
func ShopkeeperMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleShopkeeper)
}
