package middleware

import (
	"net/http"
	"strings"

	"kisan_unnati/internal/pkg/response"
	"kisan_unnati/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey  = "authUser"
	AuthRoleKey  = "authRole"
	AuthTokenKey = "authToken"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// It returns "" when the header is missing or malformed.
func BearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// JWTAuthMiddleware rejects requests without a valid bearer token and
// stores the token's user ID and role in the context.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		tokenString := BearerToken(authHeader)
		if tokenString == "" {
			response.Abort(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Invalid token. Please log in again!")
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)
		c.Set(AuthTokenKey, tokenString)

		c.Next()
	}
}
