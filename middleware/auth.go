package middleware

import (
	"strings"

	"article-cms/helper"
	"article-cms/services"

	"github.com/gin-gonic/gin"
)

var HTTPHelper = helper.NewHTTPHelper()

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// AuthMiddleware trusts the identity carried by a bearer token signed by the
// upstream identity provider and stores it in the gin context.
func AuthMiddleware(tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HTTPHelper.SendUnauthorizedError(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			HTTPHelper.SendUnauthorizedError(c, "Bearer token required")
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)

		c.Next()
	}
}

// UserID returns the authenticated user id, or 0 when the request carries none.
func UserID(c *gin.Context) uint {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return 0
	}
	userID, _ := id.(uint)
	return userID
}

// RequireCapability lets the request through only when one of the user's roles
// carries the capability.
func RequireCapability(gate services.AccessGate, capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := gate.HasCapability(c.Request.Context(), UserID(c), capability)
		if err != nil {
			HTTPHelper.SendServiceError(c, err)
			c.Abort()
			return
		}
		if !ok {
			HTTPHelper.SendUnauthorizedError(c, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
