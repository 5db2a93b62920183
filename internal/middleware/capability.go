package middleware

import (
	"net/http"

	"github.com/craftedu/coursecraft-backend/internal/authz"
	"github.com/craftedu/coursecraft-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// RequireCapability gates a route on the injected capability policy.
// Must run after RequireAuth.
func RequireCapability(policy authz.Policy, op authz.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if !policy(claims.Role, op) {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}

		c.Next()
	}
}
