package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	apperrors "ezcrow.dev/crowdfund/internal/pkg/errors"
)

// RequireRole returns middleware that admits only signer tokens carrying
// role. It must run after SignerAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := GetRoles(c.Request.Context())
		if roles == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code": apperrors.CodeForbidden, "message": "no roles in context",
			})
			return
		}
		if !slices.Contains(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code": apperrors.CodeForbidden, "message": "insufficient role",
			})
			return
		}
		c.Next()
	}
}
