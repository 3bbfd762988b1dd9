package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserID is the Gin context key under which AuthRequired stores the
// authenticated user's ID.
const ContextUserID = "userID"

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated users only.
// The issuer is injected so the middleware does not read ambient process state.
func AuthRequired(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Parse and verify JWT signature and expiry
		userID, _, err := issuer.VerifyAuthToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. Expose the authenticated user to downstream handlers
		c.Set(ContextUserID, userID)

		// 4. Pass control to the next handler
		c.Next()
	}
}
