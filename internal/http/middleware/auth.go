package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tasklane.app/server/common/logger"
	"tasklane.app/server/internal/service"
)

// SessionCookie is the HTTP-only cookie carrying the session token.
const SessionCookie = "tasklane_session"

const userIDKey = "user_id"

// RequireAuth resolves the session cookie to a user id. Failures answer
// with not found rather than unauthorized so the response shape never
// reveals whether a session ever existed.
func RequireAuth(tokens service.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"msg": "user not found"})
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"msg": "user not found"})
			return
		}

		c.Set(userIDKey, userID)

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{UserID: &userID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// UserID returns the authenticated user's id set by RequireAuth.
func UserID(c *gin.Context) int64 {
	v, _ := c.Get(userIDKey)
	id, _ := v.(int64)
	return id
}
