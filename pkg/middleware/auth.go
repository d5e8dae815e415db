package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"guardian/pkg/response"
)

// SessionUserKey is the session key holding the signed-in user's id.
const SessionUserKey = "userID"

const ctxUserKey = "currentUserID"

// RequireAuth aborts with 401 unless the session carries a signed-in user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		uid, ok := sess.Get(SessionUserKey).(uint)
		if !ok || uid == 0 {
			response.FailStatus(c, http.StatusUnauthorized, "sign in required")
			c.Abort()
			return
		}
		c.Set(ctxUserKey, uid)
		c.Next()
	}
}

// CurrentUserID returns the signed-in user's id set by RequireAuth.
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserKey); ok {
		if uid, ok := v.(uint); ok {
			return uid
		}
	}
	return 0
}
