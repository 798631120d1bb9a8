package progressmodule

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the caller's numeric user id. It is trusted as-is;
// there is no token or session verification.
const UserIDHeader = "X-User-Id"

const userIDKey = "watchtrack.userID"

// RequireUser rejects requests that lack a positive numeric X-User-Id
// header before any service call runs.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing or invalid " + UserIDHeader + " header",
			})
			return
		}
		c.Set(userIDKey, uint(id))
		c.Next()
	}
}

// currentUserID returns the user id stored by RequireUser.
func currentUserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
