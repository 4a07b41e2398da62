package middlewares

import (
	"net/http"
	"strings"

	"axiapac.com/attendance/security"
	"axiapac.com/attendance/web/common"
	"github.com/gin-gonic/gin"
)

const (
	CookieName  = "punchclock.ApplicationCookie"
	IdentityKey = "identity"
)

// Authentication checks for a valid Bearer token, falling back to the
// application cookie, and stores the identity in the gin context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// Try to get from cookie
			cookie, err := c.Cookie(CookieName)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("missing token"))
				return
			}

			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("malformed authorization header"))
				return
			}

			tokenStr = parts[1]
		}

		claims, err := security.ParseIdentityToken(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		c.Set(IdentityKey, &claims.Identity)
		c.Next()
	}
}

func GetIdentity(c *gin.Context) *security.Identity {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*security.Identity)
	return identity
}
