package middleware

import (
	"net/http"

	"titans-lacrosse/packages/auth/services"

	"github.com/gin-gonic/gin"
)

// PageGuard redirects page requests without a valid session to loginPath.
// The login page itself is always reachable.
func PageGuard(provider services.AuthProvider, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == loginPath {
			c.Next()
			return
		}

		session := provider.Resolve(AccessToken(c))
		if !session.SignedIn() {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		setSession(c, session)
		c.Next()
	}
}
