package middleware

import (
	"net/http"
	"strings"

	"titans-lacrosse/packages/auth/models"
	"titans-lacrosse/packages/auth/services"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the access token for page routes.
const SessionCookie = "titans_session"

const sessionKey = "session"

// AccessToken reads the bearer token, falling back to the session cookie.
func AccessToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// JWTMiddleware rejette les requêtes sans session valide
func JWTMiddleware(provider services.AuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := AccessToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		session := provider.Resolve(token)
		if !session.SignedIn() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		setSession(c, session)
		c.Next()
	}
}

func setSession(c *gin.Context, session *models.Session) {
	c.Set(sessionKey, session)
	c.Set("user_id", session.User.ID)
	c.Set("user_email", session.User.Email)
}

func GetSession(c *gin.Context) (*models.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return models.SignedOut(), false
	}
	session, ok := value.(*models.Session)
	return session, ok
}

func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func GetUserEmail(c *gin.Context) (string, bool) {
	value, exists := c.Get("user_email")
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}
