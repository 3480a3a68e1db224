package auth

import (
	"time"

	"titans-lacrosse/packages/auth/handlers"
	"titans-lacrosse/packages/auth/middleware"
	"titans-lacrosse/packages/auth/models"
	"titans-lacrosse/packages/auth/services"
	"titans-lacrosse/packages/auth/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieSecure    bool
}

type Module struct {
	Handler  *handlers.AuthHandler
	Sessions *services.SessionService
	db       *gorm.DB
}

func NewModule(db *gorm.DB, opts Options, logger *zap.Logger) *Module {
	tokens := utils.NewTokens(opts.JWTSecret, opts.AccessTokenTTL, opts.RefreshTokenTTL)
	sessions := services.NewSessionService(db, tokens)

	return &Module{
		Handler:  handlers.NewAuthHandler(sessions, opts.CookieSecure, logger),
		Sessions: sessions,
		db:       db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", m.Handler.Login)
		auth.POST("/refresh", m.Handler.RefreshToken)
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.JWTMiddleware(), m.Handler.Me)
	}
}

func (m *Module) JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware(m.Sessions)
}

// RequireAdmin lets admins and editors through.
func (m *Module) RequireAdmin() gin.HandlerFunc {
	return middleware.RequireAnyRole(m.db, models.GetAdminRoles()...)
}

func (m *Module) RequireAnyRole(roles ...string) gin.HandlerFunc {
	return middleware.RequireAnyRole(m.db, roles...)
}

// PageGuard protects the admin pages, sending visitors to the login page.
func (m *Module) PageGuard(loginPath string) gin.HandlerFunc {
	return middleware.PageGuard(m.Sessions, loginPath)
}

func GetUserID(c *gin.Context) (uint, bool) {
	return middleware.GetUserID(c)
}

func GetUserEmail(c *gin.Context) (string, bool) {
	return middleware.GetUserEmail(c)
}
