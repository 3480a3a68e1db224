package handlers

import (
	"errors"
	"net/http"
	"time"

	"titans-lacrosse/packages/auth/middleware"
	"titans-lacrosse/packages/auth/models"
	"titans-lacrosse/packages/auth/services"
	"titans-lacrosse/packages/auth/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Sessions     *services.SessionService
	CookieSecure bool
	logger       *zap.Logger
}

func NewAuthHandler(sessions *services.SessionService, cookieSecure bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		Sessions:     sessions,
		CookieSecure: cookieSecure,
		logger:       logger,
	}
}

// @Summary Admin Login
// @Description Sign in with email and password; returns JWT tokens and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Admin credentials"
// @Success 200 {object} models.Session
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.Sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case errors.Is(err, services.ErrUserDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": "User account is disabled"})
		default:
			h.logger.Error("sign in failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		}
		return
	}

	h.setSessionCookie(c, session.Tokens.AccessToken)
	c.JSON(http.StatusOK, session)
}

// @Summary Refresh Access Token
// @Description Get a new access token using a refresh token; the refresh token is rotated
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body models.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} models.Session
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.Sessions.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if !errors.Is(err, utils.ErrInvalidRefreshToken) {
			h.logger.Error("token refresh failed", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	h.setSessionCookie(c, session.Tokens.AccessToken)
	c.JSON(http.StatusOK, session)
}

// @Summary Logout
// @Description Revoke the refresh token and clear the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body models.RefreshTokenRequest true "Refresh token to revoke"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Sessions.SignOut(c.Request.Context(), req.RefreshToken); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to revoke token"})
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
		"status":  models.StatusSignedOut,
	})
}

// @Summary Current Session
// @Description Get the signed-in admin
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Session
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.Sessions.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, models.Session{User: user, Status: models.StatusSignedIn})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, accessToken string) {
	maxAge := int(h.Sessions.Tokens().AccessTTL() / time.Second)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, accessToken, maxAge, "/", "", h.CookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.CookieSecure, true)
}
