package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"titans-lacrosse/packages/core/models"
	"titans-lacrosse/packages/core/services"

	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	settings services.SettingRepository
}

func NewSettingHandler(settings services.SettingRepository) *SettingHandler {
	return &SettingHandler{settings: settings}
}

// ListSettings lists every setting
// @Summary List settings
// @Tags admin-settings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Setting
// @Failure 500 {object} map[string]string
// @Router /api/admin/settings [get]
func (h *SettingHandler) ListSettings(c *gin.Context) {
	settings, err := h.settings.ListSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSetting sets a setting
// @Summary Set a setting
// @Description Creates or replaces the value stored under key
// @Tags admin-settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param setting body models.UpdateSettingRequest true "New value"
// @Success 200 {object} models.Setting
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/admin/settings/{key} [put]
func (h *SettingHandler) UpdateSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid setting key"})
		return
	}

	var req models.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	value := strings.TrimSpace(req.Value)
	if key == models.SettingHomeTeamID && value != "" {
		if _, err := strconv.ParseUint(value, 10, 32); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "home_team_id must be a team ID"})
			return
		}
	}

	setting, err := h.settings.SetSetting(c.Request.Context(), key, value)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, setting)
}
