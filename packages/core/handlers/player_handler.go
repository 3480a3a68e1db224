package handlers

import (
	"net/http"

	"titans-lacrosse/packages/core/models"
	"titans-lacrosse/packages/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PlayerHandler struct {
	players services.PlayerRepository
	logger  *zap.Logger
}

func NewPlayerHandler(players services.PlayerRepository, logger *zap.Logger) *PlayerHandler {
	return &PlayerHandler{
		players: players,
		logger:  nopIfNil(logger),
	}
}

// GetRoster gets the public roster
// @Summary Roster
// @Description Active players by jersey number, optionally for one position
// @Tags roster
// @Produce json
// @Param position query string false "attack, midfield, defense or goalie"
// @Success 200 {array} models.Player
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/roster [get]
func (h *PlayerHandler) GetRoster(c *gin.Context) {
	position, err := models.ParsePosition(c.Query("position"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	players, err := h.players.ListRoster(c.Request.Context(), position)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, players)
}

// ListPlayers lists every player
// @Summary List players
// @Description Every player, active or not, by last name
// @Tags admin-players
// @Security BearerAuth
// @Produce json
// @Success 200 {object} handlers.ListResponse[models.Player]
// @Failure 500 {object} map[string]string
// @Router /api/admin/players [get]
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	players, err := h.players.ListPlayers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.Player]{Items: players})
}

// NewPlayer returns a blank player form
// @Summary Blank player form
// @Tags admin-players
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.PlayerRequest
// @Router /api/admin/players/new [get]
func (h *PlayerHandler) NewPlayer(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewPlayerForm())
}

// GetPlayer gets a player by ID
// @Summary Get player by ID
// @Tags admin-players
// @Security BearerAuth
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	id, ok := parseID(c, "player")
	if !ok {
		return
	}

	player, err := h.players.GetPlayer(c.Request.Context(), id)
	if err != nil {
		respondLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": player, "form": models.PlayerFormFrom(*player)})
}

// CreatePlayer adds a player
// @Summary Create player
// @Tags admin-players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param player body models.PlayerRequest true "Player data"
// @Success 201 {object} handlers.ListResponse[models.Player]
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/admin/players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req models.PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.players.CreatePlayer(c.Request.Context(), req)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	h.respondWithList(c, http.StatusCreated, player)
}

// UpdatePlayer updates a player
// @Summary Update player
// @Tags admin-players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param player body models.PlayerRequest true "Player data"
// @Success 200 {object} handlers.ListResponse[models.Player]
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/admin/players/{id} [put]
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	id, ok := parseID(c, "player")
	if !ok {
		return
	}

	var req models.PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.players.UpdatePlayer(c.Request.Context(), id, req)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	h.respondWithList(c, http.StatusOK, player)
}

// DeletePlayer deletes a player
// @Summary Delete player
// @Description Destructive; requires confirm=true
// @Tags admin-players
// @Security BearerAuth
// @Produce json
// @Param id path int true "Player ID"
// @Param confirm query bool true "Confirm the deletion"
// @Success 200 {object} handlers.ListResponse[models.Player]
// @Failure 404 {object} map[string]string
// @Failure 428 {object} map[string]string
// @Router /api/admin/players/{id} [delete]
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	id, ok := parseID(c, "player")
	if !ok || !confirmed(c) {
		return
	}

	if err := h.players.DeletePlayer(c.Request.Context(), id); err != nil {
		respondDeleteError(c, err)
		return
	}

	h.respondWithList(c, http.StatusOK, nil)
}

func (h *PlayerHandler) respondWithList(c *gin.Context, status int, player *models.Player) {
	players, err := h.players.ListPlayers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(status, ListResponse[models.Player]{Item: player, Items: players})
}
