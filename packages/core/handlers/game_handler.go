package handlers

import (
	"net/http"

	"titans-lacrosse/packages/core/models"
	"titans-lacrosse/packages/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GameHandler struct {
	games    services.GameRepository
	settings services.SettingRepository
	feeds    Refresher
	logger   *zap.Logger
}

func NewGameHandler(games services.GameRepository, settings services.SettingRepository, feeds Refresher, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		games:    games,
		settings: settings,
		feeds:    feeds,
		logger:   nopIfNil(logger),
	}
}

// ListGames lists every game
// @Summary List games
// @Description Every game, soonest first
// @Tags admin-games
// @Security BearerAuth
// @Produce json
// @Success 200 {object} handlers.ListResponse[models.Game]
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	games, err := h.games.ListGames(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.Game]{Items: games})
}

// NewGame returns a blank game form
// @Summary Blank game form
// @Description Default values for a new game, with the club's home team preselected
// @Tags admin-games
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.GameRequest
// @Failure 401 {object} map[string]string
// @Router /api/admin/games/new [get]
func (h *GameHandler) NewGame(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewGameForm(homeTeamID(c, h.settings, h.logger)))
}

// GetGame gets a game by ID
// @Summary Get game by ID
// @Description The game and its prefilled edit form
// @Tags admin-games
// @Security BearerAuth
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/games/{id} [get]
func (h *GameHandler) GetGame(c *gin.Context) {
	id, ok := parseID(c, "game")
	if !ok {
		return
	}

	game, err := h.games.GetGame(c.Request.Context(), id)
	if err != nil {
		respondLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": game, "form": models.GameFormFrom(*game)})
}

// CreateGame creates a new game
// @Summary Create game
// @Tags admin-games
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param game body models.GameRequest true "Game data"
// @Success 201 {object} handlers.ListResponse[models.Game]
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/admin/games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req models.GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.games.CreateGame(c.Request.Context(), req)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	h.respondWithList(c, http.StatusCreated, game)
}

// UpdateGame updates a game
// @Summary Update game
// @Tags admin-games
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param game body models.GameRequest true "Game data"
// @Success 200 {object} handlers.ListResponse[models.Game]
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/admin/games/{id} [put]
func (h *GameHandler) UpdateGame(c *gin.Context) {
	id, ok := parseID(c, "game")
	if !ok {
		return
	}

	var req models.GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.games.UpdateGame(c.Request.Context(), id, req)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	h.respondWithList(c, http.StatusOK, game)
}

// DeleteGame deletes a game
// @Summary Delete game
// @Description Destructive; requires confirm=true
// @Tags admin-games
// @Security BearerAuth
// @Produce json
// @Param id path int true "Game ID"
// @Param confirm query bool true "Confirm the deletion"
// @Success 200 {object} handlers.ListResponse[models.Game]
// @Failure 404 {object} map[string]string
// @Failure 428 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/admin/games/{id} [delete]
func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, ok := parseID(c, "game")
	if !ok || !confirmed(c) {
		return
	}

	if err := h.games.DeleteGame(c.Request.Context(), id); err != nil {
		respondDeleteError(c, err)
		return
	}

	h.respondWithList(c, http.StatusOK, nil)
}

func (h *GameHandler) respondWithList(c *gin.Context, status int, game *models.Game) {
	refreshFeeds(c, h.feeds, h.logger)

	games, err := h.games.ListGames(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(status, ListResponse[models.Game]{Item: game, Items: games})
}

// homeTeamID reads the club's own team from settings. A missing or broken
// setting only means the form starts without a home team.
func homeTeamID(c *gin.Context, settings services.SettingRepository, logger *zap.Logger) *uint {
	if settings == nil {
		return nil
	}
	id, err := settings.HomeTeamID(c.Request.Context())
	if err != nil {
		logger.Warn("home team setting unreadable", zap.Error(err))
		return nil
	}
	return id
}
