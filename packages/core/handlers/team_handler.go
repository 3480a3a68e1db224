package handlers

import (
	"net/http"

	"titans-lacrosse/packages/core/models"
	"titans-lacrosse/packages/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TeamHandler struct {
	teams   services.TeamRepository
	results services.ResultRepository
	feeds   Refresher
	logger  *zap.Logger
}

func NewTeamHandler(teams services.TeamRepository, results services.ResultRepository, feeds Refresher, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{
		teams:   teams,
		results: results,
		feeds:   feeds,
		logger:  nopIfNil(logger),
	}
}

// ListTeams lists every team
// @Summary List teams
// @Description Every team, by name
// @Tags teams
// @Produce json
// @Success 200 {object} handlers.ListResponse[models.Team]
// @Failure 500 {object} map[string]string
// @Router /api/teams [get]
// @Router /api/admin/teams [get]
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teams.ListTeams(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.Team]{Items: teams})
}

// TeamPicker lists team ids and names
// @Summary Team picker
// @Description Team options for the game and result forms, by name
// @Tags admin-teams
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.TeamOption
// @Failure 500 {object} map[string]string
// @Router /api/admin/teams/picker [get]
func (h *TeamHandler) TeamPicker(c *gin.Context) {
	options, err := h.teams.ListTeamOptions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, options)
}

// NewTeam returns a blank team form
// @Summary Blank team form
// @Tags admin-teams
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.TeamRequest
// @Router /api/admin/teams/new [get]
func (h *TeamHandler) NewTeam(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewTeamForm())
}

// GetTeam gets a team by ID
// @Summary Get team by ID
// @Tags admin-teams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} models.Team
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/teams/{id} [get]
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, ok := parseID(c, "team")
	if !ok {
		return
	}

	team, err := h.teams.GetTeam(c.Request.Context(), id)
	if err != nil {
		respondLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// TeamRecord gets the club's record against a team
// @Summary Record against a team
// @Description Wins, ties and losses of the club against this opponent
// @Tags admin-teams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} models.TeamRecord
// @Failure 404 {object} map[string]string
// @Router /api/admin/teams/{id}/record [get]
func (h *TeamHandler) TeamRecord(c *gin.Context) {
	id, ok := parseID(c, "team")
	if !ok {
		return
	}

	if _, err := h.teams.GetTeam(c.Request.Context(), id); err != nil {
		respondLoadError(c, err)
		return
	}

	results, err := h.results.ListResultsAgainst(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ComputeRecord(id, results))
}

// CreateTeam creates a new team
// @Summary Create team
// @Tags admin-teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param team body models.TeamRequest true "Team data"
// @Success 201 {object} handlers.ListResponse[models.Team]
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/admin/teams [post]
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req models.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teams.CreateTeam(c.Request.Context(), req)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	h.respondWithList(c, http.StatusCreated, team)
}

// UpdateTeam updates a team
// @Summary Update team
// @Tags admin-teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param team body models.TeamRequest true "Team data"
// @Success 200 {object} handlers.ListResponse[models.Team]
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/admin/teams/{id} [put]
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	id, ok := parseID(c, "team")
	if !ok {
		return
	}

	var req models.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teams.UpdateTeam(c.Request.Context(), id, req)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	h.respondWithList(c, http.StatusOK, team)
}

// DeleteTeam deletes a team
// @Summary Delete team
// @Description Destructive; games and results against the team keep their rows but lose the link
// @Tags admin-teams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Team ID"
// @Param confirm query bool true "Confirm the deletion"
// @Success 200 {object} handlers.ListResponse[models.Team]
// @Failure 404 {object} map[string]string
// @Failure 428 {object} map[string]string
// @Router /api/admin/teams/{id} [delete]
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	id, ok := parseID(c, "team")
	if !ok || !confirmed(c) {
		return
	}

	if err := h.teams.DeleteTeam(c.Request.Context(), id); err != nil {
		respondDeleteError(c, err)
		return
	}

	h.respondWithList(c, http.StatusOK, nil)
}

func (h *TeamHandler) respondWithList(c *gin.Context, status int, team *models.Team) {
	refreshFeeds(c, h.feeds, h.logger)

	teams, err := h.teams.ListTeams(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(status, ListResponse[models.Team]{Item: team, Items: teams})
}
