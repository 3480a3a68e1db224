package handlers

import (
	"net/http"

	"titans-lacrosse/packages/core/models"
	"titans-lacrosse/packages/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ResultHandler struct {
	results  services.ResultRepository
	settings services.SettingRepository
	feeds    Refresher
	logger   *zap.Logger
}

func NewResultHandler(results services.ResultRepository, settings services.SettingRepository, feeds Refresher, logger *zap.Logger) *ResultHandler {
	return &ResultHandler{
		results:  results,
		settings: settings,
		feeds:    feeds,
		logger:   nopIfNil(logger),
	}
}

// ListResults lists every result
// @Summary List results
// @Description Every result, newest first, with its outcome
// @Tags admin-results
// @Security BearerAuth
// @Produce json
// @Success 200 {object} handlers.ListResponse[models.ResultView]
// @Failure 500 {object} map[string]string
// @Router /api/admin/results [get]
func (h *ResultHandler) ListResults(c *gin.Context) {
	results, err := h.results.ListResults(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.ResultView]{Items: models.NewResultViews(results)})
}

// NewResult returns a blank result form
// @Summary Blank result form
// @Tags admin-results
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.ResultRequest
// @Router /api/admin/results/new [get]
func (h *ResultHandler) NewResult(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewResultForm(homeTeamID(c, h.settings, h.logger)))
}

// GetResult gets a result by ID
// @Summary Get result by ID
// @Tags admin-results
// @Security BearerAuth
// @Produce json
// @Param id path int true "Result ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/admin/results/{id} [get]
func (h *ResultHandler) GetResult(c *gin.Context) {
	id, ok := parseID(c, "result")
	if !ok {
		return
	}

	result, err := h.results.GetResult(c.Request.Context(), id)
	if err != nil {
		respondLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": models.NewResultView(*result), "form": models.ResultFormFrom(*result)})
}

// CreateResult records a final score
// @Summary Create result
// @Tags admin-results
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param result body models.ResultRequest true "Result data"
// @Success 201 {object} handlers.ListResponse[models.ResultView]
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/admin/results [post]
func (h *ResultHandler) CreateResult(c *gin.Context) {
	var req models.ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.results.CreateResult(c.Request.Context(), req)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	h.respondWithList(c, http.StatusCreated, result)
}

// UpdateResult updates a result
// @Summary Update result
// @Tags admin-results
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Result ID"
// @Param result body models.ResultRequest true "Result data"
// @Success 200 {object} handlers.ListResponse[models.ResultView]
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/admin/results/{id} [put]
func (h *ResultHandler) UpdateResult(c *gin.Context) {
	id, ok := parseID(c, "result")
	if !ok {
		return
	}

	var req models.ResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.results.UpdateResult(c.Request.Context(), id, req)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	h.respondWithList(c, http.StatusOK, result)
}

// DeleteResult deletes a result
// @Summary Delete result
// @Description Destructive; requires confirm=true
// @Tags admin-results
// @Security BearerAuth
// @Produce json
// @Param id path int true "Result ID"
// @Param confirm query bool true "Confirm the deletion"
// @Success 200 {object} handlers.ListResponse[models.ResultView]
// @Failure 404 {object} map[string]string
// @Failure 428 {object} map[string]string
// @Router /api/admin/results/{id} [delete]
func (h *ResultHandler) DeleteResult(c *gin.Context) {
	id, ok := parseID(c, "result")
	if !ok || !confirmed(c) {
		return
	}

	if err := h.results.DeleteResult(c.Request.Context(), id); err != nil {
		respondDeleteError(c, err)
		return
	}

	h.respondWithList(c, http.StatusOK, nil)
}

func (h *ResultHandler) respondWithList(c *gin.Context, status int, result *models.Result) {
	refreshFeeds(c, h.feeds, h.logger)

	results, err := h.results.ListResults(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := ListResponse[models.ResultView]{Items: models.NewResultViews(results)}
	if result != nil {
		view := models.NewResultView(*result)
		resp.Item = &view
	}
	c.JSON(status, resp)
}
