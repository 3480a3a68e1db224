package handlers

import (
	"fmt"
	"net/http"

	"titans-lacrosse/packages/core/export"
	"titans-lacrosse/packages/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExportHandler struct {
	results services.ResultRepository
	players services.PlayerRepository
	logger  *zap.Logger
}

func NewExportHandler(results services.ResultRepository, players services.PlayerRepository, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		results: results,
		players: players,
		logger:  nopIfNil(logger),
	}
}

// ExportResults downloads every result as a spreadsheet
// @Summary Export results
// @Description Results and a season summary as an xlsx workbook
// @Tags admin-exports
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} map[string]string
// @Router /api/admin/exports/results.xlsx [get]
func (h *ExportHandler) ExportResults(c *gin.Context) {
	results, err := h.results.ListResults(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, err := export.Results(results)
	if err != nil {
		h.logger.Error("results export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	attachment(c, "results.xlsx", data)
}

// ExportRoster downloads every player as a spreadsheet
// @Summary Export roster
// @Tags admin-exports
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} map[string]string
// @Router /api/admin/exports/roster.xlsx [get]
func (h *ExportHandler) ExportRoster(c *gin.Context) {
	players, err := h.players.ListPlayers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, err := export.Roster(players)
	if err != nil {
		h.logger.Error("roster export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	attachment(c, "roster.xlsx", data)
}

func attachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType, data)
}
