package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"titans-lacrosse/packages/core/feeds"

	"github.com/gin-gonic/gin"
)

// FeedHandler serves the public read models as snapshots.
type FeedHandler struct {
	feeds *feeds.Feeds
}

func NewFeedHandler(f *feeds.Feeds) *FeedHandler {
	return &FeedHandler{feeds: f}
}

// GetUpcomingGames gets the upcoming schedule
// @Summary Upcoming games
// @Description Games dated today or later, soonest first. The response is the feed state; a failed refresh keeps the previous data and sets error.
// @Tags feeds
// @Produce json
// @Param refresh query bool false "Re-fetch before answering"
// @Success 200 {object} feeds.State[[]models.Game]
// @Router /api/games [get]
func (h *FeedHandler) GetUpcomingGames(c *gin.Context) {
	q := h.feeds.Games()
	if wantsRefresh(c) {
		if _, err := q.Refetch(c.Request.Context()); err != nil && !errors.Is(err, feeds.ErrSuperseded) {
			c.Error(err)
		}
	}

	c.JSON(http.StatusOK, q.Snapshot())
}

// GetLatestResults gets the most recent results
// @Summary Latest results
// @Description The newest results with their outcome
// @Tags feeds
// @Produce json
// @Param limit query int false "How many results (1 to 100, default 1)"
// @Param refresh query bool false "Re-fetch before answering"
// @Success 200 {object} feeds.State[[]models.ResultView]
// @Failure 400 {object} map[string]string
// @Router /api/results [get]
func (h *FeedHandler) GetLatestResults(c *gin.Context) {
	limit := feeds.DefaultResultsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	q := h.feeds.Results(c.Request.Context(), limit)
	if wantsRefresh(c) {
		if _, err := q.Refetch(c.Request.Context()); err != nil && !errors.Is(err, feeds.ErrSuperseded) {
			c.Error(err)
		}
	}

	c.JSON(http.StatusOK, q.Snapshot())
}

// GetStats gets the season summary
// @Summary Season stats
// @Description Totals over every result. losses counts every game not won; ties is reported alongside.
// @Tags feeds
// @Produce json
// @Param refresh query bool false "Re-fetch before answering"
// @Success 200 {object} feeds.State[models.Stats]
// @Router /api/stats [get]
func (h *FeedHandler) GetStats(c *gin.Context) {
	q := h.feeds.Stats()
	if wantsRefresh(c) {
		if _, err := q.Refetch(c.Request.Context()); err != nil && !errors.Is(err, feeds.ErrSuperseded) {
			c.Error(err)
		}
	}

	c.JSON(http.StatusOK, q.Snapshot())
}

func wantsRefresh(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("refresh"))
	return ok
}
