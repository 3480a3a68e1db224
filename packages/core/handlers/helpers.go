package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"titans-lacrosse/packages/core/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Refresher re-fetches the public read models after a write.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// ListResponse is what a successful admin write returns: the saved row
// and the re-fetched listing.
type ListResponse[T any] struct {
	Item  *T  `json:"item,omitempty"`
	Items []T `json:"items"`
}

func parseID(c *gin.Context, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return 0, false
	}
	return uint(id), true
}

// confirmed reports whether a destructive request carries confirm=true.
// Unconfirmed requests are answered with 428 and leave the data untouched.
func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	if !ok {
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": "Deletion must be confirmed with confirm=true"})
		return false
	}
	return true
}

// respondLoadError answers a failed read.
func respondLoadError(c *gin.Context, err error) {
	if services.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// respondSaveError answers a failed create or update: unknown rows are 404,
// anything else the backend refused is passed through as 422.
func respondSaveError(c *gin.Context, err error) {
	if services.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}

// respondDeleteError answers a failed delete.
func respondDeleteError(c *gin.Context, err error) {
	if services.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// refreshFeeds re-fetches the public feeds. The write already succeeded, so
// a failed refresh is only logged.
func refreshFeeds(c *gin.Context, feeds Refresher, logger *zap.Logger) {
	if feeds == nil {
		return
	}
	if err := feeds.RefreshAll(c.Request.Context()); err != nil {
		logger.Warn("feed refresh after write failed", zap.Error(err))
	}
}

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
