package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"titans-lacrosse/packages/core/services"
	"titans-lacrosse/packages/core/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipart overhead allowed on top of the file itself
const formOverhead = 1 << 20

type UploadHandler struct {
	uploader *storage.Uploader
	players  services.PlayerRepository
	teams    services.TeamRepository
	feeds    Refresher
	logger   *zap.Logger

	mu    sync.Mutex
	slots map[string]*widgetSlot
}

// widgetSlot is the image slot of one row while uploads to it are in flight.
type widgetSlot struct {
	widget *storage.Widget
	users  int
}

func NewUploadHandler(uploader *storage.Uploader, players services.PlayerRepository, teams services.TeamRepository, feeds Refresher, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		players:  players,
		teams:    teams,
		feeds:    feeds,
		logger:   nopIfNil(logger),
		slots:    make(map[string]*widgetSlot),
	}
}

// UploadImage stores an image
// @Summary Upload an image
// @Description Stores an image in a bucket and returns its public URL
// @Tags admin-uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param bucket path string true "player-photos or team-logos"
// @Param file formData file true "Image"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 415 {object} map[string]string
// @Router /api/admin/uploads/{bucket} [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	bucket := c.Param("bucket")
	if err := storage.ValidateBucket(bucket); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.receive(c, func(ctx context.Context, filename string, file io.Reader, size int64) (string, error) {
		return h.uploader.Upload(ctx, bucket, filename, file, size)
	})
}

// UploadPlayerPhoto replaces a player's photo
// @Summary Upload a player photo
// @Description Stores the image and points the player at it. One upload per player at a time.
// @Tags admin-uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Player ID"
// @Param file formData file true "Image"
// @Success 201 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 415 {object} map[string]string
// @Router /api/admin/players/{id}/photo [post]
func (h *UploadHandler) UploadPlayerPhoto(c *gin.Context) {
	id, ok := parseID(c, "player")
	if !ok {
		return
	}

	player, err := h.players.GetPlayer(c.Request.Context(), id)
	if err != nil {
		respondLoadError(c, err)
		return
	}

	widget, release := h.acquireWidget(storage.BucketPlayerPhotos, id, player.PhotoURL, func(ctx context.Context, url string) error {
		return h.players.SetPlayerPhoto(ctx, id, url)
	})
	defer release()
	h.receive(c, func(ctx context.Context, filename string, file io.Reader, size int64) (string, error) {
		return widget.Upload(ctx, filename, file, size)
	})
}

// UploadTeamLogo replaces a team's logo
// @Summary Upload a team logo
// @Description Stores the image and points the team at it. One upload per team at a time.
// @Tags admin-uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Team ID"
// @Param file formData file true "Image"
// @Success 201 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 415 {object} map[string]string
// @Router /api/admin/teams/{id}/logo [post]
func (h *UploadHandler) UploadTeamLogo(c *gin.Context) {
	id, ok := parseID(c, "team")
	if !ok {
		return
	}

	team, err := h.teams.GetTeam(c.Request.Context(), id)
	if err != nil {
		respondLoadError(c, err)
		return
	}

	widget, release := h.acquireWidget(storage.BucketTeamLogos, id, team.LogoURL, func(ctx context.Context, url string) error {
		if err := h.teams.SetTeamLogo(ctx, id, url); err != nil {
			return err
		}
		// schedule and results embed team logos
		if h.feeds == nil {
			return nil
		}
		if err := h.feeds.RefreshAll(ctx); err != nil {
			h.logger.Warn("feed refresh after logo upload failed", zap.Error(err))
		}
		return nil
	})
	defer release()
	h.receive(c, func(ctx context.Context, filename string, file io.Reader, size int64) (string, error) {
		return widget.Upload(ctx, filename, file, size)
	})
}

type uploadFunc func(ctx context.Context, filename string, file io.Reader, size int64) (string, error)

func (h *UploadHandler) receive(c *gin.Context, upload uploadFunc) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadSize+formOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": storage.ErrFileTooLarge.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file field is required"})
		return
	}
	if header.Size > storage.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": storage.ErrFileTooLarge.Error()})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	url, err := upload(c.Request.Context(), header.Filename, file, header.Size)
	if err != nil {
		h.respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (h *UploadHandler) respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrUploadInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotAnImage):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrUnknownBucket):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// acquireWidget returns the image slot of one row. Requests overlapping in
// time share one widget and so one busy flag; the slot is dropped when the
// last of them releases it, so the next upload starts from the row as it is
// stored now.
func (h *UploadHandler) acquireWidget(bucket string, id uint, current string, onUploaded storage.UploadedFunc) (*storage.Widget, func()) {
	key := fmt.Sprintf("%s/%d", bucket, id)

	h.mu.Lock()
	defer h.mu.Unlock()

	slot, ok := h.slots[key]
	if !ok {
		slot = &widgetSlot{widget: storage.NewWidget(h.uploader, bucket, current, onUploaded)}
		h.slots[key] = slot
	}
	slot.users++

	return slot.widget, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		slot.users--
		if slot.users == 0 && h.slots[key] == slot {
			delete(h.slots, key)
		}
	}
}
