package handlers

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"titans-lacrosse/internal/testdb"
	"titans-lacrosse/packages/core/models"
	"titans-lacrosse/packages/core/services"
	"titans-lacrosse/packages/core/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngImage = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00"), make([]byte, 64)...)

func init() {
	gin.SetMode(gin.TestMode)
}

func newUploadHandler(t *testing.T) (*UploadHandler, *services.TeamService) {
	t.Helper()
	db := testdb.Open(t, &models.Team{}, &models.Player{})
	store, err := storage.NewDiskStore(t.TempDir(), "/storage")
	require.NoError(t, err)

	teams := services.NewTeamService(db)
	h := NewUploadHandler(storage.NewUploader(store), services.NewPlayerService(db), teams, nil, nil)
	return h, teams
}

func uploadLogo(t *testing.T, h *UploadHandler, teamID uint) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "crest.png")
	require.NoError(t, err)
	_, err = part.Write(pngImage)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	r := gin.New()
	r.POST("/teams/:id/logo", h.UploadTeamLogo)

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/teams/%d/logo", teamID), &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUploadReleasesRowSlot(t *testing.T) {
	h, teams := newUploadHandler(t)
	ctx := context.Background()
	team, err := teams.CreateTeam(ctx, models.TeamRequest{Name: "Hampton"})
	require.NoError(t, err)

	rec := uploadLogo(t, h, team.ID)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, h.slots)

	stored, err := teams.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Contains(t, rec.Body.String(), stored.LogoURL)
}

func TestWidgetStartsFromCurrentRow(t *testing.T) {
	h, _ := newUploadHandler(t)

	first, release := h.acquireWidget(storage.BucketTeamLogos, 7, "/storage/team-logos/old.png", nil)
	release()
	assert.Equal(t, "/storage/team-logos/old.png", first.Current())

	second, release := h.acquireWidget(storage.BucketTeamLogos, 7, "/storage/team-logos/edited.png", nil)
	defer release()
	assert.Equal(t, "/storage/team-logos/edited.png", second.Current())
}

func TestOverlappingUploadsShareWidget(t *testing.T) {
	h, _ := newUploadHandler(t)

	first, releaseFirst := h.acquireWidget(storage.BucketPlayerPhotos, 3, "", nil)
	second, releaseSecond := h.acquireWidget(storage.BucketPlayerPhotos, 3, "", nil)
	other, releaseOther := h.acquireWidget(storage.BucketTeamLogos, 3, "", nil)

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)

	releaseFirst()
	assert.Len(t, h.slots, 2)
	releaseSecond()
	releaseOther()
	assert.Empty(t, h.slots)
}
