package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"titans-lacrosse/config"
	"titans-lacrosse/internal/testdb"
	"titans-lacrosse/packages/auth"
	authModels "titans-lacrosse/packages/auth/models"
	"titans-lacrosse/packages/core"
	"titans-lacrosse/packages/core/models"
	"titans-lacrosse/packages/core/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type app struct {
	router     *gin.Engine
	auth       *auth.Module
	storageDir string
}

func newApp(t *testing.T, staticDir string) *app {
	t.Helper()
	db := testdb.Open(t,
		&models.Team{}, &models.Game{}, &models.Result{}, &models.Player{}, &models.Setting{},
		&authModels.User{}, &authModels.RefreshToken{},
	)

	cfg := config.Default()
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Server.StaticDir = staticDir
	cfg.Storage.Dir = t.TempDir()

	store, err := storage.NewDiskStore(cfg.Storage.Dir, "/storage")
	require.NoError(t, err)

	authModule := auth.NewModule(db, auth.Options{
		JWTSecret:       cfg.Auth.JWTSecret,
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}, zap.NewNop())
	coreModule := core.NewModule(db, core.Options{Location: time.UTC, Store: store})

	return &app{
		router:     setupRouter(&cfg, db, authModule, coreModule, zap.NewNop()),
		auth:       authModule,
		storageDir: cfg.Storage.Dir,
	}
}

func (a *app) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *app) signIn(t *testing.T, roles ...string) string {
	t.Helper()
	ctx := context.Background()
	_, err := a.auth.Sessions.CreateUser(ctx, "coach@titans.test", "coach", "s3cret", roles...)
	require.NoError(t, err)
	session, err := a.auth.Sessions.SignIn(ctx, "coach@titans.test", "s3cret")
	require.NoError(t, err)
	return session.Tokens.AccessToken
}

func TestHealth(t *testing.T) {
	a := newApp(t, "")

	rec := a.get("/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "connected", body.Database)
}

func TestUnmatchedPaths(t *testing.T) {
	a := newApp(t, "")

	rec := a.get("/api/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())

	rec = a.get("/somewhere/else", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestPublicAPIIsOpen(t *testing.T) {
	a := newApp(t, "")

	for _, path := range []string{"/api/games", "/api/results", "/api/stats", "/api/roster", "/api/teams"} {
		rec := a.get(path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAdminAPIRequiresAdmin(t *testing.T) {
	a := newApp(t, "")

	rec := a.get("/api/admin/games", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := a.signIn(t, authModels.RoleAdmin)
	rec = a.get("/api/admin/games", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminAPIRejectsPlainUsers(t *testing.T) {
	a := newApp(t, "")

	token := a.signIn(t)
	rec := a.get("/api/admin/games", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminPagesAreGuarded(t *testing.T) {
	a := newApp(t, "")

	rec := a.get("/admin/games", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, loginPage, rec.Header().Get("Location"))

	rec = a.get(loginPage, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"page":"/admin/login"}`, rec.Body.String())

	token := a.signIn(t, authModels.RoleAdmin)
	rec = a.get("/admin/games", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaticBundle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>titans</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.svg"), []byte("<svg/>"), 0o644))
	a := newApp(t, dir)

	rec := a.get("/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "titans")

	rec = a.get("/logo.svg", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<svg/>", rec.Body.String())

	rec = a.get("/../../etc/passwd", "")
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestStoredUploadsAreNotSniffed(t *testing.T) {
	a := newApp(t, "")
	require.NoError(t, os.MkdirAll(filepath.Join(a.storageDir, storage.BucketTeamLogos), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(a.storageDir, storage.BucketTeamLogos, "crest.gif"), []byte("GIF89a"), 0o644))

	rec := a.get("/storage/team-logos/crest.gif", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "sandbox")
	assert.Equal(t, "GIF89a", rec.Body.String())
}

type swaggerDoc struct {
	Paths map[string]map[string]struct {
		Responses map[string]struct {
			Schema struct {
				Ref string `json:"$ref"`
			} `json:"schema"`
		} `json:"responses"`
	} `json:"paths"`
	Definitions map[string]struct {
		Properties map[string]json.RawMessage `json:"properties"`
	} `json:"definitions"`
}

func readSwaggerDoc(t *testing.T) swaggerDoc {
	t.Helper()
	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

var routeParam = regexp.MustCompile(`:(\w+)`)

func TestEveryAPIRouteIsDocumented(t *testing.T) {
	a := newApp(t, "")
	doc := readSwaggerDoc(t)

	documented := 0
	for _, route := range a.router.Routes() {
		if route.Path != "/health" && !strings.HasPrefix(route.Path, "/api/") {
			continue
		}
		path := routeParam.ReplaceAllString(route.Path, "{$1}")
		_, ok := doc.Paths[path][strings.ToLower(route.Method)]
		assert.True(t, ok, "%s %s is not documented", route.Method, path)
		documented++
	}
	assert.Greater(t, documented, 40)
}

func TestFeedDocsDescribeStateEnvelope(t *testing.T) {
	a := newApp(t, "")
	doc := readSwaggerDoc(t)

	for _, path := range []string{"/api/games", "/api/results", "/api/stats"} {
		ref := doc.Paths[path]["get"].Responses["200"].Schema.Ref
		require.NotEmpty(t, ref, path)
		props := doc.Definitions[strings.TrimPrefix(ref, "#/definitions/")].Properties
		require.NotEmpty(t, props, path)

		rec := a.get(path, "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body, "data", path)
		for key := range body {
			assert.Contains(t, props, key, path)
		}
	}
}
