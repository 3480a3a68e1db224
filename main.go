package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"titans-lacrosse/config"
	_ "titans-lacrosse/docs" // Swagger docs
	"titans-lacrosse/packages/auth"
	"titans-lacrosse/packages/core"
	"titans-lacrosse/packages/core/contact"
	"titans-lacrosse/packages/core/storage"
	"titans-lacrosse/packages/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title           Shaler Area Titans Lacrosse API
// @version         1.0
// @description     API for the Shaler Area Titans lacrosse club website
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  webmaster@shalertitanslacrosse.test

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const loginPage = "/admin/login"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDatabase(cfg.Database, logging.Component(logger, "database"))
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("invalid club time zone", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to set up storage", zap.Error(err))
	}

	authModule := auth.NewModule(db, auth.Options{
		JWTSecret:       cfg.Auth.JWTSecret,
		AccessTokenTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
		CookieSecure:    cfg.Auth.CookieSecure,
	}, logging.Component(logger, "auth"))

	coreModule := core.NewModule(db, core.Options{
		Location: loc,
		Store:    store,
		Relay: contact.NewRelay(contact.RelayConfig{
			FormURL:  cfg.Contact.FormURL,
			MailDSN:  cfg.Contact.MailDSN,
			MailFrom: cfg.Contact.MailFrom,
			MailTo:   cfg.Contact.MailTo,
			Timeout:  cfg.Contact.Timeout,
		}, logging.Component(logger, "contact")),
		TokenCleaner: authModule.Sessions,
		Logger:       logger,
	})

	gin.SetMode(cfg.Server.Mode)
	r := setupRouter(cfg, db, authModule, coreModule, logger)

	if err := coreModule.Start(ctx); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer coreModule.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newStore builds the object store named by the storage driver.
func newStore(ctx context.Context, cfg config.StorageConfig) (storage.ObjectStore, error) {
	if cfg.Driver == "s3" {
		s3, err := storage.NewS3Store(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.S3Region,
			UseSSL:    cfg.S3UseSSL,
			PublicURL: cfg.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		if err := s3.EnsureBuckets(ctx); err != nil {
			return nil, err
		}
		return s3, nil
	}
	return storage.NewDiskStore(cfg.Dir, cfg.PublicURL)
}

func setupRouter(cfg *config.Config, db *gorm.DB, authModule *auth.Module, coreModule *core.Module, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(logging.Component(logger, "http")), logging.GinRecovery(logger))

	if len(cfg.Server.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AddAllowHeaders("Authorization")
		r.Use(cors.New(corsConfig))
	}

	authModule.SetupRoutes(r)
	coreModule.SetupRoutes(
		r.Group("/api"),
		r.Group("/api/admin", authModule.JWTMiddleware(), authModule.RequireAdmin()),
	)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", healthHandler(db))

	if cfg.Storage.Driver == "disk" {
		r.Group("/storage", storageHeaders).Static("/", cfg.Storage.Dir)
	}

	pages := newPageHandler(cfg.Server.StaticDir)
	r.GET("/", pages.Serve)
	admin := r.Group("/admin", authModule.PageGuard(loginPage))
	{
		admin.GET("", pages.Serve)
		admin.GET("/login", pages.Serve)
		admin.GET("/games", pages.Serve)
		admin.GET("/results", pages.Serve)
		admin.GET("/teams", pages.Serve)
		admin.GET("/players", pages.Serve)
	}

	r.NoRoute(pages.NotFound)

	return r
}

// storageHeaders stops browsers from reinterpreting stored uploads.
func storageHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Security-Policy", "default-src 'none'; sandbox")
	c.Next()
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Message  string `json:"message" example:"Server is running"`
	Database string `json:"database" example:"connected"`
}

// @Summary Health Check
// @Description Check if the server is running and database is connected
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, HealthResponse{
				Message:  "Server is running",
				Database: "unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, HealthResponse{
			Message:  "Server is running",
			Database: "connected",
		})
	}
}

// pageHandler serves the single-page app shell for page routes.
type pageHandler struct {
	dir string
}

func newPageHandler(dir string) *pageHandler {
	return &pageHandler{dir: dir}
}

// Serve answers a page route with the app shell, or with the page name
// when no bundle is configured.
func (h *pageHandler) Serve(c *gin.Context) {
	if h.dir == "" {
		c.JSON(http.StatusOK, gin.H{"page": c.Request.URL.Path})
		return
	}
	c.File(filepath.Join(h.dir, "index.html"))
}

// NotFound answers unknown API paths with JSON, serves bundle assets,
// and sends every other path back to the site root.
func (h *pageHandler) NotFound(c *gin.Context) {
	path := c.Request.URL.Path
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	if h.dir != "" && c.Request.Method == http.MethodGet {
		file := filepath.Join(h.dir, filepath.FromSlash(filepath.Clean("/"+path)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
	}

	c.Redirect(http.StatusFound, "/")
}
