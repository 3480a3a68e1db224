package core

import (
	"context"
	"time"

	"titans-lacrosse/packages/core/contact"
	"titans-lacrosse/packages/core/cron"
	"titans-lacrosse/packages/core/feeds"
	"titans-lacrosse/packages/core/handlers"
	"titans-lacrosse/packages/core/services"
	"titans-lacrosse/packages/core/storage"
	"titans-lacrosse/packages/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	// Location is the club's time zone; "today" and midnight are taken there.
	Location *time.Location
	Store    storage.ObjectStore
	Relay    contact.Relay
	// TokenCleaner, when set, gets a nightly cleanup job.
	TokenCleaner cron.TokenCleaner
	Logger       *zap.Logger
	// Now overrides the clock of the feeds.
	Now func() time.Time
}

type Module struct {
	GameService    *services.GameService
	ResultService  *services.ResultService
	TeamService    *services.TeamService
	PlayerService  *services.PlayerService
	SettingService *services.SettingService

	Feeds     *feeds.Feeds
	Uploader  *storage.Uploader
	Scheduler *cron.Scheduler

	FeedHandler    *handlers.FeedHandler
	GameHandler    *handlers.GameHandler
	ResultHandler  *handlers.ResultHandler
	TeamHandler    *handlers.TeamHandler
	PlayerHandler  *handlers.PlayerHandler
	SettingHandler *handlers.SettingHandler
	UploadHandler  *handlers.UploadHandler
	ExportHandler  *handlers.ExportHandler
	ContactHandler *handlers.ContactHandler

	logger *zap.Logger
}

func NewModule(db *gorm.DB, opts Options) *Module {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	gameService := services.NewGameService(db)
	resultService := services.NewResultService(db)
	teamService := services.NewTeamService(db)
	playerService := services.NewPlayerService(db)
	settingService := services.NewSettingService(db)

	feedOpts := []feeds.Option{
		feeds.WithLocation(loc),
		feeds.WithLogger(logging.Component(logger, "feeds")),
	}
	if opts.Now != nil {
		feedOpts = append(feedOpts, feeds.WithClock(opts.Now))
	}
	f := feeds.New(gameService, resultService, feedOpts...)

	relay := opts.Relay
	if relay == nil {
		relay = contact.NewLogRelay(logging.Component(logger, "contact"))
	}

	var uploader *storage.Uploader
	if opts.Store != nil {
		uploader = storage.NewUploader(opts.Store)
	}

	scheduler := cron.NewScheduler(f, opts.TokenCleaner, loc, logging.Component(logger, "cron"))

	handlerLogger := logging.Component(logger, "handlers")
	return &Module{
		GameService:    gameService,
		ResultService:  resultService,
		TeamService:    teamService,
		PlayerService:  playerService,
		SettingService: settingService,

		Feeds:     f,
		Uploader:  uploader,
		Scheduler: scheduler,

		FeedHandler:    handlers.NewFeedHandler(f),
		GameHandler:    handlers.NewGameHandler(gameService, settingService, f, handlerLogger),
		ResultHandler:  handlers.NewResultHandler(resultService, settingService, f, handlerLogger),
		TeamHandler:    handlers.NewTeamHandler(teamService, resultService, f, handlerLogger),
		PlayerHandler:  handlers.NewPlayerHandler(playerService, handlerLogger),
		SettingHandler: handlers.NewSettingHandler(settingService),
		UploadHandler:  handlers.NewUploadHandler(uploader, playerService, teamService, f, handlerLogger),
		ExportHandler:  handlers.NewExportHandler(resultService, playerService, handlerLogger),
		ContactHandler: handlers.NewContactHandler(relay, handlerLogger),

		logger: logger,
	}
}

// SetupRoutes mounts the public API on api and the admin API on admin.
// admin is expected to carry the auth guards already.
func (m *Module) SetupRoutes(api *gin.RouterGroup, admin *gin.RouterGroup) {
	api.GET("/games", m.FeedHandler.GetUpcomingGames)
	api.GET("/results", m.FeedHandler.GetLatestResults)
	api.GET("/stats", m.FeedHandler.GetStats)
	api.GET("/roster", m.PlayerHandler.GetRoster)
	api.GET("/teams", m.TeamHandler.ListTeams)
	api.POST("/contact", m.ContactHandler.SubmitContact)

	games := admin.Group("/games")
	{
		games.GET("", m.GameHandler.ListGames)
		games.GET("/new", m.GameHandler.NewGame)
		games.GET("/:id", m.GameHandler.GetGame)
		games.POST("", m.GameHandler.CreateGame)
		games.PUT("/:id", m.GameHandler.UpdateGame)
		games.DELETE("/:id", m.GameHandler.DeleteGame)
	}

	results := admin.Group("/results")
	{
		results.GET("", m.ResultHandler.ListResults)
		results.GET("/new", m.ResultHandler.NewResult)
		results.GET("/:id", m.ResultHandler.GetResult)
		results.POST("", m.ResultHandler.CreateResult)
		results.PUT("/:id", m.ResultHandler.UpdateResult)
		results.DELETE("/:id", m.ResultHandler.DeleteResult)
	}

	teams := admin.Group("/teams")
	{
		teams.GET("", m.TeamHandler.ListTeams)
		teams.GET("/new", m.TeamHandler.NewTeam)
		teams.GET("/picker", m.TeamHandler.TeamPicker)
		teams.GET("/:id", m.TeamHandler.GetTeam)
		teams.GET("/:id/record", m.TeamHandler.TeamRecord)
		teams.POST("", m.TeamHandler.CreateTeam)
		teams.PUT("/:id", m.TeamHandler.UpdateTeam)
		teams.DELETE("/:id", m.TeamHandler.DeleteTeam)
	}

	players := admin.Group("/players")
	{
		players.GET("", m.PlayerHandler.ListPlayers)
		players.GET("/new", m.PlayerHandler.NewPlayer)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.POST("", m.PlayerHandler.CreatePlayer)
		players.PUT("/:id", m.PlayerHandler.UpdatePlayer)
		players.DELETE("/:id", m.PlayerHandler.DeletePlayer)
	}

	settings := admin.Group("/settings")
	{
		settings.GET("", m.SettingHandler.ListSettings)
		settings.PUT("/:key", m.SettingHandler.UpdateSetting)
	}

	if m.Uploader != nil {
		admin.POST("/uploads/:bucket", m.UploadHandler.UploadImage)
		players.POST("/:id/photo", m.UploadHandler.UploadPlayerPhoto)
		teams.POST("/:id/logo", m.UploadHandler.UploadTeamLogo)
	}

	exports := admin.Group("/exports")
	{
		exports.GET("/results.xlsx", m.ExportHandler.ExportResults)
		exports.GET("/roster.xlsx", m.ExportHandler.ExportRoster)
	}
}

// Start mounts the default feeds and starts the scheduler. A feed that
// fails its first fetch is logged and retried by the scheduler.
func (m *Module) Start(ctx context.Context) error {
	if err := m.Feeds.Start(ctx); err != nil {
		m.logger.Warn("initial feed fetch failed", zap.Error(err))
	}
	return m.Scheduler.Start()
}

// Stop stops the scheduler
func (m *Module) Stop() {
	m.Scheduler.Stop()
}
