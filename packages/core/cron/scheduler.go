package cron

import (
	"context"
	"time"

	"titans-lacrosse/packages/logging"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// Midnight, when yesterday's games leave the schedule.
	SpecMidnight = "0 0 0 * * *"
	// Every 15 minutes, to pick up edits made outside the admin API.
	SpecFeedRefresh = "0 */15 * * * *"
	// Nightly refresh token cleanup.
	SpecTokenCleanup = "0 30 3 * * *"

	jobTimeout = time.Minute
)

// FeedRefresher re-fetches the public read models.
type FeedRefresher interface {
	RefreshAll(ctx context.Context) error
}

// TokenCleaner removes expired refresh tokens.
type TokenCleaner interface {
	CleanExpiredTokens(ctx context.Context) (int64, error)
}

type job struct {
	name string
	spec string
	run  func()
}

type Scheduler struct {
	cron   *cron.Cron
	feeds  FeedRefresher
	tokens TokenCleaner
	logger *zap.Logger
}

// NewScheduler runs its jobs in loc so that midnight is the club's midnight.
// tokens may be nil when no auth module is wired.
func NewScheduler(feeds FeedRefresher, tokens TokenCleaner, loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// Create cron with seconds precision and logging
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(loc),
		cron.WithLogger(logging.CronLogger(logger)),
		cron.WithChain(cron.SkipIfStillRunning(logging.CronLogger(logger))),
	)

	return &Scheduler{
		cron:   c,
		feeds:  feeds,
		tokens: tokens,
		logger: logger,
	}
}

// Start initializes and starts all scheduled jobs
func (s *Scheduler) Start() error {
	s.logger.Info("starting cron scheduler")

	jobs := []job{
		{"midnight feed refresh", SpecMidnight, s.runFeedRefresh},
		{"feed refresh", SpecFeedRefresh, s.runFeedRefresh},
	}
	if s.tokens != nil {
		jobs = append(jobs, job{"token cleanup", SpecTokenCleanup, s.runTokenCleanup})
	}

	for _, j := range jobs {
		if _, err := s.cron.AddFunc(j.spec, j.run); err != nil {
			s.logger.Error("error scheduling job", zap.String("job", j.name), zap.Error(err))
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started", zap.Int("jobs", len(jobs)))
	return nil
}

// Stop gracefully shuts down the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping cron scheduler")
	<-s.cron.Stop().Done()
	s.logger.Info("cron scheduler stopped")
}

// Entries lists the scheduled jobs' next run times.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runFeedRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.feeds.RefreshAll(ctx); err != nil {
		s.logger.Warn("scheduled feed refresh failed", zap.Error(err))
		return
	}
	s.logger.Debug("feeds refreshed")
}

func (s *Scheduler) runTokenCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	removed, err := s.tokens.CleanExpiredTokens(ctx)
	if err != nil {
		s.logger.Error("refresh token cleanup failed", zap.Error(err))
		return
	}
	s.logger.Info("expired refresh tokens removed", zap.Int64("count", removed))
}

// RunNow runs every job once, synchronously.
func (s *Scheduler) RunNow() {
	s.logger.Info("manually triggering scheduled jobs")
	s.runFeedRefresh()
	if s.tokens != nil {
		s.runTokenCleanup()
	}
}
