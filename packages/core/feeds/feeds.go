package feeds

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"titans-lacrosse/packages/core/models"
	"titans-lacrosse/packages/core/services"

	"go.uber.org/zap"
)

const (
	DefaultResultsLimit = 1
	MaxResultsLimit     = 100
)

// ClampLimit maps a requested row bound onto 1..MaxResultsLimit; anything
// not positive means the default.
func ClampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultResultsLimit
	case n > MaxResultsLimit:
		return MaxResultsLimit
	default:
		return n
	}
}

// Feeds owns the process-wide read queries served to the public site.
type Feeds struct {
	games   services.GameRepository
	results services.ResultRepository
	logger  *zap.Logger
	now     func() time.Time
	loc     *time.Location

	upcoming *Query[[]models.Game]
	stats    *Query[models.Stats]

	mu     sync.Mutex
	latest map[int]*Query[[]models.ResultView]
}

type Option func(*Feeds)

// WithClock replaces time.Now when computing today's date.
func WithClock(now func() time.Time) Option {
	return func(f *Feeds) {
		f.now = now
	}
}

// WithLocation sets the club time zone used to decide what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(f *Feeds) {
		f.loc = loc
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(f *Feeds) {
		f.logger = logger
	}
}

func New(games services.GameRepository, results services.ResultRepository, opts ...Option) *Feeds {
	f := &Feeds{
		games:   games,
		results: results,
		logger:  zap.NewNop(),
		now:     time.Now,
		loc:     time.Local,
		latest:  make(map[int]*Query[[]models.ResultView]),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.upcoming = NewQuery(f.fetchUpcoming, make([]models.Game, 0))
	f.stats = NewQuery(f.fetchStats, models.Stats{})

	return f
}

// Games is the upcoming schedule: games dated today or later, soonest first.
func (f *Feeds) Games() *Query[[]models.Game] {
	return f.upcoming
}

// Stats is the season summary over every result.
func (f *Feeds) Stats() *Query[models.Stats] {
	return f.stats
}

// Results returns the newest-first results query for bound n. A bound seen
// for the first time gets its own query, fetched before it is returned.
func (f *Feeds) Results(ctx context.Context, n int) *Query[[]models.ResultView] {
	limit := ClampLimit(n)

	f.mu.Lock()
	q, ok := f.latest[limit]
	if !ok {
		q = NewQuery(f.fetchResults(limit), make([]models.ResultView, 0))
		// readers arriving before the first fetch lands see it as loading
		q.state.Loading = true
		f.latest[limit] = q
	}
	f.mu.Unlock()

	if !ok {
		f.refetch(ctx, "results", q)
	}
	return q
}

// Start mounts the default feeds.
func (f *Feeds) Start(ctx context.Context) error {
	f.Results(ctx, DefaultResultsLimit)
	return errors.Join(
		f.refetch(ctx, "games", f.upcoming),
		f.refetch(ctx, "stats", f.stats),
	)
}

// RefreshAll re-fetches every mounted feed. Fetches overtaken by a newer
// one are not reported as errors.
func (f *Feeds) RefreshAll(ctx context.Context) error {
	errs := []error{
		f.refetch(ctx, "games", f.upcoming),
		f.refetch(ctx, "stats", f.stats),
	}

	for _, limit := range f.mountedLimits() {
		f.mu.Lock()
		q := f.latest[limit]
		f.mu.Unlock()
		errs = append(errs, f.refetch(ctx, "results", q))
	}

	return errors.Join(errs...)
}

func (f *Feeds) mountedLimits() []int {
	f.mu.Lock()
	defer f.mu.Unlock()

	limits := make([]int, 0, len(f.latest))
	for limit := range f.latest {
		limits = append(limits, limit)
	}
	sort.Ints(limits)
	return limits
}

func (f *Feeds) refetch(ctx context.Context, name string, q refresher) error {
	err := q.refresh(ctx)
	if err == nil || errors.Is(err, ErrSuperseded) {
		return nil
	}

	f.logger.Warn("feed fetch failed", zap.String("feed", name), zap.Error(err))
	return fmt.Errorf("%s feed: %w", name, err)
}

func (f *Feeds) fetchUpcoming(ctx context.Context) ([]models.Game, error) {
	return f.games.ListUpcomingGames(ctx, models.Today(f.now(), f.loc))
}

func (f *Feeds) fetchStats(ctx context.Context) (models.Stats, error) {
	results, err := f.results.ListResults(ctx, 0)
	if err != nil {
		return models.Stats{}, err
	}
	return models.ComputeStats(results), nil
}

func (f *Feeds) fetchResults(limit int) Fetcher[[]models.ResultView] {
	return func(ctx context.Context) ([]models.ResultView, error) {
		results, err := f.results.ListResults(ctx, limit)
		if err != nil {
			return nil, err
		}
		return models.NewResultViews(results), nil
	}
}
