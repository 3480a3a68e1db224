package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countingFeeds struct {
	calls atomic.Int32
	err   error
}

func (f *countingFeeds) RefreshAll(ctx context.Context) error {
	f.calls.Add(1)
	return f.err
}

type countingTokens struct {
	calls atomic.Int32
}

func (t *countingTokens) CleanExpiredTokens(ctx context.Context) (int64, error) {
	t.calls.Add(1)
	return 2, nil
}

func TestSchedulerJobs(t *testing.T) {
	feeds := &countingFeeds{}
	tokens := &countingTokens{}
	s := NewScheduler(feeds, tokens, time.UTC, zap.NewNop())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.Entries(), 3)
	for _, entry := range s.Entries() {
		assert.False(t, entry.Next.IsZero())
	}

	s.RunNow()
	assert.Equal(t, int32(1), feeds.calls.Load())
	assert.Equal(t, int32(1), tokens.calls.Load())
}

func TestSchedulerWithoutTokenCleanup(t *testing.T) {
	s := NewScheduler(&countingFeeds{}, nil, nil, nil)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.Entries(), 2)
}

func TestSchedulerLogsFailedRefresh(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	feeds := &countingFeeds{err: errors.New("database is gone")}
	s := NewScheduler(feeds, nil, time.UTC, zap.New(core))

	s.RunNow()

	entries := logs.FilterMessage("scheduled feed refresh failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "database is gone", entries[0].ContextMap()["error"])
}

func TestMidnightRunsInClubTimeZone(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	s := NewScheduler(&countingFeeds{}, nil, loc, nil)

	require.NoError(t, s.Start())
	defer s.Stop()

	var midnight time.Time
	for _, entry := range s.Entries() {
		next := entry.Next.In(loc)
		if next.Hour() == 0 && next.Minute() == 0 {
			midnight = next
		}
	}
	require.False(t, midnight.IsZero())
	assert.Equal(t, 0, midnight.Second())
}
