package feeds

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by Refetch when a newer fetch of the same query
// was started before this one finished. Its result has been discarded.
var ErrSuperseded = errors.New("superseded by a newer fetch")

// Fetcher loads the data behind a query.
type Fetcher[T any] func(ctx context.Context) (T, error)

// State is what readers of a query see.
type State[T any] struct {
	Data    T      `json:"data"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Query holds one asynchronous read and its loading/error/data state.
// Every fetch takes a token; only the most recently started fetch may
// write the state.
type Query[T any] struct {
	fetch Fetcher[T]

	mu    sync.Mutex
	seq   uint64
	state State[T]
}

func NewQuery[T any](fetch Fetcher[T], initial T) *Query[T] {
	return &Query[T]{
		fetch: fetch,
		state: State[T]{Data: initial},
	}
}

// Refetch runs the fetcher and stores its outcome. On failure the previous
// data is kept and the error message recorded.
func (q *Query[T]) Refetch(ctx context.Context) (State[T], error) {
	q.mu.Lock()
	q.seq++
	token := q.seq
	q.state.Loading = true
	q.mu.Unlock()

	data, err := q.fetch(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()

	if token != q.seq {
		return q.state, ErrSuperseded
	}

	q.state.Loading = false
	if err != nil {
		q.state.Error = err.Error()
		return q.state, err
	}

	q.state.Data = data
	q.state.Error = ""
	return q.state, nil
}

func (q *Query[T]) Snapshot() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

type refresher interface {
	refresh(ctx context.Context) error
}

func (q *Query[T]) refresh(ctx context.Context) error {
	_, err := q.Refetch(ctx)
	return err
}
