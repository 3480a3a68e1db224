package storage

import (
	"context"
	"errors"
	"io"
	"sync"
)

var ErrUploadInProgress = errors.New("an upload is already in progress")

// UploadedFunc receives the URL of a freshly stored image.
type UploadedFunc func(ctx context.Context, url string) error

// Widget is one image slot (a player photo, a team logo). It accepts a
// single upload at a time and only replaces its current image once the
// new one is stored and accepted by the owner.
type Widget struct {
	uploader   *Uploader
	bucket     string
	onUploaded UploadedFunc

	mu      sync.Mutex
	busy    bool
	current string
}

func NewWidget(uploader *Uploader, bucket, current string, onUploaded UploadedFunc) *Widget {
	return &Widget{
		uploader:   uploader,
		bucket:     bucket,
		onUploaded: onUploaded,
		current:    current,
	}
}

func (w *Widget) Current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

func (w *Widget) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

func (w *Widget) Upload(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return "", ErrUploadInProgress
	}
	w.busy = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}()

	url, err := w.uploader.Upload(ctx, w.bucket, filename, r, size)
	if err != nil {
		return "", err
	}

	if w.onUploaded != nil {
		if err := w.onUploaded(ctx, url); err != nil {
			return "", err
		}
	}

	w.mu.Lock()
	w.current = url
	w.mu.Unlock()

	return url, nil
}
