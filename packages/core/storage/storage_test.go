package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type recordingStore struct {
	mu      sync.Mutex
	puts    []string
	data    map[string][]byte
	failPut error
	block   chan struct{}
}

func newRecordingStore() *recordingStore {
	return &recordingStore{data: make(map[string][]byte)}
}

func (s *recordingStore) Put(ctx context.Context, bucket, name, contentType string, r io.Reader, size int64) error {
	if s.block != nil {
		<-s.block
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts = append(s.puts, bucket+"/"+name)
	if s.failPut != nil {
		return s.failPut
	}
	s.data[bucket+"/"+name] = body
	return nil
}

func (s *recordingStore) PublicURL(bucket, name string) string {
	return "https://cdn.example.com/" + bucket + "/" + name
}

func (s *recordingStore) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.puts)
}

func TestUploaderRejectsNonImageBeforeStoring(t *testing.T) {
	store := newRecordingStore()
	uploader := NewUploader(store)

	body := []byte("name,score\nTitans,12\n")
	_, err := uploader.Upload(context.Background(), BucketPlayerPhotos, "roster.png", bytes.NewReader(body), int64(len(body)))

	assert.ErrorIs(t, err, ErrNotAnImage)
	assert.Equal(t, 0, store.putCount())
}

func TestUploaderRejectsEmptyAndOversized(t *testing.T) {
	store := newRecordingStore()
	uploader := NewUploader(store)

	_, err := uploader.Upload(context.Background(), BucketTeamLogos, "logo.png", bytes.NewReader(nil), 0)
	assert.ErrorIs(t, err, ErrNotAnImage)

	_, err = uploader.Upload(context.Background(), BucketTeamLogos, "logo.png", bytes.NewReader(pngHeader), MaxUploadSize+1)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = uploader.Upload(context.Background(), "avatars", "logo.png", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	assert.ErrorIs(t, err, ErrUnknownBucket)

	assert.Equal(t, 0, store.putCount())
}

func TestUploaderStoresWholeImage(t *testing.T) {
	store := newRecordingStore()
	uploader := NewUploader(store)
	uploader.now = func() time.Time { return time.UnixMilli(1741996800123) }
	uploader.token = func() string { return "k3j9x0" }

	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0xAB}, 5000)...)
	url, err := uploader.Upload(context.Background(), BucketPlayerPhotos, "Head Shot.PNG", bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/player-photos/k3j9x0-1741996800123.png", url)
	assert.Equal(t, body, store.data["player-photos/k3j9x0-1741996800123.png"])
}

func TestUploaderDefaultObjectName(t *testing.T) {
	store := newRecordingStore()
	uploader := NewUploader(store)

	url, err := uploader.Upload(context.Background(), BucketTeamLogos, "crest", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`/team-logos/[0-9a-f]{12}-\d{13}\.png$`), url)
}

func TestUploaderNamesObjectAfterDetectedType(t *testing.T) {
	store := newRecordingStore()
	uploader := NewUploader(store)
	uploader.now = func() time.Time { return time.UnixMilli(1741996800123) }
	uploader.token = func() string { return "k3j9x0" }

	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00<script>alert(1)</script>")
	url, err := uploader.Upload(context.Background(), BucketTeamLogos, "logo.html", bytes.NewReader(gif), int64(len(gif)))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/team-logos/k3j9x0-1741996800123.gif", url)

	url, err = uploader.Upload(context.Background(), BucketTeamLogos, "logo.gif", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/team-logos/k3j9x0-1741996800123.png", url)
}

func TestUploaderRejectsSVG(t *testing.T) {
	store := newRecordingStore()
	uploader := NewUploader(store)

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)
	_, err := uploader.Upload(context.Background(), BucketTeamLogos, "logo.svg", bytes.NewReader(svg), int64(len(svg)))

	assert.ErrorIs(t, err, ErrNotAnImage)
	assert.Equal(t, 0, store.putCount())
}

func TestWidgetCallsOnUploadedOnce(t *testing.T) {
	store := newRecordingStore()
	var urls []string
	widget := NewWidget(NewUploader(store), BucketTeamLogos, "", func(ctx context.Context, url string) error {
		urls = append(urls, url)
		return nil
	})

	url, err := widget.Upload(context.Background(), "logo.png", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	require.NoError(t, err)

	require.Len(t, urls, 1)
	assert.NotEmpty(t, urls[0])
	assert.Equal(t, url, urls[0])
	assert.Equal(t, url, widget.Current())
	assert.False(t, widget.Busy())
}

func TestWidgetKeepsCurrentImageOnFailure(t *testing.T) {
	store := newRecordingStore()
	store.failPut = errors.New("bucket quota exceeded")
	called := false
	widget := NewWidget(NewUploader(store), BucketPlayerPhotos, "https://cdn.example.com/player-photos/old.png",
		func(ctx context.Context, url string) error {
			called = true
			return nil
		})

	_, err := widget.Upload(context.Background(), "new.png", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	assert.ErrorContains(t, err, "bucket quota exceeded")
	assert.False(t, called)
	assert.Equal(t, "https://cdn.example.com/player-photos/old.png", widget.Current())

	body := []byte("GIF? no, plain text")
	_, err = widget.Upload(context.Background(), "new.gif", bytes.NewReader(body), int64(len(body)))
	assert.ErrorIs(t, err, ErrNotAnImage)
	assert.Equal(t, "https://cdn.example.com/player-photos/old.png", widget.Current())
}

func TestWidgetRejectsConcurrentUpload(t *testing.T) {
	store := newRecordingStore()
	store.block = make(chan struct{})
	widget := NewWidget(NewUploader(store), BucketTeamLogos, "", nil)

	done := make(chan error)
	go func() {
		_, err := widget.Upload(context.Background(), "a.png", bytes.NewReader(pngHeader), int64(len(pngHeader)))
		done <- err
	}()

	require.Eventually(t, widget.Busy, time.Second, time.Millisecond)
	_, err := widget.Upload(context.Background(), "b.png", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	assert.ErrorIs(t, err, ErrUploadInProgress)

	close(store.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, store.putCount())
}

func TestDiskStore(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root, "http://localhost:8080/storage/")
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), BucketTeamLogos, "x.png", "image/png", bytes.NewReader(pngHeader), int64(len(pngHeader))))

	saved, err := os.ReadFile(filepath.Join(root, BucketTeamLogos, "x.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, saved)
	assert.Equal(t, "http://localhost:8080/storage/team-logos/x.png", store.PublicURL(BucketTeamLogos, "x.png"))

	assert.Error(t, store.Put(context.Background(), BucketTeamLogos, "../escape.png", "image/png", bytes.NewReader(pngHeader), 1))
	assert.ErrorIs(t, store.Put(context.Background(), "misc", "y.png", "image/png", bytes.NewReader(pngHeader), 1), ErrUnknownBucket)
}
