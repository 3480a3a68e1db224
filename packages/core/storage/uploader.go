package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// sniffLen is how much of a file is read to detect its type.
const sniffLen = 3072

// Uploader checks that a file is an image and stores it under a generated name.
type Uploader struct {
	store ObjectStore
	now   func() time.Time
	token func() string
}

func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{
		store: store,
		now:   time.Now,
		token: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		},
	}
}

// Upload stores the image read from r in bucket and returns its public URL.
// Non-images are rejected before the store is touched.
func (u *Uploader) Upload(ctx context.Context, bucket, filename string, r io.Reader, size int64) (string, error) {
	if err := ValidateBucket(bucket); err != nil {
		return "", err
	}
	if size > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	header = header[:n]
	if n == 0 {
		return "", ErrNotAnImage
	}

	mtype := mimetype.Detect(header)
	if !strings.HasPrefix(mtype.String(), "image/") || mtype.Is("image/svg+xml") {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, mtype.String())
	}

	name := u.objectName(filename, mtype)
	content := io.MultiReader(bytes.NewReader(header), r)
	if err := u.store.Put(ctx, bucket, name, mtype.String(), content, size); err != nil {
		return "", fmt.Errorf("store %s/%s: %w", bucket, name, err)
	}

	return u.store.PublicURL(bucket, name), nil
}

// objectName builds <token>-<unix millis>.<ext>. The original extension is
// kept only when it names the detected type.
func (u *Uploader) objectName(filename string, mtype *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || !mtype.Is(mime.TypeByExtension(ext)) {
		ext = mtype.Extension()
	}
	return fmt.Sprintf("%s-%d%s", u.token(), u.now().UnixMilli(), ext)
}
