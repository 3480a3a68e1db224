// Package storage keeps uploaded images in an object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const (
	BucketPlayerPhotos = "player-photos"
	BucketTeamLogos    = "team-logos"

	// MaxUploadSize bounds a single image upload.
	MaxUploadSize = 10 << 20
)

var (
	ErrUnknownBucket = errors.New("unknown bucket")
	ErrNotAnImage    = errors.New("file is not an image")
	ErrFileTooLarge  = errors.New("file exceeds the upload limit")
)

// ObjectStore is where uploaded files end up.
type ObjectStore interface {
	Put(ctx context.Context, bucket, name, contentType string, r io.Reader, size int64) error
	PublicURL(bucket, name string) string
}

func Buckets() []string {
	return []string{BucketPlayerPhotos, BucketTeamLogos}
}

func ValidateBucket(bucket string) error {
	for _, known := range Buckets() {
		if bucket == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
}
