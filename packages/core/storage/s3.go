package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
	// PublicURL overrides the endpoint when building object links, e.g. a CDN.
	PublicURL string
}

// S3Store keeps objects in any S3-compatible service.
type S3Store struct {
	client  *minio.Client
	region  string
	baseURL string
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	baseURL := cfg.PublicURL
	if baseURL == "" {
		baseURL = client.EndpointURL().String()
	}

	return &S3Store{
		client:  client,
		region:  cfg.Region,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// EnsureBuckets creates the image buckets that do not exist yet.
func (s *S3Store) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range Buckets() {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("check bucket %s: %w", bucket, err)
		}
		if exists {
			continue
		}
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}
	return nil
}

func (s *S3Store) Put(ctx context.Context, bucket, name, contentType string, r io.Reader, size int64) error {
	if err := ValidateBucket(bucket); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *S3Store) PublicURL(bucket, name string) string {
	return s.baseURL + "/" + bucket + "/" + name
}
