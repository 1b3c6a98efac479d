package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
)

type S3Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string

	ensureOnce sync.Once
	ensureErr  error
}

// NewS3Storage serves photo objects from a single bucket. baseURL is the
// externally reachable root of the storage endpoint; object URLs are built
// from it and stay valid for the life of the object.
func NewS3Storage(client *minio.Client, bucket, baseURL string) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  strings.TrimSpace(bucket),
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	if s.bucket == "" {
		return fmt.Errorf("s3 bucket is empty")
	}

	s.ensureOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.ensureErr = err
			return
		}
		if exists {
			return
		}
		s.ensureErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	})

	if s.ensureErr != nil {
		return fmt.Errorf("ensure s3 bucket %q: %w", s.bucket, s.ensureErr)
	}

	return nil
}

func (s *S3Storage) PutPhoto(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if s.client == nil {
		return fmt.Errorf("s3 client is nil")
	}
	if key == "" || body == nil || size <= 0 {
		return ErrValidation
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object to s3: %w", err)
	}

	return nil
}

func (s *S3Storage) ObjectURL(key string) string {
	return s.baseURL + "/" + s.bucket + "/" + strings.TrimLeft(key, "/")
}
