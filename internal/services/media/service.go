package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("validation error")

// UploadError marks failures of the photo-hosting collaborator so the
// boundary can report them separately from store failures.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("photo upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PutPhoto(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	ObjectURL(key string) string
}

type Service struct {
	storage ObjectStorage
}

func NewService(storage ObjectStorage) *Service {
	return &Service{storage: storage}
}

// UploadPhoto stores the photo bytes and returns a stable URL for the
// object. Persisting the URL on the profile is the caller's step.
func (s *Service) UploadPhoto(ctx context.Context, userID int64, fileName, contentType string, body io.Reader, size int64) (string, error) {
	if userID <= 0 || body == nil || size <= 0 {
		return "", ErrValidation
	}
	if s.storage == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return "", &UploadError{Err: fmt.Errorf("ensure bucket: %w", err)}
	}

	key := buildPhotoObjectKey(userID, fileName)

	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.PutPhoto(ctx, key, body, size, contentType); err != nil {
		return "", &UploadError{Err: fmt.Errorf("put object: %w", err)}
	}

	return s.storage.ObjectURL(key), nil
}

func buildPhotoObjectKey(userID int64, fileName string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		ext = ".jpg"
	}

	return fmt.Sprintf("photos/%d/%s%s", userID, uuid.NewString(), ext)
}
