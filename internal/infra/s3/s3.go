package s3

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

func NewClient(cfg Config) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return client, nil
}

// BaseURL is the externally visible root under which stored objects are
// addressable. Objects are served straight from the bucket, so it is just
// the endpoint with the right scheme.
func BaseURL(cfg Config) string {
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}
