package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// GCS stores attachments in a Google Cloud Storage bucket. Objects are
// write-once; keys are unique so an existing object means a retried upload.
type GCS struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewGCS(ctx context.Context, bucket, publicURL string) (*GCS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("blob: gcs bucket is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("blob: gcs client: %w", err)
	}
	return &GCS{client: client, bucket: bucket, baseURL: publicURL}, nil
}

func (g *GCS) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	w := g.client.Bucket(g.bucket).Object(key).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("blob: gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 412 {
			log.Printf("Warning: object %s already exists, keeping it", key)
			return g.url(key), nil
		}
		return "", fmt.Errorf("blob: gcs finalize %s: %w", key, err)
	}
	return g.url(key), nil
}

func (g *GCS) url(key string) string {
	if g.baseURL != "" {
		return joinURL(g.baseURL, key)
	}
	return "https://storage.googleapis.com/" + g.bucket + "/" + key
}

func (g *GCS) Close() error {
	return g.client.Close()
}
