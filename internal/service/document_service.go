package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ahmedaisar/aco-audit-portal/internal/blob"
	"github.com/ahmedaisar/aco-audit-portal/internal/models"
	"github.com/ahmedaisar/aco-audit-portal/internal/validate"
)

// DocumentService moves attachment payloads into blob storage.
type DocumentService struct {
	blobs blob.Uploader
}

func NewDocumentService(blobs blob.Uploader) *DocumentService {
	return &DocumentService{blobs: blobs}
}

// Upload stores one attachment and returns its metadata with URL set and the
// inline payload dropped. Zero-byte files are stored like any other.
func (s *DocumentService) Upload(ctx context.Context, f models.FileAttachment, data []byte) (models.FileAttachment, error) {
	if f.Type == "" {
		f.Type = detectContentType(f.Name)
	}
	url, err := s.blobs.Upload(ctx, blob.Key(f.Name), data, f.Type)
	if err != nil {
		return f, fmt.Errorf("upload blob: %w", err)
	}
	f.Size = int64(len(data))
	f.URL = url
	f.Content = nil
	return f, nil
}

// UploadAll uploads every pending attachment concurrently. The result keeps
// the input order. Attachments that already have a URL pass through.
func (s *DocumentService) UploadAll(ctx context.Context, files []models.FileAttachment) ([]models.FileAttachment, error) {
	payloads := make([][]byte, len(files))
	pending := make([]bool, len(files))
	var bad validate.Error
	for i, f := range files {
		if !f.Pending() {
			if f.URL == "" {
				bad.Violations = append(bad.Violations, validate.Violation{
					Reason: validate.MissingField, Field: f.Name, Message: f.Name + " has no content",
				})
			}
			continue
		}
		data, err := DecodeContent(*f.Content)
		if err != nil {
			bad.Violations = append(bad.Violations, validate.Violation{
				Reason: validate.InvalidRecord, Field: f.Name, Message: f.Name + " is not valid base64 content",
			})
			continue
		}
		payloads[i] = data
		pending[i] = true
	}
	if len(bad.Violations) > 0 {
		return nil, &bad
	}

	out := make([]models.FileAttachment, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		if !pending[i] {
			out[i] = f
			continue
		}
		i, f := i, f
		g.Go(func() error {
			up, err := s.Upload(gctx, f, payloads[i])
			if err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			out[i] = up
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if orphans := uploadedURLs(out); len(orphans) > 0 {
			log.Printf("Warning: upload failed, orphaned blobs: %s", strings.Join(orphans, ", "))
		}
		return nil, err
	}
	return out, nil
}

// DecodeContent decodes an inline payload, accepting a data URL prefix.
func DecodeContent(content string) ([]byte, error) {
	if strings.HasPrefix(content, "data:") {
		if i := strings.Index(content, ","); i >= 0 {
			content = content[i+1:]
		}
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(content))
}

func uploadedURLs(files []models.FileAttachment) []string {
	var urls []string
	for _, f := range files {
		if f.URL != "" {
			urls = append(urls, f.URL)
		}
	}
	return urls
}

func detectContentType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	types := map[string]string{
		".pdf":  "application/pdf",
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".txt":  "text/plain",
	}
	if ct, ok := types[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
