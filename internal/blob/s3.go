package blob

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores attachments in an S3 bucket.
type S3 struct {
	client   s3API
	bucket   string
	region   string
	endpoint string
	baseURL  string
}

// S3Options configures NewS3. Endpoint points at LocalStack or another
// S3-compatible service; PublicURL overrides the URL prefix handed back.
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
}

func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("blob: s3 bucket is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("blob: load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true // localstack/dev friendliness
		}
	})
	return newS3(client, opts), nil
}

func newS3(client s3API, opts S3Options) *S3 {
	return &S3{
		client:   client,
		bucket:   opts.Bucket,
		region:   opts.Region,
		endpoint: opts.Endpoint,
		baseURL:  opts.PublicURL,
	}
}

func (s *S3) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("blob: s3 put %s: %w", key, err)
	}
	return s.url(key), nil
}

func (s *S3) url(key string) string {
	switch {
	case s.baseURL != "":
		return joinURL(s.baseURL, key)
	case s.endpoint != "":
		return joinURL(joinURL(s.endpoint, s.bucket), key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
}
