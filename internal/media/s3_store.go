package media

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Store implements Store on an AWS S3 bucket.
type s3Store struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
	logger  zerolog.Logger
}

// NewS3Store creates an S3-backed media store.
func NewS3Store(ctx context.Context, bucket, region, prefix, baseURL string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "media-s3-store").Logger()

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 media store initialised")

	return &s3Store{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

// Save uploads the image to the configured bucket under the configured prefix.
func (s *s3Store) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := s.prefix + objectName(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to upload media object")
		return "", fmt.Errorf("failed to upload media object (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Debug().
		Str("bucket", s.bucket).
		Str("key", key).
		Msg("media object uploaded")

	return s.baseURL + key, nil
}
