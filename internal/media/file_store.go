package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileStore implements Store on the local file system.
type fileStore struct {
	dir     string
	baseURL string
	logger  zerolog.Logger
}

// NewFileStore creates a Store writing into dir. References are baseURL plus
// the object name, matching what the /media/ file server exposes.
func NewFileStore(dir, baseURL string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", dir, err)
	}
	return &fileStore{
		dir:     dir,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "media-file-store").Logger(),
	}, nil
}

// Save streams the upload into the media directory.
func (s *fileStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := objectName(filename)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to create media file")
		return "", fmt.Errorf("failed to create media file %s: %w", path, err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		// Do not leave a truncated file behind.
		os.Remove(path)
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write media file")
		return "", fmt.Errorf("failed to write media file %s: %w", path, err)
	}

	s.logger.Debug().
		Str("file", name).
		Int64("bytes", written).
		Str("content_type", contentType).
		Msg("media file stored")

	return s.baseURL + name, nil
}
