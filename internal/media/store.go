// Package media stores validated product images and hands back the reference
// that gets persisted on the product row.
package media

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes an uploaded image and returns its public reference (a path or
// URL). Implementations must only ever be handed uploads that already passed
// the validation layer.
type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// objectName builds a collision-free object name from the original upload
// name. The original base name is kept for operator friendliness.
func objectName(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "image"
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return stem + "_" + uuid.NewString()[:8] + ext
}
