// Package validate holds pure request-level checks that run before anything
// is persisted.
package validate

import (
	"mime"
	"mime/multipart"

	"stockroom/internal/model"
)

// MaxImageSize is the largest accepted upload, 5 MiB.
const MaxImageSize = 5 * 1024 * 1024

// allowedImageTypes lists the accepted declared content types.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Image checks an upload candidate by size and declared content type. It has
// no side effects; on rejection the caller surfaces the error message and
// persists nothing.
func Image(size int64, contentType string) error {
	if size > MaxImageSize {
		return model.ErrImageTooLarge
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !allowedImageTypes[mediaType] {
		return model.ErrImageBadType
	}
	return nil
}

// ImageHeader applies Image to a parsed multipart file header.
func ImageHeader(fh *multipart.FileHeader) error {
	return Image(fh.Size, fh.Header.Get("Content-Type"))
}
