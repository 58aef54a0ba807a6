package validate

import (
	"net/textproto"
	"testing"

	"mime/multipart"

	"stockroom/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestImage(t *testing.T) {
	tests := []struct {
		name        string
		size        int64
		contentType string
		wantErr     error
	}{
		{
			name:        "small jpeg accepted",
			size:        1024,
			contentType: "image/jpeg",
			wantErr:     nil,
		},
		{
			name:        "png accepted",
			size:        MaxImageSize,
			contentType: "image/png",
			wantErr:     nil,
		},
		{
			name:        "webp accepted",
			size:        42,
			contentType: "image/webp",
			wantErr:     nil,
		},
		{
			name:        "content type with parameters accepted",
			size:        42,
			contentType: "image/png; charset=binary",
			wantErr:     nil,
		},
		{
			name:        "oversized upload rejected",
			size:        MaxImageSize + 1,
			contentType: "image/jpeg",
			wantErr:     model.ErrImageTooLarge,
		},
		{
			name:        "plain text rejected regardless of size",
			size:        10,
			contentType: "text/plain",
			wantErr:     model.ErrImageBadType,
		},
		{
			name:        "gif rejected",
			size:        10,
			contentType: "image/gif",
			wantErr:     model.ErrImageBadType,
		},
		{
			name:        "missing content type rejected",
			size:        10,
			contentType: "",
			wantErr:     model.ErrImageBadType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Image(tt.size, tt.contentType)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestImageHeader(t *testing.T) {
	fh := &multipart.FileHeader{
		Filename: "not-image.txt",
		Size:     10,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"text/plain"}},
	}
	assert.ErrorIs(t, ImageHeader(fh), model.ErrImageBadType)

	fh = &multipart.FileHeader{
		Filename: "photo.jpg",
		Size:     2048,
		Header:   textproto.MIMEHeader{"Content-Type": []string{"image/jpeg"}},
	}
	assert.NoError(t, ImageHeader(fh))
}
