package service

import (
	"context"
	"io"

	"stockroom/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name  string
	Price decimal.Decimal
}

// ImageUpload is a validated-candidate image taken off a multipart request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ProductService defines operations for product management.
type ProductService interface {
	// List retrieves one page of products matching the query. Out-of-range
	// pages are clamped into the valid range.
	List(ctx context.Context, q model.ListQuery) (*model.ProductPage, error)

	// Stats returns the header numbers for the list page.
	Stats(ctx context.Context, search string) (*model.ProductStats, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create validates and persists a new product.
	Create(ctx context.Context, input ProductInput) (*model.Product, error)

	// Update validates and rewrites an existing product.
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*model.Product, error)

	// Delete removes a product permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// AttachImage validates the upload, stores it and attaches the reference
	// to the product. On rejection the stored image stays unchanged.
	AttachImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (string, error)
}
