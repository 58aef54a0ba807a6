package repository

import (
	"context"

	"stockroom/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data access operations.
// Lookups that find nothing return (nil, nil); translating that into a
// domain-level not-found error is the service's job.
type ProductRepository interface {
	// List retrieves one page of products matching the query. The query is
	// expected to be normalised and page-clamped already.
	List(ctx context.Context, q model.ListQuery) ([]model.Product, error)

	// Count returns how many products match the search filter.
	Count(ctx context.Context, search string) (int, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Latest returns the most recently created product matching the filter.
	Latest(ctx context.Context, search string) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update rewrites name and price of an existing product. Returns false
	// when the product no longer exists.
	Update(ctx context.Context, p *model.Product) (bool, error)

	// UpdateImage attaches or replaces the stored image reference. Returns
	// false when the product no longer exists.
	UpdateImage(ctx context.Context, id uuid.UUID, image string) (bool, error)

	// Delete removes a product permanently. Returns false when nothing was
	// deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// CreateIfAbsent inserts a product unless one with the same name already
	// exists. Returns true when a row was created.
	CreateIfAbsent(ctx context.Context, name string, price decimal.Decimal) (bool, error)
}

// UserRepository defines the interface for staff account data access.
type UserRepository interface {
	// GetByUsername retrieves a staff account by username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// Upsert creates a staff account or refreshes its password hash.
	Upsert(ctx context.Context, username, passwordHash string) error
}
