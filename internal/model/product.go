package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a single inventory item.
type Product struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Image     *string         `json:"image" db:"image"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// Sort keys accepted by the list endpoints. Anything else falls back to
// SortCreated.
const (
	SortPrice   = "price"
	SortCreated = "created"
)

// PageSize is the fixed number of products per page across both surfaces.
const PageSize = 15

// ListQuery describes a filtered, ordered, paged view over products.
type ListQuery struct {
	Search string
	Sort   string
	Page   int
}

// Normalize trims the search string, falls back to the default sort key for
// unrecognised values, and floors the page at 1. Clamping against the last
// page needs the total count and happens in the service.
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	if q.Sort != SortPrice && q.Sort != SortCreated {
		q.Sort = SortCreated
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items   []Product `json:"results"`
	Total   int       `json:"count"`
	Page    int       `json:"page"`
	HasNext bool      `json:"hasNext"`
}

// NextPage returns the page number the infinite scroll should fetch next.
func (p *ProductPage) NextPage() int {
	return p.Page + 1
}

// ProductStats feeds the header block on the list page.
type ProductStats struct {
	Total  int
	Latest *Product
}
