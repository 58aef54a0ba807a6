package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockroom/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// orderClause maps the sort key onto a SQL ORDER BY body. Price sorts fall
// back to creation time on ties.
func orderClause(sort string) string {
	if sort == model.SortPrice {
		return "price DESC, created_at DESC"
	}
	return "created_at DESC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern escapes the LIKE metacharacters in the search term so it
// matches as a literal substring, then wraps it in wildcards.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// List retrieves one page of products matching the query.
func (r *productRepository) List(ctx context.Context, q model.ListQuery) ([]model.Product, error) {
	query := fmt.Sprintf(`
		SELECT id, name, price, image, created_at
		FROM products
		WHERE ($1 = '' OR name ILIKE $2 ESCAPE '\')
		ORDER BY %s
		LIMIT $3 OFFSET $4
	`, orderClause(q.Sort))

	offset := (q.Page - 1) * model.PageSize

	rows, err := r.pool.Query(ctx, query, q.Search, likePattern(q.Search), model.PageSize, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("search", q.Search).
			Str("sort", q.Sort).
			Int("page", q.Page).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns how many products match the search filter.
func (r *productRepository) Count(ctx context.Context, search string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM products
		WHERE ($1 = '' OR name ILIKE $2 ESCAPE '\')
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, search, likePattern(search)).Scan(&count); err != nil {
		r.logger.Error().Err(err).Str("search", search).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT id, name, price, image, created_at
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Latest returns the most recently created product matching the filter.
func (r *productRepository) Latest(ctx context.Context, search string) (*model.Product, error) {
	query := `
		SELECT id, name, price, image, created_at
		FROM products
		WHERE ($1 = '' OR name ILIKE $2 ESCAPE '\')
		ORDER BY created_at DESC
		LIMIT 1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, search, likePattern(search)).Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query latest product")
		return nil, fmt.Errorf("failed to query latest product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (id, name, price, image, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Price, p.Image, p.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", p.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().
		Str("product_id", p.ID.String()).
		Str("name", p.Name).
		Msg("product created")

	return nil
}

// Update rewrites name and price of an existing product.
func (r *productRepository) Update(ctx context.Context, p *model.Product) (bool, error) {
	query := `
		UPDATE products
		SET name = $2, price = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Price)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to update product")
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpdateImage attaches or replaces the stored image reference.
func (r *productRepository) UpdateImage(ctx context.Context, id uuid.UUID, image string) (bool, error) {
	query := `
		UPDATE products
		SET image = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, image)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product image")
		return false, fmt.Errorf("failed to update product image: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a product permanently.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		DELETE FROM products
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	deleted := tag.RowsAffected() > 0
	if deleted {
		r.logger.Debug().Str("product_id", id.String()).Msg("product deleted")
	}

	return deleted, nil
}

// CreateIfAbsent inserts a product unless one with the same name already
// exists. The name check and the insert run as one statement so concurrent
// seed runs do not double-insert.
func (r *productRepository) CreateIfAbsent(ctx context.Context, name string, price decimal.Decimal) (bool, error) {
	query := `
		INSERT INTO products (id, name, price, created_at)
		SELECT $1, $2, $3, $4
		WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $2)
	`

	tag, err := r.pool.Exec(ctx, query, uuid.New(), name, price, time.Now().UTC())
	if err != nil {
		r.logger.Error().Err(err).Str("name", name).Msg("failed to seed product")
		return false, fmt.Errorf("failed to seed product %q: %w", name, err)
	}

	return tag.RowsAffected() > 0, nil
}
