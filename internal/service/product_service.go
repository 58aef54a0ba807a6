package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockroom/internal/media"
	"stockroom/internal/model"
	"stockroom/internal/repository"
	"stockroom/internal/validate"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	mediaStore  media.Store
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, mediaStore media.Store, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		mediaStore:  mediaStore,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves one page of products matching the query. Page numbers
// outside [1, lastPage] clamp to the nearest valid page; an empty result set
// serves page 1.
func (s *productService) List(ctx context.Context, q model.ListQuery) (*model.ProductPage, error) {
	q = q.Normalize()

	total, err := s.productRepo.Count(ctx, q.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	lastPage := (total + model.PageSize - 1) / model.PageSize
	if lastPage < 1 {
		lastPage = 1
	}
	if q.Page > lastPage {
		q.Page = lastPage
	}

	items, err := s.productRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if items == nil {
		items = []model.Product{}
	}

	s.logger.Debug().
		Str("search", q.Search).
		Str("sort", q.Sort).
		Int("page", q.Page).
		Int("total", total).
		Msg("listed products")

	return &model.ProductPage{
		Items:   items,
		Total:   total,
		Page:    q.Page,
		HasNext: q.Page*model.PageSize < total,
	}, nil
}

// Stats returns the header numbers for the list page.
func (s *productService) Stats(ctx context.Context, search string) (*model.ProductStats, error) {
	search = strings.TrimSpace(search)

	total, err := s.productRepo.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	latest, err := s.productRepo.Latest(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest product: %w", err)
	}

	return &model.ProductStats{Total: total, Latest: latest}, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

func validateInput(input ProductInput) (ProductInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return input, model.ErrNameRequired
	}
	if input.Price.IsNegative() {
		return input, model.ErrPriceNegative
	}
	return input, nil
}

// Create validates and persists a new product.
func (s *productService) Create(ctx context.Context, input ProductInput) (*model.Product, error) {
	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:        uuid.New(),
		Name:      input.Name,
		Price:     input.Price,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("name", product.Name).
		Msg("product created")

	return product, nil
}

// Update validates and rewrites an existing product. Updating a record that
// was deleted in the meantime reports not-found rather than recreating it.
func (s *productService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*model.Product, error) {
	input, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	current, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if current == nil {
		return nil, model.ErrProductNotFound
	}

	current.Name = input.Name
	current.Price = input.Price

	updated, err := s.productRepo.Update(ctx, current)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !updated {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().
		Str("product_id", id.String()).
		Str("name", current.Name).
		Msg("product updated")

	return current, nil
}

// Delete removes a product permanently.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")

	return nil
}

// AttachImage validates the upload, stores it and attaches the reference to
// the product. Rejections happen before any byte is written, so the stored
// image stays unchanged.
func (s *productService) AttachImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (string, error) {
	if err := validate.Image(upload.Size, upload.ContentType); err != nil {
		s.logger.Debug().
			Str("product_id", id.String()).
			Str("content_type", upload.ContentType).
			Int64("size", upload.Size).
			Msg("image upload rejected")
		return "", err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return "", model.ErrProductNotFound
	}

	ref, err := s.mediaStore.Save(ctx, upload.Filename, upload.ContentType, upload.Content)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to store image")
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	attached, err := s.productRepo.UpdateImage(ctx, id, ref)
	if err != nil {
		return "", fmt.Errorf("failed to attach image: %w", err)
	}
	if !attached {
		return "", model.ErrProductNotFound
	}

	s.logger.Info().
		Str("product_id", id.String()).
		Str("image", ref).
		Msg("product image attached")

	return ref, nil
}
