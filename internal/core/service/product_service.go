package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/api/metrics"
	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

const (
	productPageSize    = 12
	productSearchLimit = 20
	// Highest page whose skip offset still fits in an int.
	maxProductPage = math.MaxInt/productPageSize + 1
)

// ProductService manages the product catalog.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	images     ports.ImageStore
	validate   *validator.Validate
	logger     zerolog.Logger
}

func NewProductService(products ports.ProductRepository, categories ports.CategoryRepository, images ports.ImageStore, logger zerolog.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		images:     images,
		validate:   validator.New(),
		logger:     logger,
	}
}

// ListProducts returns summaries filtered by name. Page 0 returns the whole
// filtered set; page >= 1 returns a fixed-size page.
func (s *ProductService) ListProducts(ctx context.Context, in ports.ListProductsInput) (*ports.ListProductsResult, error) {
	if in.Page < 0 || in.Page > maxProductPage {
		return nil, domain.Invalid("page is out of range")
	}

	filter := ports.ProductFilter{Search: strings.TrimSpace(in.Search)}
	if in.Page > 0 {
		filter.Skip = (in.Page - 1) * productPageSize
		filter.Limit = productPageSize
	}

	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if items == nil {
		items = []domain.ProductSummary{}
	}

	res := &ports.ListProductsResult{Items: items, Total: total, Page: in.Page}
	if in.Page > 0 {
		res.PageSize = productPageSize
		res.TotalPages = int((total + productPageSize - 1) / productPageSize)
	}
	return res, nil
}

// SearchProducts matches name or description. An empty query yields nothing.
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]domain.ProductSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.ProductSummary{}, nil
	}
	items, err := s.products.Search(ctx, query, productSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	if items == nil {
		items = []domain.ProductSummary{}
	}
	return items, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.products.FindBySlug(ctx, strings.ToLower(slug))
}

func (s *ProductService) CreateProduct(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	product, err := s.buildProduct(ctx, in, "")
	if err != nil {
		return nil, err
	}

	stored, err := s.storeImages(ctx, in.NewImages)
	if err != nil {
		return nil, err
	}
	product.Images = stored

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	created, err := s.products.Create(ctx, product)
	if err != nil {
		s.discardImages(ctx, stored)
		return nil, err
	}

	metrics.ProductsWrittenTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("product_id", created.ID).Str("slug", created.Slug).Int("images", len(stored)).Msg("product created")
	return created, nil
}

// UpdateProduct replaces the product's fields. The resulting image set is the
// caller's ExistingImages that already belong to the product, followed by the
// new uploads; images dropped from the set stay in the content store.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	current, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := s.buildProduct(ctx, in, current.ID)
	if err != nil {
		return nil, err
	}

	stored, err := s.storeImages(ctx, in.NewImages)
	if err != nil {
		return nil, err
	}

	product.ID = current.ID
	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = time.Now().UTC()
	product.Images = append(keptImages(current.Images, in.ExistingImages), stored...)

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		s.discardImages(ctx, stored)
		return nil, err
	}

	metrics.ProductsWrittenTotal.WithLabelValues("update").Inc()
	return updated, nil
}

// keptImages returns the requested paths that are among owned, in request
// order and without duplicates. Paths owned by other products are dropped.
func keptImages(owned, requested []string) []string {
	allowed := make(map[string]bool, len(owned))
	for _, path := range owned {
		allowed[path] = true
	}
	kept := make([]string, 0, len(requested))
	for _, path := range requested {
		if allowed[path] {
			kept = append(kept, path)
			delete(allowed, path)
		}
	}
	return kept
}

// DeleteProduct removes the document and then, best effort, its images.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.discardImages(ctx, deleted.Images)
	metrics.ProductsWrittenTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("product_id", id).Int("images", len(deleted.Images)).Msg("product deleted")
	return nil
}

func (s *ProductService) buildProduct(ctx context.Context, in ports.ProductInput, selfID string) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	categoryID := strings.TrimSpace(in.CategoryID)

	switch {
	case name == "":
		return nil, domain.Invalid("name is required")
	case strings.TrimSpace(in.SlugSeed) == "":
		return nil, domain.Invalid("slug is required")
	case description == "":
		return nil, domain.Invalid("description is required")
	case categoryID == "":
		return nil, domain.Invalid("category is required")
	case in.Price < 0 || in.OriginalPrice < 0:
		return nil, domain.Invalid("price must not be negative")
	case in.Quantity < 0 || in.DeliveryTime < 0:
		return nil, domain.Invalid("quantity and deliveryTime must not be negative")
	}

	slug := domain.Slugify(in.SlugSeed)
	if slug == "" {
		return nil, domain.Invalid("slug must contain at least one letter or digit")
	}

	stock, ok := domain.ParseStockStatus(in.StockStatus)
	if !ok {
		return nil, domain.Invalid("stockStatus must be one of: In Stock, Out of Stock, Upcoming")
	}

	if err := s.validateVariants(in.ColorVariants, in.SizeVariants); err != nil {
		return nil, err
	}

	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, domain.Invalid("category not found")
		}
		return nil, err
	}

	if err := s.ensureSlugFree(ctx, slug, selfID); err != nil {
		return nil, err
	}

	colors := in.ColorVariants
	if colors == nil {
		colors = []domain.ColorVariant{}
	}
	sizes := in.SizeVariants
	if sizes == nil {
		sizes = []domain.SizeVariant{}
	}

	return &domain.Product{
		Name:          name,
		Slug:          slug,
		Description:   description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		CategoryID:    categoryID,
		Quantity:      in.Quantity,
		StockStatus:   stock,
		ColorVariants: colors,
		SizeVariants:  sizes,
		Weight:        strings.TrimSpace(in.Weight),
		DeliveryTime:  in.DeliveryTime,
		SKU:           strings.TrimSpace(in.SKU),
	}, nil
}

func (s *ProductService) validateVariants(colors []domain.ColorVariant, sizes []domain.SizeVariant) error {
	for i := range colors {
		if err := s.validate.Struct(colors[i]); err != nil {
			return domain.Invalid(fmt.Sprintf("colorVariants[%d]: name is required and hex must be a hex color", i))
		}
	}
	for i := range sizes {
		if err := s.validate.Struct(sizes[i]); err != nil {
			return domain.Invalid(fmt.Sprintf("sizeVariants[%d]: sizeName or measurements is required", i))
		}
	}
	return nil
}

func (s *ProductService) ensureSlugFree(ctx context.Context, slug, selfID string) error {
	existing, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("product %q: %w", slug, domain.ErrSlugTaken)
	}
	return nil
}

// storeImages writes every upload; on failure the ones already written are removed.
func (s *ProductService) storeImages(ctx context.Context, uploads []ports.Upload) ([]string, error) {
	paths := make([]string, 0, len(uploads))
	for _, u := range uploads {
		path, err := s.images.Save(ctx, u.Filename, u.Content)
		if err != nil {
			s.discardImages(ctx, paths)
			return nil, fmt.Errorf("store product image %q: %w", u.Filename, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *ProductService) discardImages(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.images.Delete(ctx, p); err != nil {
			if errors.Is(err, domain.ErrImageNotFound) {
				s.logger.Debug().Str("path", p).Msg("image already gone")
				continue
			}
			s.logger.Warn().Err(err).Str("path", p).Msg("failed to remove image")
		}
	}
}
