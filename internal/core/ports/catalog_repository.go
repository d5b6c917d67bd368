package ports

import (
	"context"

	"github.com/shopfront/storefront/internal/core/domain"
)

// CategoryRepository defines persistence for the category tree.
type CategoryRepository interface {
	// List returns every category, newest first, with Parent resolved.
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// ProductFilter carries listing parameters down to the store.
type ProductFilter struct {
	Search string // case-insensitive substring on name; empty = no filter
	Skip   int
	Limit  int // 0 = no limit
}

// ProductRepository defines persistence for products.
type ProductRepository interface {
	// List returns a page of summaries and the total number of matches.
	List(ctx context.Context, filter ProductFilter) ([]domain.ProductSummary, int64, error)
	// Search matches name or description, case-insensitively.
	Search(ctx context.Context, query string, limit int) ([]domain.ProductSummary, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// Delete removes the product and returns the deleted document.
	Delete(ctx context.Context, id string) (*domain.Product, error)
	Count(ctx context.Context) (int64, error)
}
