package ports

import (
	"context"
	"io"

	"github.com/shopfront/storefront/internal/core/domain"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename string
	Content  io.Reader
}

// CategoryInput carries create/update data for a category.
type CategoryInput struct {
	ID       string // update only
	Name     string
	ParentID string
	Image    *Upload
}

// ProductInput carries create/update data for a product.
type ProductInput struct {
	Name          string
	SlugSeed      string
	Description   string
	Price         float64
	OriginalPrice float64
	CategoryID    string
	Quantity      int
	StockStatus   string
	Weight        string
	DeliveryTime  int
	SKU           string
	ColorVariants []domain.ColorVariant
	SizeVariants  []domain.SizeVariant
	// ExistingImages is the subset of stored images to keep (update only).
	ExistingImages []string
	NewImages      []Upload
}

// ListProductsInput carries listing parameters from the transport layer.
type ListProductsInput struct {
	Search string
	Page   int // 0 = unpaginated
}

// ListProductsResult is a page of product summaries.
type ListProductsResult struct {
	Items      []domain.ProductSummary
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type ProductService interface {
	ListProducts(ctx context.Context, in ListProductsInput) (*ListProductsResult, error)
	SearchProducts(ctx context.Context, query string) ([]domain.ProductSummary, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
