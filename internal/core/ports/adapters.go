package ports

import (
	"context"
	"io"

	"github.com/shopfront/storefront/internal/core/domain"
)

// ImageStore persists uploaded images and returns their public path.
type ImageStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
	// Delete removes the image at path. A missing file yields domain.ErrImageNotFound.
	Delete(ctx context.Context, path string) error
}

// CheckoutRegistry tracks checkout sessions across the payment and order flows.
type CheckoutRegistry interface {
	// Claim reserves sessionID for a single order. It returns false when the
	// session was already claimed.
	Claim(ctx context.Context, sessionID string) (bool, error)
	Release(ctx context.Context, sessionID string) error
	MarkPaid(ctx context.Context, sessionID string) error
}

// CategoryCache holds the rendered category listing. Get also returns the
// cache generation, which Invalidate advances. Set stores the listing only
// while that generation is still current and reports whether it did.
type CategoryCache interface {
	Get(ctx context.Context) (categories []*domain.Category, generation int64, ok bool)
	Set(ctx context.Context, generation int64, categories []*domain.Category) (bool, error)
	Invalidate(ctx context.Context) error
}
