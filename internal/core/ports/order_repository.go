package ports

import (
	"context"

	"github.com/shopfront/storefront/internal/core/domain"
)

// OrderRepository defines persistence for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	// ListWithOwners returns all orders newest first, owners resolved.
	ListWithOwners(ctx context.Context) ([]*domain.OrderWithOwner, error)
	Recent(ctx context.Context, limit int) ([]domain.RecentOrder, error)
	// UpdateStatus moves the order from `from` to `to` only if its current
	// status still equals `from`. It reports whether a document was changed.
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error)
	Count(ctx context.Context) (int64, error)
}
