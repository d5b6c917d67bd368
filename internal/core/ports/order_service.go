package ports

import (
	"context"

	"github.com/shopfront/storefront/internal/core/domain"
)

// CreateOrderInput is the cart snapshot submitted by a signed-in user.
type CreateOrderInput struct {
	UserID            string
	Items             []domain.OrderItem
	Total             float64
	CheckoutSessionID string
}

// GetOrderInput identifies an order and who is asking for it.
type GetOrderInput struct {
	OrderID string
	UserID  string
	Role    string
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	ListMyOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	GetOrder(ctx context.Context, in GetOrderInput) (*domain.Order, error)
	ListAllOrders(ctx context.Context) ([]*domain.OrderWithOwner, error)
	RecentOrders(ctx context.Context) ([]domain.RecentOrder, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error)
}

type AdminService interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}
