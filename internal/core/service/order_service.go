package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/api/metrics"
	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

const recentOrdersLimit = 5

type OrderService struct {
	repo     ports.OrderRepository
	sessions ports.CheckoutRegistry
	logger   zerolog.Logger
}

// NewOrderService builds an OrderService. sessions may be nil, in which case
// checkout session ids are stored but not deduplicated.
func NewOrderService(repo ports.OrderRepository, sessions ports.CheckoutRegistry, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, sessions: sessions, logger: logger}
}

// CreateOrder persists the caller's cart as a Pending order. A checkout session
// id, when given, can back only one order.
func (s *OrderService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	if in.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("cart is empty")
	}
	for i, item := range in.Items {
		if item.Quantity < 1 {
			return nil, domain.Invalid(fmt.Sprintf("items[%d]: quantity must be at least 1", i))
		}
		if item.Price < 0 {
			return nil, domain.Invalid(fmt.Sprintf("items[%d]: price must not be negative", i))
		}
		if item.ProductID != "" && !domain.IsValidID(item.ProductID) {
			return nil, domain.Invalid(fmt.Sprintf("items[%d]: product is not a valid id", i))
		}
	}
	if in.Total < 0 {
		return nil, domain.Invalid("total must not be negative")
	}

	sessionID := strings.TrimSpace(in.CheckoutSessionID)
	if sessionID != "" && s.sessions != nil {
		claimed, err := s.sessions.Claim(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("claim checkout session: %w", err)
		}
		if !claimed {
			metrics.CheckoutSessionDedupTotal.WithLabelValues("hit").Inc()
			s.logger.Info().Str("session_id", sessionID).Str("user_id", in.UserID).Msg("duplicate order for checkout session")
			return nil, fmt.Errorf("checkout session %s: %w", sessionID, domain.ErrDuplicateOrder)
		}
		metrics.CheckoutSessionDedupTotal.WithLabelValues("miss").Inc()
	}

	now := time.Now().UTC()
	order := &domain.Order{
		UserID:            in.UserID,
		Items:             in.Items,
		Total:             in.Total,
		Status:            domain.OrderPending,
		CheckoutSessionID: sessionID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", in.UserID).Msg("failed to create order")
		if sessionID != "" && s.sessions != nil {
			if rerr := s.sessions.Release(ctx, sessionID); rerr != nil {
				s.logger.Warn().Err(rerr).Str("session_id", sessionID).Msg("failed to release checkout session")
			}
		}
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderValue.Observe(created.Total)
	s.logger.Info().Str("order_id", created.ID).Str("user_id", in.UserID).Int("items", len(created.Items)).Msg("order created")
	return created, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

// GetOrder returns an order visible to the caller. Another user's order is
// reported as not found so ids cannot be probed; admins see every order.
func (s *OrderService) GetOrder(ctx context.Context, in ports.GetOrderInput) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != in.UserID && !domain.IsAdmin(in.Role) {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]*domain.OrderWithOwner, error) {
	orders, err := s.repo.ListWithOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	if orders == nil {
		orders = []*domain.OrderWithOwner{}
	}
	return orders, nil
}

func (s *OrderService) RecentOrders(ctx context.Context) ([]domain.RecentOrder, error) {
	orders, err := s.repo.Recent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, fmt.Errorf("recent orders: %w", err)
	}
	if orders == nil {
		orders = []domain.RecentOrder{}
	}
	return orders, nil
}

// UpdateOrderStatus advances an order one step along the fulfilment chain.
// The write only lands if the order is still in the status it was read in.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	next, ok := domain.ParseOrderStatus(status)
	if !ok {
		return nil, domain.Invalid("status must be one of: Pending, Processing, Shipped, Delivered")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		metrics.OrderStatusTransitionsTotal.WithLabelValues(string(next), "rejected").Inc()
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, next)
	}

	applied, err := s.repo.UpdateStatus(ctx, order.ID, order.Status, next)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to update order status")
		return nil, err
	}
	if !applied {
		metrics.OrderStatusTransitionsTotal.WithLabelValues(string(next), "conflict").Inc()
		return nil, fmt.Errorf("%w: order %s is no longer %s", domain.ErrInvalidTransition, order.ID, order.Status)
	}

	metrics.OrderStatusTransitionsTotal.WithLabelValues(string(next), "applied").Inc()
	s.logger.Info().Str("order_id", order.ID).Str("from", string(order.Status)).Str("to", string(next)).Msg("order status updated")

	order.Status = next
	order.UpdatedAt = time.Now().UTC()
	return order, nil
}
