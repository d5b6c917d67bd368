package service

import (
	"context"
	"fmt"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// AdminService serves the back-office headline figures.
type AdminService struct {
	products ports.ProductRepository
	orders   ports.OrderRepository
	users    ports.UserRepository
}

func NewAdminService(products ports.ProductRepository, orders ports.OrderRepository, users ports.UserRepository) *AdminService {
	return &AdminService{products: products, orders: orders, users: users}
}

func (s *AdminService) Stats(ctx context.Context) (*domain.Stats, error) {
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return &domain.Stats{TotalProducts: products, TotalOrders: orders, TotalUsers: users}, nil
}
