package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

func cart() []domain.OrderItem {
	return []domain.OrderItem{{ProductID: "65a1f0c2e4b0a1b2c3d4e5f6", Quantity: 2, Price: 10}}
}

func TestOrderService_Create(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, newStubRegistry(), zerolog.Nop())

	o, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: "user-1", Items: cart(), Total: 99})
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.Equal(t, "user-1", o.UserID)
	// The client-supplied total is stored as is.
	assert.Equal(t, 99.0, o.Total)
}

func TestOrderService_Create_Validation(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), nil, zerolog.Nop())

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: "user-1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "cart is empty")

	_, err = svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "user-1",
		Items:  []domain.OrderItem{{ProductID: "p", Quantity: 0, Price: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateOrder(context.Background(), ports.CreateOrderInput{Items: cart()})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOrderService_Create_RejectsMalformedProductID(t *testing.T) {
	repo := newStubOrderRepo()
	svc := NewOrderService(repo, nil, zerolog.Nop())

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "user-1",
		Items:  append(cart(), domain.OrderItem{ProductID: "not-an-id", Quantity: 1, Price: 5}),
		Total:  25,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "items[1]: product is not a valid id")
	assert.Empty(t, repo.items)

	// Items without a product reference are still accepted.
	o, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{
		UserID: "user-1",
		Items:  []domain.OrderItem{{Quantity: 1, Price: 5}},
		Total:  5,
	})
	require.NoError(t, err)
	assert.Empty(t, o.Items[0].ProductID)
}

func TestOrderService_Create_DuplicateSession(t *testing.T) {
	repo := newStubOrderRepo()
	sessions := newStubRegistry()
	svc := NewOrderService(repo, sessions, zerolog.Nop())

	in := ports.CreateOrderInput{UserID: "user-1", Items: cart(), Total: 20, CheckoutSessionID: "cs_1"}
	first, err := svc.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "cs_1", first.CheckoutSessionID)

	_, err = svc.CreateOrder(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicateOrder)
	assert.Len(t, repo.items, 1)
}

func TestOrderService_Create_ReleasesSessionOnFailure(t *testing.T) {
	repo := newStubOrderRepo()
	repo.createErr = errors.New("insert failed")
	sessions := newStubRegistry()
	svc := NewOrderService(repo, sessions, zerolog.Nop())

	_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: "u", Items: cart(), CheckoutSessionID: "cs_2"})
	require.Error(t, err)
	assert.False(t, sessions.claimed["cs_2"])
}

func TestOrderService_GetOrder_Ownership(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), nil, zerolog.Nop())
	o, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: "owner", Items: cart()})
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), ports.GetOrderInput{OrderID: o.ID, UserID: "owner", Role: domain.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = svc.GetOrder(context.Background(), ports.GetOrderInput{OrderID: o.ID, UserID: "intruder", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = svc.GetOrder(context.Background(), ports.GetOrderInput{OrderID: o.ID, UserID: "admin", Role: domain.RoleAdmin})
	assert.NoError(t, err)
}

func TestOrderService_ListMyOrders_OnlyOwn(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), nil, zerolog.Nop())
	for _, u := range []string{"a", "a", "b"} {
		_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: u, Items: cart()})
		require.NoError(t, err)
	}

	mine, err := svc.ListMyOrders(context.Background(), "a")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, o := range mine {
		assert.Equal(t, "a", o.UserID)
	}

	none, err := svc.ListMyOrders(context.Background(), "c")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestOrderService_RecentOrders_Limit(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), nil, zerolog.Nop())
	for i := 0; i < 7; i++ {
		_, err := svc.CreateOrder(context.Background(), ports.CreateOrderInput{UserID: "u", Items: cart()})
		require.NoError(t, err)
	}

	recent, err := svc.RecentOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, recent, 5)
}

func TestOrderService_UpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.OrderStatus
		to      string
		wantErr error
	}{
		{"pending to processing", domain.OrderPending, "Processing", nil},
		{"processing to shipped", domain.OrderProcessing, "Shipped", nil},
		{"shipped to delivered", domain.OrderShipped, "Delivered", nil},
		{"skip a step", domain.OrderPending, "Shipped", domain.ErrInvalidTransition},
		{"backwards", domain.OrderShipped, "Processing", domain.ErrInvalidTransition},
		{"same status", domain.OrderPending, "Pending", domain.ErrInvalidTransition},
		{"from terminal", domain.OrderDelivered, "Pending", domain.ErrInvalidTransition},
		{"unknown status", domain.OrderPending, "Lost", domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubOrderRepo()
			svc := NewOrderService(repo, nil, zerolog.Nop())
			o, err := repo.Create(context.Background(), &domain.Order{UserID: "u", Items: cart(), Status: tt.from})
			require.NoError(t, err)

			updated, err := svc.UpdateOrderStatus(context.Background(), o.ID, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.items[o.ID].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.OrderStatus(tt.to), updated.Status)
			assert.Equal(t, domain.OrderStatus(tt.to), repo.items[o.ID].Status)
		})
	}
}

func TestOrderService_UpdateStatus_LostRace(t *testing.T) {
	repo := newStubOrderRepo()
	repo.casMiss = true
	svc := NewOrderService(repo, nil, zerolog.Nop())
	o, err := repo.Create(context.Background(), &domain.Order{UserID: "u", Items: cart(), Status: domain.OrderPending})
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(context.Background(), o.ID, "Processing")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestOrderService_UpdateStatus_NotFound(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), nil, zerolog.Nop())

	_, err := svc.UpdateOrderStatus(context.Background(), "missing", "Processing")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestAdminService_Stats(t *testing.T) {
	products := newStubProductRepo()
	orders := newStubOrderRepo()
	users := newStubUserRepo()

	_, _ = products.Create(context.Background(), &domain.Product{Name: "p"})
	_, _ = orders.Create(context.Background(), &domain.Order{UserID: "u"})
	_, _ = orders.Create(context.Background(), &domain.Order{UserID: "u"})
	_, _ = users.Create(context.Background(), &domain.User{Email: "a@example.com"})

	stats, err := NewAdminService(products, orders, users).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{TotalProducts: 1, TotalOrders: 2, TotalUsers: 1}, *stats)
}
