package domain

import "time"

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
)

// orderTransitions is strictly linear: no skipping, no going back.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderPending:    OrderProcessing,
	OrderProcessing: OrderShipped,
	OrderShipped:    OrderDelivered,
}

// ParseOrderStatus reports whether s names a known status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	allowed, ok := orderTransitions[s]
	return ok && allowed == next
}

// Next returns the status that follows s, if any.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := orderTransitions[s]
	return next, ok
}

// OrderItem is a cart line frozen at order time.
type OrderItem struct {
	ProductID string  `json:"product,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is owned by exactly one user. Total is stored as supplied by the
// client and is not reconciled against Items.
type Order struct {
	ID                string      `json:"id"`
	UserID            string      `json:"user"`
	Items             []OrderItem `json:"items"`
	Total             float64     `json:"total"`
	Status            OrderStatus `json:"status"`
	CheckoutSessionID string      `json:"checkoutSessionId,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// OrderOwner is the resolved owner shown in admin listings.
type OrderOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UnknownOwner stands in for an owner that no longer resolves.
var UnknownOwner = OrderOwner{Name: "Unknown", Email: "N/A"}

// OrderWithOwner is an order joined with its owner for the back office.
type OrderWithOwner struct {
	Order
	Owner OrderOwner `json:"owner"`
}

// RecentOrder is the dashboard summary row.
type RecentOrder struct {
	ID        string      `json:"id"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UserEmail string      `json:"userEmail"`
}

// Stats are the back-office headline counts.
type Stats struct {
	TotalProducts int64 `json:"totalProducts"`
	TotalOrders   int64 `json:"totalOrders"`
	TotalUsers    int64 `json:"totalUsers"`
}
