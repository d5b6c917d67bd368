package handler

import "github.com/shopfront/storefront/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6,max=72"`
}

// --- Catalog ---

type productPageResponse struct {
	Products   []domain.ProductSummary `json:"products"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"pageSize"`
	TotalPages int                     `json:"totalPages"`
}

// --- Orders ---

type orderItemRequest struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity" validate:"gte=1"`
	Price    float64 `json:"price"    validate:"gte=0"`
}

type createOrderRequest struct {
	Items             []orderItemRequest `json:"items"             validate:"dive"`
	Total             float64            `json:"total"             validate:"gte=0"`
	CheckoutSessionID string             `json:"checkoutSessionId"`
}

type createOrderResponse struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- Checkout ---

type checkoutItemRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Price    float64 `json:"price"    validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
}

type checkoutRequest struct {
	Items []checkoutItemRequest `json:"items" validate:"dive"`
}

type checkoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// --- Contact ---

type contactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// --- Dashboard ---

type dashboardResponse struct {
	Area  string `json:"area"`
	User  string `json:"user"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}
