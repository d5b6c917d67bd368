package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

type stubCheckoutService struct {
	initiateFn func(ctx context.Context, items []ports.CheckoutItem) (*ports.CheckoutSession, error)
	webhookFn  func(ctx context.Context, payload []byte, signature string) error
}

func (s *stubCheckoutService) InitiateCheckout(ctx context.Context, items []ports.CheckoutItem) (*ports.CheckoutSession, error) {
	return s.initiateFn(ctx, items)
}

func (s *stubCheckoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return s.webhookFn(ctx, payload, signature)
}

type stubContactService struct {
	got *ports.ContactMessage
}

func (s *stubContactService) Submit(ctx context.Context, msg ports.ContactMessage) error {
	s.got = &msg
	return nil
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	stub := &stubCheckoutService{
		initiateFn: func(ctx context.Context, items []ports.CheckoutItem) (*ports.CheckoutSession, error) {
			if len(items) != 1 || items[0].Name != "Shirt" || items[0].Price != 19.99 || items[0].Quantity != 2 {
				t.Fatalf("unexpected items: %+v", items)
			}
			return &ports.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil
		},
	}
	handler := NewCheckoutHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/checkout",
		strings.NewReader(`{"items":[{"name":"Shirt","price":19.99,"quantity":2}]}`))

	if err := handler.Checkout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp checkoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.URL != "https://pay.example/cs_1" || resp.SessionID != "cs_1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCheckoutHandler_Checkout_EmptyCart(t *testing.T) {
	stub := &stubCheckoutService{
		initiateFn: func(ctx context.Context, items []ports.CheckoutItem) (*ports.CheckoutSession, error) {
			if len(items) != 0 {
				t.Fatalf("expected empty cart")
			}
			return nil, domain.Invalid("cart is empty")
		},
	}
	handler := NewCheckoutHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/checkout", strings.NewReader(`{"items":[]}`))

	if err := handler.Checkout(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckoutHandler_Checkout_GatewayFailure(t *testing.T) {
	stub := &stubCheckoutService{
		initiateFn: func(ctx context.Context, items []ports.CheckoutItem) (*ports.CheckoutSession, error) {
			return nil, fmt.Errorf("%w: timeout", domain.ErrPaymentFailed)
		},
	}
	handler := NewCheckoutHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/checkout",
		strings.NewReader(`{"items":[{"name":"Shirt","price":10,"quantity":1}]}`))

	if err := handler.Checkout(c); !errors.Is(err, domain.ErrPaymentFailed) {
		t.Fatalf("expected ErrPaymentFailed, got %v", err)
	}
}

func TestCheckoutHandler_Webhook_PassesRawBodyAndSignature(t *testing.T) {
	const payload = `{"type":"checkout.session.completed"}`
	stub := &stubCheckoutService{
		webhookFn: func(ctx context.Context, got []byte, signature string) error {
			if string(got) != payload || signature != "t=1,v1=abc" {
				t.Fatalf("unexpected webhook input: %s %s", got, signature)
			}
			return nil
		},
	}
	handler := NewCheckoutHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/checkout/webhook", strings.NewReader(payload))
	c.Request().Header.Set("Stripe-Signature", "t=1,v1=abc")

	if err := handler.Webhook(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestContactHandler_Submit(t *testing.T) {
	stub := &stubContactService{}
	handler := NewContactHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/contact",
		strings.NewReader(`{"name":"Ann","email":"ann@example.com","message":"Hello"}`))

	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || stub.got == nil || stub.got.Email != "ann@example.com" {
		t.Fatalf("expected message to be submitted, got %d %+v", rec.Code, stub.got)
	}
}

func TestContactHandler_Submit_BadEmail(t *testing.T) {
	stub := &stubContactService{}
	handler := NewContactHandler(stub)

	c, _ := newJSONContext(http.MethodPost, "/contact",
		strings.NewReader(`{"name":"Ann","email":"not-an-email","message":"Hello"}`))

	if err := handler.Submit(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if stub.got != nil {
		t.Fatalf("service should not be called")
	}
}

func TestDashboardHandler_Admin(t *testing.T) {
	handler := NewDashboardHandler()

	c, rec := newJSONContext(http.MethodGet, "/dashboard/admin", nil)
	signIn(c, "u1", domain.RoleAdmin)

	if err := handler.Admin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Area != "admin" || resp.Role != domain.RoleAdmin || resp.Email != "u1@example.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
