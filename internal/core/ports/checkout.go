package ports

import "context"

// CheckoutItem is one cart line sent to checkout.
type CheckoutItem struct {
	Name     string
	Price    float64
	Quantity int
}

// PaymentLineItem is a cart line expressed in the processor's minor units.
type PaymentLineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// CheckoutSession is a hosted payment session the customer is redirected to.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway creates hosted checkout sessions on the payment processor.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, items []PaymentLineItem) (*CheckoutSession, error)
}

// WebhookEvent is a verified notification from the payment processor.
type WebhookEvent struct {
	Type      string
	SessionID string
}

// WebhookVerifier authenticates and decodes processor callbacks.
type WebhookVerifier interface {
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

type CheckoutService interface {
	InitiateCheckout(ctx context.Context, items []CheckoutItem) (*CheckoutSession, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}
