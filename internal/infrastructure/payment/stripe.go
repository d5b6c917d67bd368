// Package payment adapts the Stripe hosted checkout to the checkout ports.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/shopfront/storefront/internal/core/ports"
)

const defaultCurrency = "usd"

// Config holds the Stripe settings.
type Config struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	// BaseURL is the public storefront origin used for the redirect URLs.
	BaseURL string
}

type sessionCreator func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)

// StripeGateway creates hosted checkout sessions and verifies webhooks.
type StripeGateway struct {
	create        sessionCreator
	webhookSecret string
	currency      string
	successURL    string
	cancelURL     string
}

func NewStripeGateway(cfg Config) *StripeGateway {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	return newStripeGateway(sc.CheckoutSessions.New, cfg)
}

func newStripeGateway(create sessionCreator, cfg Config) *StripeGateway {
	currency := strings.ToLower(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &StripeGateway{
		create:        create,
		webhookSecret: cfg.WebhookSecret,
		currency:      currency,
		successURL:    base + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:     base + "/checkout",
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, items []ports.PaymentLineItem) (*ports.CheckoutSession, error) {
	lines := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, it := range items {
		lines = append(lines, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(it.UnitAmount),
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lines,
		SuccessURL:         stripe.String(g.successURL),
		CancelURL:          stripe.String(g.cancelURL),
	}
	params.Context = ctx

	s, err := g.create(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}
	return &ports.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// ParseWebhook verifies the Stripe-Signature header and extracts the session id
// from checkout session events.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*ports.WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, fmt.Errorf("stripe: webhook secret is not configured")
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("stripe: verify webhook: %w", err)
	}

	out := &ports.WebhookEvent{Type: string(event.Type)}
	if strings.HasPrefix(out.Type, "checkout.session.") && event.Data != nil {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("stripe: decode checkout session: %w", err)
		}
		out.SessionID = session.ID
	}
	return out, nil
}
