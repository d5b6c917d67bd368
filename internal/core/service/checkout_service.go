package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/shopfront/storefront/internal/api/metrics"
	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// EventCheckoutCompleted is the processor event sent once a session is paid.
const EventCheckoutCompleted = "checkout.session.completed"

var hundred = decimal.NewFromInt(100)

type CheckoutService struct {
	gateway  ports.PaymentGateway
	verifier ports.WebhookVerifier
	sessions ports.CheckoutRegistry
	logger   zerolog.Logger
}

// NewCheckoutService builds a CheckoutService. sessions may be nil.
func NewCheckoutService(gateway ports.PaymentGateway, verifier ports.WebhookVerifier, sessions ports.CheckoutRegistry, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{gateway: gateway, verifier: verifier, sessions: sessions, logger: logger}
}

// InitiateCheckout opens a hosted payment session for the cart. The cart is
// validated before the processor is contacted.
func (s *CheckoutService) InitiateCheckout(ctx context.Context, items []ports.CheckoutItem) (*ports.CheckoutSession, error) {
	if len(items) == 0 {
		return nil, domain.Invalid("cart is empty")
	}

	lines := make([]ports.PaymentLineItem, 0, len(items))
	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		switch {
		case name == "":
			return nil, domain.Invalid(fmt.Sprintf("items[%d]: name is required", i))
		case item.Price <= 0:
			return nil, domain.Invalid(fmt.Sprintf("items[%d]: price must be positive", i))
		case item.Quantity < 1:
			return nil, domain.Invalid(fmt.Sprintf("items[%d]: quantity must be at least 1", i))
		}
		lines = append(lines, ports.PaymentLineItem{
			Name:       name,
			UnitAmount: MinorUnits(item.Price),
			Quantity:   int64(item.Quantity),
		})
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, lines)
	if err != nil {
		metrics.CheckoutSessionsTotal.WithLabelValues("failed").Inc()
		s.logger.Error().Err(err).Int("items", len(lines)).Msg("failed to create checkout session")
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
	}

	metrics.CheckoutSessionsTotal.WithLabelValues("created").Inc()
	s.logger.Info().Str("session_id", session.ID).Int("items", len(lines)).Msg("checkout session created")
	return session, nil
}

// HandleWebhook verifies a processor callback and records completed sessions.
// Events of other types are acknowledged and ignored.
func (s *CheckoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.verifier.ParseWebhook(payload, signature)
	if err != nil {
		s.logger.Warn().Err(err).Msg("rejected webhook")
		return domain.Invalid("invalid webhook signature")
	}

	if event.Type != EventCheckoutCompleted {
		s.logger.Debug().Str("type", event.Type).Msg("ignoring webhook event")
		return nil
	}

	if s.sessions != nil && event.SessionID != "" {
		if err := s.sessions.MarkPaid(ctx, event.SessionID); err != nil {
			return fmt.Errorf("mark session paid: %w", err)
		}
	}

	metrics.PaymentsCompletedTotal.Inc()
	s.logger.Info().Str("session_id", event.SessionID).Msg("checkout session completed")
	return nil
}

// MinorUnits converts a major-unit price to the processor's integer minor
// units, rounding half away from zero.
func MinorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(hundred).Round(0).IntPart()
}
