package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionTTL = 24 * time.Hour

// CheckoutRegistry tracks hosted checkout sessions in Redis.
// Key formats:
//
//	checkout:order:<session_id>  set once an order has been placed for the session
//	checkout:paid:<session_id>   set when the processor reports the session as paid
type CheckoutRegistry struct {
	client *redis.Client
}

// NewCheckoutRegistry creates a CheckoutRegistry wrapping the given Redis client.
func NewCheckoutRegistry(client *redis.Client) *CheckoutRegistry {
	return &CheckoutRegistry{client: client}
}

// Claim atomically reserves the session for a single order.
func (r *CheckoutRegistry) Claim(ctx context.Context, sessionID string) (bool, error) {
	ok, err := r.client.SetNX(ctx, orderKey(sessionID), "1", sessionTTL).Result()
	if err != nil {
		return false, fmt.Errorf("claim checkout session: %w", err)
	}
	return ok, nil
}

// Release frees a claim whose order could not be stored.
func (r *CheckoutRegistry) Release(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, orderKey(sessionID)).Err()
}

// MarkPaid records a completed payment (expires after sessionTTL).
func (r *CheckoutRegistry) MarkPaid(ctx context.Context, sessionID string) error {
	return r.client.Set(ctx, paidKey(sessionID), time.Now().UTC().Format(time.RFC3339), sessionTTL).Err()
}

func orderKey(sessionID string) string { return "checkout:order:" + sessionID }

func paidKey(sessionID string) string { return "checkout:paid:" + sessionID }
