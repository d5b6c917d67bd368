// Package metrics defines and registers all custom Prometheus metrics for the
// storefront API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts orders placed by customers.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders placed.",
	},
)

// OrderStatusTransitionsTotal counts status changes applied by admins.
// Labels:
//   - to: the new status (e.g. "Shipped")
//   - result: "applied", "rejected" (not a legal transition) or "conflict" (lost a concurrent update)
var OrderStatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_transitions_total",
		Help:      "Total number of order status change attempts, by target status and result.",
	},
	[]string{"to", "result"},
)

// OrderValue records the client-supplied totals of placed orders.
var OrderValue = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_value",
		Help:      "Distribution of order totals in major currency units.",
		Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
	},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutSessionsTotal counts hosted checkout session attempts.
// Label:
//   - result: "created" or "failed"
var CheckoutSessionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_sessions_total",
		Help:      "Total number of hosted checkout sessions requested, by result.",
	},
	[]string{"result"},
)

// CheckoutSessionDedupTotal counts order-to-session claims.
// Label:
//   - result: "hit" (session already used, order rejected) or "miss" (first claim)
var CheckoutSessionDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_session_dedup_total",
		Help:      "Total number of checkout session claims, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// PaymentsCompletedTotal counts completed-payment notifications received by webhook.
var PaymentsCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_completed_total",
		Help:      "Total number of checkout sessions reported as completed by the payment processor.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductsWrittenTotal counts product writes.
// Label:
//   - op: "create", "update" or "delete"
var ProductsWrittenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_written_total",
		Help:      "Total number of product writes, by operation.",
	},
	[]string{"op"},
)

// CategoryCacheTotal counts category listing cache lookups.
// Label:
//   - result: "hit" or "miss"
var CategoryCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "category_cache_total",
		Help:      "Total number of category listing cache lookups, by result.",
	},
	[]string{"result"},
)
