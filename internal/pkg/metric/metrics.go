// Package metric holds the service's Prometheus collectors.
package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Subsystem: "orders",
		Name:      "placed_total",
		Help:      "Orders placed, by payment method",
	}, []string{"payment_method"})

	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Subsystem: "orders",
		Name:      "transitions_total",
		Help:      "Order status changes, by target status",
	}, []string{"status"})

	CouponRedemptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Subsystem: "coupons",
		Name:      "redemptions_total",
		Help:      "Coupon redemption attempts at placement",
	}, []string{"result"}) // redeemed / rejected

	PaymentCallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Subsystem: "payments",
		Name:      "callbacks_total",
		Help:      "Gateway callbacks, by outcome",
	}, []string{"result"})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Domain events handed to the broker",
	}, []string{"event", "status"})

	CatalogDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "checkout",
		Subsystem: "catalog",
		Name:      "call_duration_seconds",
		Help:      "Latency of catalog lookups",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	JobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Subsystem: "jobs",
		Name:      "runs_total",
		Help:      "Background job executions",
	}, []string{"job", "status"})

	RequestMetrics = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  "checkout",
		Subsystem:  "http",
		Name:       "request",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"status"})
)

func ObserveRequest(t time.Duration, status int) {
	RequestMetrics.WithLabelValues(strconv.Itoa(status)).Observe(t.Seconds())
}

// Status maps an error to the "success"/"error" label pair used above.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
