package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records counters for the customer-facing order flow.
type StorefrontMetrics struct {
	ordersPlaced    *prometheus.CounterVec
	geocodeFailures *prometheus.CounterVec
	cartMutations   *prometheus.CounterVec
	orderLatency    *prometheus.HistogramVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders accepted at checkout.",
	}, []string{"payment_method", "custom_city"})
	geocodeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geocode_failures_total",
		Help: "Failed geocoder lookups.",
	}, []string{"operation"})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	orderLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_placement_seconds",
		Help:    "Latency of order placement in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"payment_method"})
	reg.MustRegister(ordersPlaced, geocodeFailures, cartMutations, orderLatency)
	return &StorefrontMetrics{
		ordersPlaced:    ordersPlaced,
		geocodeFailures: geocodeFailures,
		cartMutations:   cartMutations,
		orderLatency:    orderLatency,
	}
}

// IncOrderPlaced increments the orders counter.
func (m *StorefrontMetrics) IncOrderPlaced(paymentMethod string, customCity bool) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	custom := "false"
	if customCity {
		custom = "true"
	}
	m.ordersPlaced.WithLabelValues(normalizeLabel(paymentMethod), custom).Inc()
}

// IncGeocodeFailure increments the geocode failure counter for the named operation.
func (m *StorefrontMetrics) IncGeocodeFailure(operation string) {
	if m == nil || m.geocodeFailures == nil {
		return
	}
	m.geocodeFailures.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncCartMutation increments the cart mutation counter for the named operation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// ObserveOrderLatency records how long order placement took.
func (m *StorefrontMetrics) ObserveOrderLatency(paymentMethod string, duration time.Duration) {
	if m == nil || m.orderLatency == nil {
		return
	}
	m.orderLatency.WithLabelValues(normalizeLabel(paymentMethod)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
