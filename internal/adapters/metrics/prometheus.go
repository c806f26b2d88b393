// Package metrics exposes booking outcome counters through Prometheus.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"placementportal/internal/domain"
)

// Booking counts booking operations by operation and outcome on its own registry.
type Booking struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// NewBooking creates the collectors and registers them, with the Go and process collectors, on a fresh registry.
func NewBooking() *Booking {
	reg := prometheus.NewRegistry()
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "interview_booking_operations_total",
		Help: "Mock interview booking operations by operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(
		ops,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Booking{registry: reg, operations: ops}
}

// Observe implements domain.BookingMetrics.
func (b *Booking) Observe(operation string, err error) {
	b.operations.WithLabelValues(operation, Outcome(err)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (b *Booking) Handler() http.Handler {
	return promhttp.HandlerFor(b.registry, promhttp.HandlerOpts{Registry: b.registry})
}

// Outcome maps an operation error to a bounded label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrSchedulingConflict):
		return "conflict"
	case errors.Is(err, domain.ErrAlreadyAssigned):
		return "already_assigned"
	case errors.Is(err, domain.ErrSelfAssignment):
		return "self_assignment"
	case errors.Is(err, domain.ErrInvalidInterval), errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrTooLate):
		return "too_late"
	case errors.Is(err, domain.ErrSlotCancelled):
		return "cancelled"
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return "concurrent_update"
	default:
		return "error"
	}
}
