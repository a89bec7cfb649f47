// Package metrics records jar activity as Prometheus collectors on a private
// registry so the shell can print them on demand.
package metrics

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/mesh-intelligence/cookiejar/pkg/types"
)

const namespace = "cookiejar"

// Withdrawal modes used as the "mode" label.
const (
	ModeNewest = "newest"
	ModeOldest = "oldest_of_type"
)

// Recorder owns the collectors for one jar.
type Recorder struct {
	registry    *prometheus.Registry
	size        prometheus.Gauge
	capacity    prometheus.Gauge
	held        *prometheus.GaugeVec
	deposits    *prometheus.CounterVec
	withdrawals *prometheus.CounterVec
	rejections  *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jar_size",
			Help:      "Number of cookies currently in the jar.",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jar_capacity",
			Help:      "Maximum number of cookies the jar accepts.",
		}),
		held: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jar_cookies",
			Help:      "Number of cookies currently in the jar, by type.",
		}, []string{"type"}),
		deposits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deposits_total",
			Help:      "Cookies deposited, by type.",
		}, []string{"type"}),
		withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawals_total",
			Help:      "Cookies withdrawn, by type and selection mode.",
		}, []string{"type", "mode"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Operations rejected, by operation and reason.",
		}, []string{"op", "reason"}),
	}
	r.registry.MustRegister(r.size, r.capacity, r.held, r.deposits, r.withdrawals, r.rejections)
	return r
}

// Observe copies the jar's current size, capacity and per-type counts into
// the gauges.
func (r *Recorder) Observe(j *types.Jar) {
	r.size.Set(float64(j.Size()))
	r.capacity.Set(float64(j.Capacity()))
	for t, n := range j.Counts() {
		r.held.WithLabelValues(t.String()).Set(float64(n))
	}
}

// Deposited counts one successful deposit.
func (r *Recorder) Deposited(c types.Cookie) {
	r.deposits.WithLabelValues(c.Type().String()).Inc()
}

// Withdrew counts one successful withdrawal in the given mode.
func (r *Recorder) Withdrew(c types.Cookie, mode string) {
	r.withdrawals.WithLabelValues(c.Type().String(), mode).Inc()
}

// Rejected counts a failed operation under the reason derived from err.
func (r *Recorder) Rejected(op string, err error) {
	r.rejections.WithLabelValues(op, Reason(err)).Inc()
}

// Reason maps a jar error to a short label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, types.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, types.ErrEmptyJar):
		return "empty"
	case errors.Is(err, types.ErrTypeUnavailable):
		return "type_unavailable"
	case errors.Is(err, types.ErrInvalidType):
		return "invalid_type"
	case errors.Is(err, types.ErrInvalidCapacity):
		return "invalid_capacity"
	case errors.Is(err, types.ErrNegativeQuantity):
		return "negative_quantity"
	default:
		return "other"
	}
}

// WriteText writes every metric family in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
