// Package metrics exports dispatch activity to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/h3-runtime/dispatch"
)

// Observer implements dispatch.Observer.
type Observer struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	scratch  *prometheus.CounterVec
}

var _ dispatch.Observer = (*Observer)(nil)

// NewObserver creates the collectors and registers them with reg.
func NewObserver(reg prometheus.Registerer, namespace string) (*Observer, error) {
	o := &Observer{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Operation calls by outcome",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_duration_seconds",
			Help:      "Operation latency including marshalling",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"op"}),
		scratch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scratch_bytes_total",
			Help:      "Bytes of native scratch memory reserved",
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{o.calls, o.duration, o.scratch} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Observer) OnCall(op string, d time.Duration, outcome dispatch.Outcome) {
	o.calls.WithLabelValues(op, string(outcome)).Inc()
	o.duration.WithLabelValues(op).Observe(d.Seconds())
}

func (o *Observer) OnScratch(op string, bytes int) {
	o.scratch.WithLabelValues(op).Add(float64(bytes))
}
