package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "multibagger"

// Metrics holds the Prometheus collectors for the scanner. A nil *Metrics records nothing.
type Metrics struct {
	CacheLookups     *prometheus.CounterVec
	ProviderRequests *prometheus.CounterVec
	ScannedSymbols   *prometheus.CounterVec
	LimiterWait      prometheus.Histogram
	ScanDuration     prometheus.Histogram
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Cache lookups by operation and result (hit or miss).",
			},
			[]string{"op", "result"},
		),
		ProviderRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_requests_total",
				Help:      "Outbound provider requests by provider and outcome.",
			},
			[]string{"provider", "outcome"},
		),
		ScannedSymbols: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scanned_symbols_total",
				Help:      "Symbols processed by the scanner, by outcome.",
			},
			[]string{"outcome"},
		),
		LimiterWait: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rate_limiter_wait_seconds",
				Help:      "Time spent waiting for provider quota.",
				Buckets:   []float64{0, 0.1, 0.5, 1, 5, 15, 30, 60},
			},
		),
		ScanDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "scan_duration_seconds",
				Help:      "Wall time of a full scan.",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
			},
		),
	}
}

func (m *Metrics) ObserveCacheLookup(op string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(op, result).Inc()
}

func (m *Metrics) ObserveProviderRequest(provider, outcome string) {
	if m == nil {
		return
	}
	m.ProviderRequests.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveSymbol(outcome string) {
	if m == nil {
		return
	}
	m.ScannedSymbols.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLimiterWait(d time.Duration) {
	if m == nil {
		return
	}
	m.LimiterWait.Observe(d.Seconds())
}

func (m *Metrics) ObserveScan(d time.Duration) {
	if m == nil {
		return
	}
	m.ScanDuration.Observe(d.Seconds())
}
