package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveCacheLookup("get_quote", true)
	m.ObserveCacheLookup("get_quote", false)
	m.ObserveCacheLookup("get_quote", false)
	m.ObserveProviderRequest("finnhub", "throttled")
	m.ObserveSymbol("skipped")
	m.ObserveLimiterWait(2 * time.Second)
	m.ObserveScan(time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("get_quote", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("get_quote", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("finnhub", "throttled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScannedSymbols.WithLabelValues("skipped")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCacheLookup("get_quote", true)
		m.ObserveProviderRequest("yahoo", "ok")
		m.ObserveSymbol("matched")
		m.ObserveLimiterWait(time.Second)
		m.ObserveScan(time.Second)
	})
}
