package service

import (
	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/pkg/utils"
)

// UnknownRatioSentinel is the placeholder providers report for a debt/equity or P/E they
// cannot compute. Values at or above it are treated as unknown.
const UnknownRatioSentinel = 999.0

// marketCapUnit converts the provider's market capitalization (millions) to currency units.
const marketCapUnit = 1_000_000.0

type metricLookup struct {
	// names are tried in order; the first present one wins
	names    []string
	scale    float64
	sentinel bool
	field    func(*dto.FundamentalMetrics) **float64
}

var metricLookups = []metricLookup{
	{
		names: []string{"marketCapitalization"},
		scale: marketCapUnit,
		field: func(m *dto.FundamentalMetrics) **float64 { return &m.MarketCap },
	},
	{
		names: []string{"roeTTM"},
		field: func(m *dto.FundamentalMetrics) **float64 { return &m.ROE },
	},
	{
		names: []string{"roicTTM", "roiTTM"},
		field: func(m *dto.FundamentalMetrics) **float64 { return &m.ROCE },
	},
	{
		names:    []string{"totalDebtToEquity", "totalDebt/totalEquityAnnual", "totalDebt/totalEquityQuarterly"},
		sentinel: true,
		field:    func(m *dto.FundamentalMetrics) **float64 { return &m.DebtEquity },
	},
	{
		names:    []string{"peTTM", "peBasicExclExtraTTM"},
		sentinel: true,
		field:    func(m *dto.FundamentalMetrics) **float64 { return &m.ForwardPE },
	},
}

// ExtractMetrics maps the provider's named metric block onto typed, nullable ratios.
func ExtractMetrics(f *dto.Fundamentals) dto.FundamentalMetrics {
	var out dto.FundamentalMetrics
	if f == nil {
		return out
	}

	for _, lookup := range metricLookups {
		for _, name := range lookup.names {
			v, ok := f.Metrics[name]
			if !ok {
				continue
			}
			if lookup.sentinel && v >= UnknownRatioSentinel {
				break
			}
			if lookup.scale != 0 {
				v *= lookup.scale
			}
			*lookup.field(&out) = utils.ToPointer(v)
			break
		}
	}
	return out
}

// PriceChange7d compares the latest close with the close seven sessions back, counting the latest.
func PriceChange7d(closes []float64) *float64 {
	if len(closes) < 7 {
		return nil
	}
	return percentChange(closes[len(closes)-7], closes[len(closes)-1])
}

// PriceChange30d compares the latest close with the close thirty sessions back, or with the
// earliest close when the history is shorter.
func PriceChange30d(closes []float64) *float64 {
	switch {
	case len(closes) >= 30:
		return percentChange(closes[len(closes)-30], closes[len(closes)-1])
	case len(closes) > 1:
		return percentChange(closes[0], closes[len(closes)-1])
	default:
		return nil
	}
}

func percentChange(from, to float64) *float64 {
	if from <= 0 {
		return nil
	}
	return utils.ToPointer((to - from) / from * 100)
}

// RevenueGrowth is the year-over-year change between the two newest entries of a
// newest-first annual series. Without two usable entries it is zero.
func RevenueGrowth(series []dto.SeriesPoint) float64 {
	if len(series) < 2 {
		return 0
	}
	latest, previous := series[0].Value, series[1].Value
	if previous <= 0 {
		return 0
	}
	return (latest - previous) / previous * 100
}
