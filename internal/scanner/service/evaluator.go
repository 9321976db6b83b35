package service

import (
	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/pkg/utils"
)

// Evaluate reports whether record satisfies every enforced threshold in criteria.
// A nil threshold is never enforced. An enforced threshold whose metric is unknown fails.
func Evaluate(record *dto.ScanResultRecord, criteria *dto.ScanCriteria) bool {
	if criteria == nil {
		return true
	}

	if criteria.MinVolume != nil && float64(record.Volume) < *criteria.MinVolume {
		return false
	}

	// momentum is only judged when there is enough history to measure it
	if criteria.MinPriceChangePercent != nil && record.PriceChange7d != nil &&
		*record.PriceChange7d < *criteria.MinPriceChangePercent {
		return false
	}

	if criteria.MinMarketCap != nil && criteria.MaxMarketCap != nil {
		if record.MarketCap == nil ||
			*record.MarketCap < *criteria.MinMarketCap ||
			*record.MarketCap > *criteria.MaxMarketCap {
			return false
		}
	}

	return atLeast(record.ROE, criteria.MinROE) &&
		atLeast(record.ROCE, criteria.MinROCE) &&
		atMost(record.DebtEquity, criteria.MaxDebtToEquity) &&
		atLeast(record.RevenueGrowth, criteria.MinRevenueGrowth) &&
		atMost(record.ForwardPE, criteria.MaxForwardPE)
}

func atLeast(value, min *float64) bool {
	if min == nil {
		return true
	}
	return value != nil && *value >= *min
}

func atMost(value, max *float64) bool {
	if max == nil {
		return true
	}
	return value != nil && *value <= *max
}

// DefaultMultibaggerCriteria is the classic small-cap quality screen.
func DefaultMultibaggerCriteria() dto.ScanCriteria {
	return dto.ScanCriteria{
		MinVolume:        utils.ToPointer(1_000_000.0),
		MinMarketCap:     utils.ToPointer(50_000_000.0),
		MaxMarketCap:     utils.ToPointer(5_000_000_000.0),
		MinROE:           utils.ToPointer(15.0),
		MinROCE:          utils.ToPointer(10.0),
		MaxDebtToEquity:  utils.ToPointer(0.3),
		MinRevenueGrowth: utils.ToPointer(15.0),
		MaxForwardPE:     utils.ToPointer(15.0),
	}
}
