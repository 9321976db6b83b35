package dto

import "time"

// ScanCriteria holds the thresholds a symbol must satisfy. A nil threshold is not enforced;
// a set threshold is an inclusive bound.
type ScanCriteria struct {
	MinVolume             *float64 `json:"minVolume,omitempty"`
	MinPriceChangePercent *float64 `json:"minPriceChangePercent,omitempty"`
	MinMarketCap          *float64 `json:"minMarketCap,omitempty"`
	MaxMarketCap          *float64 `json:"maxMarketCap,omitempty"`
	MinROE                *float64 `json:"minROE,omitempty"`
	MinROCE               *float64 `json:"minROCE,omitempty"`
	MaxDebtToEquity       *float64 `json:"maxDebtEquity,omitempty"`
	MinRevenueGrowth      *float64 `json:"minRevenueGrowth,omitempty"`
	MaxForwardPE          *float64 `json:"maxForwardPE,omitempty"`
}

// ScanRequest is the body of POST /api/v1/scan.
type ScanRequest struct {
	Symbols []string `json:"symbols"`
	ScanCriteria
}

// ScanResultRecord is the per-symbol outcome of a scan.
type ScanResultRecord struct {
	Symbol         string   `json:"symbol"`
	Price          float64  `json:"price"`
	Volume         int64    `json:"volume"`
	PriceChange7d  *float64 `json:"price_change_7d"`
	PriceChange30d *float64 `json:"price_change_30d"`
	MarketCap      *float64 `json:"market_cap"`
	ROE            *float64 `json:"roe"`
	ROCE           *float64 `json:"roce"`
	DebtEquity     *float64 `json:"debt_equity"`
	RevenueGrowth  *float64 `json:"revenue_growth"`
	ForwardPE      *float64 `json:"forward_pe"`
	MeetsCriteria  bool     `json:"meets_criteria"`
}

// ScanResponse is returned by a scan. TotalScanned counts produced records, not requested symbols.
type ScanResponse struct {
	TotalScanned int                `json:"totalScanned"`
	Matches      int                `json:"matches"`
	Results      []ScanResultRecord `json:"results"`
}

// ScanRunResponse describes a persisted scan for the history endpoints.
type ScanRunResponse struct {
	ID           uint               `json:"id"`
	Symbols      []string           `json:"symbols"`
	Criteria     ScanCriteria       `json:"criteria"`
	TotalScanned int                `json:"totalScanned"`
	Matches      int                `json:"matches"`
	CreatedAt    time.Time          `json:"created_at"`
	Results      []ScanResultRecord `json:"results,omitempty"`
}

// ClearCacheResponse reports how many cached provider entries were removed.
type ClearCacheResponse struct {
	Deleted int `json:"deleted"`
}
