package dto

import "time"

// Quote is the current trading snapshot of a symbol. Volume is nil when the provider tier omits it.
type Quote struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previous_close"`
	Volume        *int64  `json:"volume,omitempty"`
}

// SeriesPoint is one entry of a reported financial time series.
type SeriesPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// Fundamentals carries the provider's named metrics and the annual revenue series, newest first.
type Fundamentals struct {
	Symbol        string             `json:"symbol"`
	Metrics       map[string]float64 `json:"metrics"`
	AnnualRevenue []SeriesPoint      `json:"annual_revenue,omitempty"`
}

// CompanyProfile is slow-changing descriptive data. MarketCapitalization is in millions.
type CompanyProfile struct {
	Symbol               string  `json:"symbol"`
	Name                 string  `json:"name"`
	Exchange             string  `json:"exchange"`
	Currency             string  `json:"currency"`
	Country              string  `json:"country"`
	Industry             string  `json:"industry"`
	MarketCapitalization float64 `json:"market_capitalization"`
	ShareOutstanding     float64 `json:"share_outstanding"`
}

// PricePoint is one daily bar of price history.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// FundamentalMetrics are the typed ratios the evaluator works with. Nil means unknown.
type FundamentalMetrics struct {
	MarketCap  *float64
	ROE        *float64
	ROCE       *float64
	DebtEquity *float64
	ForwardPE  *float64
}
