package dto

// FinnhubQuoteResponse is the body of GET /quote.
type FinnhubQuoteResponse struct {
	Current       float64  `json:"c"`
	Change        *float64 `json:"d"`
	PercentChange *float64 `json:"dp"`
	High          float64  `json:"h"`
	Low           float64  `json:"l"`
	Open          float64  `json:"o"`
	PreviousClose float64  `json:"pc"`
	Timestamp     int64    `json:"t"`
	Volume        *float64 `json:"v"`
}

// FinnhubSeriesPoint is one entry of series.annual.* in GET /stock/metric.
type FinnhubSeriesPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"v"`
}

// FinnhubMetricResponse is the body of GET /stock/metric?metric=all. Metric values are mostly
// numbers but some are dates or strings.
type FinnhubMetricResponse struct {
	Symbol string                 `json:"symbol"`
	Metric map[string]interface{} `json:"metric"`
	Series struct {
		Annual map[string][]FinnhubSeriesPoint `json:"annual"`
	} `json:"series"`
}

// FinnhubProfileResponse is the body of GET /stock/profile2.
type FinnhubProfileResponse struct {
	Country              string  `json:"country"`
	Currency             string  `json:"currency"`
	Exchange             string  `json:"exchange"`
	Industry             string  `json:"finnhubIndustry"`
	MarketCapitalization float64 `json:"marketCapitalization"`
	Name                 string  `json:"name"`
	ShareOutstanding     float64 `json:"shareOutstanding"`
	Ticker               string  `json:"ticker"`
}

// YahooChartResponse is the body of GET /v8/finance/chart/{symbol}. Bars for non-trading
// days come back as nulls.
type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol   string `json:"symbol"`
				Currency string `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}
