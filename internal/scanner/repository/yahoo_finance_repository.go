package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"multibagger-scanner/internal/scanner/config"
	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/pkg/common"
	"multibagger-scanner/pkg/logger"
	"multibagger-scanner/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// PriceHistoryRepository provides daily closes and volumes, oldest first.
type PriceHistoryRepository interface {
	// GetHistory returns bars covering lookback (a chart range such as "3mo"; empty uses the configured range).
	GetHistory(ctx context.Context, symbol string, lookback string) ([]dto.PricePoint, error)
}

type yahooFinanceRepository struct {
	cfg            config.YahooFinance
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	metrics        *metrics.Metrics
}

func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger, m *metrics.Metrics) PriceHistoryRepository {
	limit := rate.Inf
	if cfg.YahooFinance.MaxRequestPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute))
	}
	timeout := cfg.YahooFinance.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &yahooFinanceRepository{
		cfg: cfg.YahooFinance,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		requestLimiter: rate.NewLimiter(limit, 1),
		metrics:        m,
	}
}

func (r *yahooFinanceRepository) GetHistory(ctx context.Context, symbol string, lookback string) ([]dto.PricePoint, error) {
	if lookback == "" {
		lookback = r.cfg.Range
	}
	interval := r.cfg.Interval
	if interval == "" {
		interval = "1d"
	}
	params := url.Values{"interval": {interval}, "range": {lookback}}
	endpoint := "/v8/finance/chart/" + url.PathEscape(symbol)

	body, err := r.sendRequest(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var chart dto.YahooChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("decode yahoo chart for %s: %w", symbol, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrProviderNoData, symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: empty chart for %s", ErrProviderNoData, symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	points := make([]dto.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil || *quote.Close[i] <= 0 {
			continue // holidays and halted sessions come back as null
		}
		p := dto.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			p.Volume = int64(*quote.Volume[i])
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no bars for %s", ErrProviderNoData, symbol)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	r.log.DebugContext(ctx, "Fetched price history",
		logger.StringField("symbol", symbol), logger.IntField("bars", len(points)))
	return points, nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	reqURL := r.cfg.BaseURL + endpoint + "?" + params.Encode()
	fields := []zap.Field{
		zap.String("url", reqURL),
		zap.Int("max_request_per_minute", r.cfg.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.metrics.ObserveProviderRequest(common.ProviderYahoo, "error")
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance API", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.metrics.ObserveProviderRequest(common.ProviderYahoo, "error")
		return nil, fmt.Errorf("read yahoo response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		r.metrics.ObserveProviderRequest(common.ProviderYahoo, "ok")
		return body, nil
	case http.StatusNotFound:
		// unknown symbols are answered with 404 and a chart.error body
		r.metrics.ObserveProviderRequest(common.ProviderYahoo, "no_data")
		return nil, fmt.Errorf("%w: %s", ErrProviderNoData, endpoint)
	case http.StatusTooManyRequests:
		r.metrics.ObserveProviderRequest(common.ProviderYahoo, "throttled")
		return nil, fmt.Errorf("%w: %s", ErrProviderThrottled, endpoint)
	default:
		r.metrics.ObserveProviderRequest(common.ProviderYahoo, "error")
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from Yahoo Finance API", fields...)
		return nil, &APIError{
			Provider:   common.ProviderYahoo,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    string(body),
		}
	}
}
