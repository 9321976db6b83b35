package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"multibagger-scanner/internal/scanner/config"
	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/pkg/cache"
	"multibagger-scanner/pkg/common"
	"multibagger-scanner/pkg/logger"
	"multibagger-scanner/pkg/metrics"
	"multibagger-scanner/pkg/ratelimit"
	"multibagger-scanner/pkg/utils"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// FundamentalsRepository fetches quotes, fundamentals and profiles from Finnhub.
// Every call goes through the shared quota limiter and is memoized in the cache.
type FundamentalsRepository interface {
	GetQuote(ctx context.Context, symbol string) (*dto.Quote, error)
	GetFundamentals(ctx context.Context, symbol string) (*dto.Fundamentals, error)
	GetCompanyProfile(ctx context.Context, symbol string) (*dto.CompanyProfile, error)
	// ClearCache drops every cached Finnhub response and returns how many keys were removed.
	ClearCache(ctx context.Context) int
}

type finnhubRepository struct {
	cfg        config.Finnhub
	log        *logger.Logger
	httpClient *http.Client
	limiter    *ratelimit.SlidingWindow
	breaker    *gobreaker.CircuitBreaker
	cache      cache.Cache
	metrics    *metrics.Metrics

	// backoffTimer is nil outside tests; backoff then uses a real timer.
	backoffTimer backoff.Timer
}

// NewFinnhubRepository creates the Finnhub client. limiter must be the process-wide instance.
func NewFinnhubRepository(
	cfg *config.Config,
	log *logger.Logger,
	limiter *ratelimit.SlidingWindow,
	store cache.Cache,
	m *metrics.Metrics,
) FundamentalsRepository {
	if store == nil {
		store = cache.NewNop()
	}
	r := &finnhubRepository{
		cfg: cfg.Finnhub,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Finnhub.Timeout,
		},
		limiter: limiter,
		cache:   store,
		metrics: m,
	}
	if r.cfg.CachePrefix == "" {
		r.cfg.CachePrefix = common.FinnhubCachePrefix
	}
	if r.cfg.QuoteTTL <= 0 {
		r.cfg.QuoteTTL = cache.DefaultTTL
	}
	if r.cfg.FundamentalsTTL <= 0 {
		r.cfg.FundamentalsTTL = cache.DefaultTTL
	}
	if r.cfg.ProfileTTL <= 0 {
		r.cfg.ProfileTTL = cache.ProfileTTL
	}
	tripAfter := cfg.Finnhub.BreakerConsecutiveFailures
	if tripAfter == 0 {
		tripAfter = 5
	}
	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    common.ProviderFinnhub,
		Timeout: cfg.Finnhub.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return r
}

// Throttling and missing symbols say nothing about provider health.
func isBreakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, ErrProviderThrottled) ||
		errors.Is(err, ErrProviderNoData) ||
		errors.Is(err, context.Canceled)
}

func (r *finnhubRepository) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	return cachedFetch(ctx, r, common.OpGetQuote, r.cfg.QuoteTTL, symbol, func(ctx context.Context) (*dto.Quote, error) {
		var resp dto.FinnhubQuoteResponse
		if err := r.call(ctx, "/quote", url.Values{"symbol": {symbol}}, &resp); err != nil {
			return nil, err
		}
		if resp.Current <= 0 {
			return nil, fmt.Errorf("%w: no quote for %s", ErrProviderNoData, symbol)
		}

		quote := &dto.Quote{
			Symbol:        symbol,
			CurrentPrice:  resp.Current,
			High:          resp.High,
			Low:           resp.Low,
			Open:          resp.Open,
			PreviousClose: resp.PreviousClose,
		}
		if resp.Volume != nil && *resp.Volume > 0 {
			quote.Volume = utils.ToPointer(int64(*resp.Volume))
		}
		return quote, nil
	})
}

func (r *finnhubRepository) GetFundamentals(ctx context.Context, symbol string) (*dto.Fundamentals, error) {
	return cachedFetch(ctx, r, common.OpGetFundamentals, r.cfg.FundamentalsTTL, symbol, func(ctx context.Context) (*dto.Fundamentals, error) {
		var resp dto.FinnhubMetricResponse
		params := url.Values{"symbol": {symbol}, "metric": {"all"}}
		if err := r.call(ctx, "/stock/metric", params, &resp); err != nil {
			return nil, err
		}

		metricValues := make(map[string]float64, len(resp.Metric))
		for name, raw := range resp.Metric {
			if v, ok := raw.(float64); ok {
				metricValues[name] = v
			}
		}
		if len(metricValues) == 0 {
			return nil, fmt.Errorf("%w: empty metric block for %s", ErrProviderNoData, symbol)
		}

		fundamentals := &dto.Fundamentals{Symbol: symbol, Metrics: metricValues}
		for _, p := range resp.Series.Annual["revenue"] {
			fundamentals.AnnualRevenue = append(fundamentals.AnnualRevenue, dto.SeriesPoint{Period: p.Period, Value: p.Value})
		}
		// newest first; periods are ISO dates
		sort.SliceStable(fundamentals.AnnualRevenue, func(i, j int) bool {
			return fundamentals.AnnualRevenue[i].Period > fundamentals.AnnualRevenue[j].Period
		})
		return fundamentals, nil
	})
}

func (r *finnhubRepository) GetCompanyProfile(ctx context.Context, symbol string) (*dto.CompanyProfile, error) {
	return cachedFetch(ctx, r, common.OpGetCompanyProfile, r.cfg.ProfileTTL, symbol, func(ctx context.Context) (*dto.CompanyProfile, error) {
		var resp dto.FinnhubProfileResponse
		if err := r.call(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &resp); err != nil {
			return nil, err
		}
		if resp.Ticker == "" && resp.Name == "" {
			return nil, fmt.Errorf("%w: no profile for %s", ErrProviderNoData, symbol)
		}
		return &dto.CompanyProfile{
			Symbol:               symbol,
			Name:                 resp.Name,
			Exchange:             resp.Exchange,
			Currency:             resp.Currency,
			Country:              resp.Country,
			Industry:             resp.Industry,
			MarketCapitalization: resp.MarketCapitalization,
			ShareOutstanding:     resp.ShareOutstanding,
		}, nil
	})
}

func (r *finnhubRepository) ClearCache(ctx context.Context) int {
	n := r.cache.ClearByPrefix(ctx, r.cfg.CachePrefix+":")
	r.log.InfoContext(ctx, "Cleared Finnhub cache", logger.IntField("deleted", n))
	return n
}

// cachedFetch returns the cached value for (op, symbol) or runs fetch and caches its result.
// fetch reports empty payloads as errors, so only usable values are ever stored.
func cachedFetch[T any](
	ctx context.Context,
	r *finnhubRepository,
	op string,
	ttl time.Duration,
	symbol string,
	fetch func(ctx context.Context) (*T, error),
) (*T, error) {
	key := cache.Key(r.cfg.CachePrefix, op, symbol)

	var cached T
	if r.cache.Get(ctx, key, &cached) {
		r.metrics.ObserveCacheLookup(op, true)
		r.log.DebugContext(ctx, "Cache hit", logger.StringField("key", key))
		return &cached, nil
	}
	r.metrics.ObserveCacheLookup(op, false)
	r.log.DebugContext(ctx, "Cache miss", logger.StringField("key", key))

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, key, value, ttl)
	return value, nil
}

// call issues one logical request, retrying with exponential backoff while the provider throttles.
func (r *finnhubRepository) call(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.cfg.InitialBackoff
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxInterval = time.Hour
	policy.MaxElapsedTime = 0

	attempts := 0
	operation := func() error {
		attempts++
		err := r.fetch(ctx, endpoint, params, out)
		if err == nil || errors.Is(err, ErrProviderThrottled) {
			return err
		}
		return backoff.Permanent(err)
	}
	notify := func(err error, wait time.Duration) {
		r.log.WarnContext(ctx, "Finnhub rate limit hit, backing off",
			logger.StringField("endpoint", endpoint),
			logger.IntField("attempt", attempts),
			logger.Field("wait", wait),
		)
	}

	// max_retries counts every call to the provider, the first one included
	maxAttempts := r.cfg.MaxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(maxAttempts-1)), ctx)
	err := backoff.RetryNotifyWithTimer(operation, b, notify, r.backoffTimer)
	if err != nil && errors.Is(err, ErrProviderThrottled) {
		return fmt.Errorf("%w: %s after %d attempts: %w", ErrProviderUnavailable, endpoint, attempts, err)
	}
	return err
}

// fetch is a single attempt: wait for quota, then send through the circuit breaker.
func (r *finnhubRepository) fetch(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	waited, err := r.limiter.Wait(ctx)
	r.metrics.ObserveLimiterWait(waited)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for request limit", logger.StringField("endpoint", endpoint), logger.ErrorField(err))
		return err
	}

	_, err = r.breaker.Execute(func() (interface{}, error) {
		return nil, r.sendRequest(ctx, endpoint, params, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		r.metrics.ObserveProviderRequest(common.ProviderFinnhub, "circuit_open")
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	return err
}

func (r *finnhubRepository) sendRequest(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	reqURL := r.cfg.BaseURL + endpoint + "?" + params.Encode()
	fields := []zap.Field{
		zap.String("endpoint", endpoint),
		zap.String("symbol", params.Get("symbol")),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Finnhub-Token", r.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.metrics.ObserveProviderRequest(common.ProviderFinnhub, "error")
		r.log.ErrorContext(ctx, "Failed to send request to Finnhub API", append(fields, zap.Error(err))...)
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.metrics.ObserveProviderRequest(common.ProviderFinnhub, "error")
		return fmt.Errorf("read finnhub response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		r.metrics.ObserveProviderRequest(common.ProviderFinnhub, "throttled")
		return fmt.Errorf("%w: %s", ErrProviderThrottled, endpoint)
	case resp.StatusCode != http.StatusOK:
		r.metrics.ObserveProviderRequest(common.ProviderFinnhub, "error")
		r.log.ErrorContext(ctx, "Received non-OK response from Finnhub API", append(fields, zap.Int("status_code", resp.StatusCode))...)
		return &APIError{
			Provider:   common.ProviderFinnhub,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		r.metrics.ObserveProviderRequest(common.ProviderFinnhub, "error")
		return fmt.Errorf("decode finnhub %s: %w", endpoint, err)
	}
	r.metrics.ObserveProviderRequest(common.ProviderFinnhub, "ok")
	return nil
}
