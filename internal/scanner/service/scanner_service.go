package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"multibagger-scanner/internal/entity"
	"multibagger-scanner/internal/scanner/config"
	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/internal/scanner/repository"
	"multibagger-scanner/pkg/logger"
	"multibagger-scanner/pkg/metrics"
	"multibagger-scanner/pkg/utils"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

var errUnusableQuote = errors.New("unusable quote")

// ScannerService runs multibagger scans and serves their history.
type ScannerService interface {
	// Scan evaluates every symbol and returns the records that could be built, in input order.
	// Only a ValidationError is ever returned; per-symbol and storage failures are logged.
	Scan(ctx context.Context, req *dto.ScanRequest) (*dto.ScanResponse, error)
	ListRuns(ctx context.Context, limit int) ([]*dto.ScanRunResponse, error)
	GetRun(ctx context.Context, id uint) (*dto.ScanRunResponse, error)
	ClearCache(ctx context.Context) int
}

// NewScannerService creates the scan orchestrator. store may be nil to skip persistence.
func NewScannerService(
	cfg *config.Config,
	log *logger.Logger,
	history repository.PriceHistoryRepository,
	fundamentals repository.FundamentalsRepository,
	store repository.ScanResultRepository,
	m *metrics.Metrics,
) ScannerService {
	return &scannerService{
		cfg:          cfg.Scanner,
		log:          log,
		history:      history,
		fundamentals: fundamentals,
		store:        store,
		metrics:      m,
	}
}

type scannerService struct {
	cfg          config.Scanner
	log          *logger.Logger
	history      repository.PriceHistoryRepository
	fundamentals repository.FundamentalsRepository
	store        repository.ScanResultRepository
	metrics      *metrics.Metrics
}

func (s *scannerService) Scan(ctx context.Context, req *dto.ScanRequest) (*dto.ScanResponse, error) {
	if req == nil {
		return nil, newValidationError("symbols", "at least one symbol is required")
	}
	symbols := normalizeSymbols(req.Symbols)
	if len(symbols) == 0 {
		return nil, newValidationError("symbols", "at least one symbol is required")
	}
	if req.MinVolume != nil && *req.MinVolume < 0 {
		return nil, newValidationError("minVolume", "must not be negative")
	}

	start := time.Now()
	criteria := req.ScanCriteria
	slots := make([]*dto.ScanResultRecord, len(symbols))

	workers := s.cfg.MaxConcurrentSymbols
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			var record *dto.ScanResultRecord
			err := utils.SafeCall(func() error {
				var err error
				record, err = s.scanSymbol(ctx, symbol, &criteria)
				return err
			})
			if err != nil {
				s.metrics.ObserveSymbol("skipped")
				s.log.WarnContext(ctx, "Skipping symbol",
					logger.StringField("symbol", symbol),
					logger.StringField("reason", err.Error()),
				)
				return nil
			}

			slots[i] = record
			if record.MeetsCriteria {
				s.metrics.ObserveSymbol("matched")
			} else {
				s.metrics.ObserveSymbol("unmatched")
			}
			return nil
		})
	}
	_ = g.Wait()

	resp := &dto.ScanResponse{Results: make([]dto.ScanResultRecord, 0, len(symbols))}
	for _, record := range slots {
		if record == nil {
			continue
		}
		resp.Results = append(resp.Results, *record)
		if record.MeetsCriteria {
			resp.Matches++
		}
	}
	resp.TotalScanned = len(resp.Results)

	s.persist(ctx, symbols, criteria, resp.Results)

	s.metrics.ObserveScan(time.Since(start))
	s.log.InfoContext(ctx, "Scan completed",
		logger.IntField("requested", len(symbols)),
		logger.IntField("scanned", resp.TotalScanned),
		logger.IntField("matches", resp.Matches),
		logger.Field("duration", time.Since(start)),
	)
	return resp, nil
}

// scanSymbol builds the record for one symbol. Any error means the symbol is skipped.
func (s *scannerService) scanSymbol(ctx context.Context, symbol string, criteria *dto.ScanCriteria) (*dto.ScanResultRecord, error) {
	history, err := s.history.GetHistory(ctx, symbol, "")
	if err != nil {
		return nil, fmt.Errorf("price history: %w", err)
	}
	closes := make([]float64, len(history))
	for i, p := range history {
		closes[i] = p.Close
	}

	quote, err := s.fundamentals.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}
	if quote.CurrentPrice <= 0 {
		return nil, fmt.Errorf("%w: price %v", errUnusableQuote, quote.CurrentPrice)
	}
	// the free tier often omits quote volume; fall back to the latest session
	var volume int64
	if quote.Volume != nil {
		volume = *quote.Volume
	} else if len(history) > 0 {
		volume = history[len(history)-1].Volume
	}
	if volume <= 0 {
		return nil, fmt.Errorf("%w: no volume", errUnusableQuote)
	}

	fundamentals, err := s.fundamentals.GetFundamentals(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fundamentals: %w", err)
	}
	ratios := ExtractMetrics(fundamentals)
	if ratios.MarketCap == nil {
		ratios.MarketCap = s.profileMarketCap(ctx, symbol)
	}

	record := &dto.ScanResultRecord{
		Symbol:         symbol,
		Price:          quote.CurrentPrice,
		Volume:         volume,
		PriceChange7d:  PriceChange7d(closes),
		PriceChange30d: PriceChange30d(closes),
		MarketCap:      ratios.MarketCap,
		ROE:            ratios.ROE,
		ROCE:           ratios.ROCE,
		DebtEquity:     ratios.DebtEquity,
		RevenueGrowth:  utils.ToPointer(RevenueGrowth(fundamentals.AnnualRevenue)),
		ForwardPE:      ratios.ForwardPE,
	}
	record.MeetsCriteria = Evaluate(record, criteria)
	roundRecord(record)
	return record, nil
}

func (s *scannerService) profileMarketCap(ctx context.Context, symbol string) *float64 {
	profile, err := s.fundamentals.GetCompanyProfile(ctx, symbol)
	if err != nil {
		s.log.DebugContext(ctx, "No profile market cap", logger.StringField("symbol", symbol), logger.ErrorField(err))
		return nil
	}
	if profile.MarketCapitalization <= 0 {
		return nil
	}
	return utils.ToPointer(profile.MarketCapitalization * marketCapUnit)
}

func roundRecord(r *dto.ScanResultRecord) {
	r.Price = utils.Round(r.Price, 2)
	r.PriceChange7d = utils.RoundPtr(r.PriceChange7d, 2)
	r.PriceChange30d = utils.RoundPtr(r.PriceChange30d, 2)
	r.MarketCap = utils.RoundPtr(r.MarketCap, 0)
	r.ROE = utils.RoundPtr(r.ROE, 2)
	r.ROCE = utils.RoundPtr(r.ROCE, 2)
	r.DebtEquity = utils.RoundPtr(r.DebtEquity, 3)
	r.RevenueGrowth = utils.RoundPtr(r.RevenueGrowth, 2)
	r.ForwardPE = utils.RoundPtr(r.ForwardPE, 2)
}

// persist stores the run and its records. Failures never reach the caller.
func (s *scannerService) persist(ctx context.Context, symbols []string, criteria dto.ScanCriteria, records []dto.ScanResultRecord) {
	if s.store == nil {
		return
	}

	run, rows, err := buildScanRun(symbols, criteria, records)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to encode scan results", logger.ErrorField(err))
		return
	}

	write := func(ctx context.Context) {
		if s.cfg.PersistTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.cfg.PersistTimeout)
			defer cancel()
		}
		if err := s.store.Append(ctx, run, rows); err != nil {
			s.log.ErrorContext(ctx, "Failed to persist scan results",
				logger.IntField("records", len(rows)), logger.ErrorField(err))
			return
		}
		s.log.DebugContext(ctx, "Persisted scan results",
			logger.Field("scan_run_id", run.ID), logger.IntField("records", len(rows)))
	}

	if s.cfg.AsyncPersist {
		detached := context.WithoutCancel(ctx)
		utils.GoSafe(s.log, func() { write(detached) })
		return
	}
	write(ctx)
}

func buildScanRun(symbols []string, criteria dto.ScanCriteria, records []dto.ScanResultRecord) (*entity.ScanRun, []entity.ScanResult, error) {
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return nil, nil, err
	}

	run := &entity.ScanRun{
		Symbols:      pq.StringArray(symbols),
		Criteria:     datatypes.JSON(criteriaJSON),
		TotalScanned: len(records),
	}
	scanDate := utils.TimeNowUTC()
	rows := make([]entity.ScanResult, 0, len(records))
	for _, r := range records {
		snapshot, err := json.Marshal(r)
		if err != nil {
			return nil, nil, err
		}
		if r.MeetsCriteria {
			run.Matches++
		}
		rows = append(rows, entity.ScanResult{
			Symbol:         r.Symbol,
			ScanDate:       scanDate,
			Price:          r.Price,
			Volume:         r.Volume,
			PriceChange7d:  r.PriceChange7d,
			PriceChange30d: r.PriceChange30d,
			MarketCap:      r.MarketCap,
			ROE:            r.ROE,
			ROCE:           r.ROCE,
			DebtEquity:     r.DebtEquity,
			RevenueGrowth:  r.RevenueGrowth,
			ForwardPE:      r.ForwardPE,
			MeetsCriteria:  r.MeetsCriteria,
			CriteriaMet:    datatypes.JSON(snapshot),
		})
	}
	return run, rows, nil
}

func (s *scannerService) ListRuns(ctx context.Context, limit int) ([]*dto.ScanRunResponse, error) {
	if s.store == nil {
		return []*dto.ScanRunResponse{}, nil
	}
	if limit <= 0 {
		limit = defaultRunsLimit
	}
	if limit > maxRunsLimit {
		limit = maxRunsLimit
	}

	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list scan runs", logger.ErrorField(err))
		return nil, err
	}

	responses := make([]*dto.ScanRunResponse, 0, len(runs))
	for i := range runs {
		responses = append(responses, mapToScanRunResponse(&runs[i]))
	}
	return responses, nil
}

func (s *scannerService) GetRun(ctx context.Context, id uint) (*dto.ScanRunResponse, error) {
	if s.store == nil {
		return nil, errors.New("scan history is not configured")
	}
	run, err := s.store.FindRun(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToScanRunResponse(run), nil
}

func (s *scannerService) ClearCache(ctx context.Context) int {
	return s.fundamentals.ClearCache(ctx)
}

func mapToScanRunResponse(run *entity.ScanRun) *dto.ScanRunResponse {
	resp := &dto.ScanRunResponse{
		ID:           run.ID,
		Symbols:      []string(run.Symbols),
		TotalScanned: run.TotalScanned,
		Matches:      run.Matches,
		CreatedAt:    run.CreatedAt,
	}
	_ = json.Unmarshal(run.Criteria, &resp.Criteria)

	for _, r := range run.Results {
		resp.Results = append(resp.Results, dto.ScanResultRecord{
			Symbol:         r.Symbol,
			Price:          r.Price,
			Volume:         r.Volume,
			PriceChange7d:  r.PriceChange7d,
			PriceChange30d: r.PriceChange30d,
			MarketCap:      r.MarketCap,
			ROE:            r.ROE,
			ROCE:           r.ROCE,
			DebtEquity:     r.DebtEquity,
			RevenueGrowth:  r.RevenueGrowth,
			ForwardPE:      r.ForwardPE,
			MeetsCriteria:  r.MeetsCriteria,
		})
	}
	return resp
}

func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
