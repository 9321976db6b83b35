package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"multibagger-scanner/internal/scanner/config"
	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/internal/scanner/service"
	"multibagger-scanner/pkg/logger"
	"multibagger-scanner/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubScanner struct {
	lastReq *dto.ScanRequest
	lastLim int
}

func (s *stubScanner) Scan(_ context.Context, req *dto.ScanRequest) (*dto.ScanResponse, error) {
	s.lastReq = req
	if len(req.Symbols) == 0 {
		return nil, &service.ValidationError{Field: "symbols", Message: "at least one symbol is required"}
	}
	return &dto.ScanResponse{
		TotalScanned: 1,
		Matches:      1,
		Results: []dto.ScanResultRecord{{
			Symbol: "AAPL", Price: 189.5, Volume: 1000, ROE: utils.ToPointer(20.0), MeetsCriteria: true,
		}},
	}, nil
}

func (s *stubScanner) ListRuns(_ context.Context, limit int) ([]*dto.ScanRunResponse, error) {
	s.lastLim = limit
	return []*dto.ScanRunResponse{{ID: 1, Symbols: []string{"AAPL"}}}, nil
}

func (s *stubScanner) GetRun(_ context.Context, id uint) (*dto.ScanRunResponse, error) {
	if id != 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return &dto.ScanRunResponse{ID: 1}, nil
}

func (s *stubScanner) ClearCache(context.Context) int { return 4 }

func newScanServer(stub *stubScanner) *echo.Echo {
	e := echo.New()
	NewScanHandler(stub, logger.NewNop()).RegisterRoutes(e.Group("/api/v1"))
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestScanHandler_Scan(t *testing.T) {
	stub := &stubScanner{}
	e := newScanServer(stub)

	rec := doRequest(e, http.MethodPost, "/api/v1/scan",
		`{"symbols":["AAPL"],"minVolume":1000000,"maxDebtEquity":0.5,"minROE":15}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, stub.lastReq)
	assert.Equal(t, []string{"AAPL"}, stub.lastReq.Symbols)
	assert.Equal(t, 1_000_000.0, *stub.lastReq.MinVolume)
	assert.Equal(t, 0.5, *stub.lastReq.MaxDebtToEquity)
	assert.Equal(t, 15.0, *stub.lastReq.MinROE)
	assert.Nil(t, stub.lastReq.MaxForwardPE)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["totalScanned"])
	assert.EqualValues(t, 1, body["matches"])
	result := body["results"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "AAPL", result["symbol"])
	assert.Equal(t, true, result["meets_criteria"])
	assert.Contains(t, result, "debt_equity")
	assert.Nil(t, result["debt_equity"])
}

func TestScanHandler_ScanRejectsBadInput(t *testing.T) {
	e := newScanServer(&stubScanner{})

	rec := doRequest(e, http.MethodPost, "/api/v1/scan", `{"symbols":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "symbols")

	rec = doRequest(e, http.MethodPost, "/api/v1/scan", `{"symbols":"AAPL"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanHandler_History(t *testing.T) {
	stub := &stubScanner{}
	e := newScanServer(stub)

	rec := doRequest(e, http.MethodGet, "/api/v1/scans?limit=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, stub.lastLim)

	for _, bad := range []string{"abc", "0", "-3"} {
		stub.lastLim = 99
		rec = doRequest(e, http.MethodGet, "/api/v1/scans?limit="+bad, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", bad)
		assert.Equal(t, 99, stub.lastLim, "limit=%s reached the service", bad)
	}

	rec = doRequest(e, http.MethodGet, "/api/v1/scans", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, stub.lastLim)

	rec = doRequest(e, http.MethodGet, "/api/v1/scans/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/scans/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/scans/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanHandler_ClearCache(t *testing.T) {
	e := newScanServer(&stubScanner{})

	rec := doRequest(e, http.MethodDelete, "/api/v1/cache", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":4}`, rec.Body.String())
}

type stubPortfolio struct {
	items map[uint]*dto.PortfolioItemResponse
}

func (s *stubPortfolio) CreateItem(_ context.Context, req *dto.CreatePortfolioItemRequest) (*dto.PortfolioItemResponse, error) {
	if req.Symbol == "" {
		return nil, &service.ValidationError{Field: "symbol", Message: "is required"}
	}
	item := &dto.PortfolioItemResponse{ID: uint(len(s.items) + 1), Symbol: req.Symbol, EntryPrice: req.EntryPrice}
	s.items[item.ID] = item
	return item, nil
}

func (s *stubPortfolio) GetItemByID(_ context.Context, id uint) (*dto.PortfolioItemResponse, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubPortfolio) GetAllItems(context.Context) ([]*dto.PortfolioItemResponse, error) {
	out := make([]*dto.PortfolioItemResponse, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

func (s *stubPortfolio) UpdateItem(ctx context.Context, id uint, req *dto.UpdatePortfolioItemRequest) (*dto.PortfolioItemResponse, error) {
	item, err := s.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	return item, nil
}

func (s *stubPortfolio) DeleteItem(_ context.Context, id uint) error {
	if _, ok := s.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.items, id)
	return nil
}

func TestPortfolioHandler_CRUD(t *testing.T) {
	e := echo.New()
	NewPortfolioHandler(&stubPortfolio{items: map[uint]*dto.PortfolioItemResponse{}}, logger.NewNop()).
		RegisterRoutes(e.Group("/api/v1/portfolio"))

	rec := doRequest(e, http.MethodPost, "/api/v1/portfolio", `{"symbol":"AAPL","entry_price":150}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/v1/portfolio", `{"entry_price":150}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/portfolio", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodPut, "/api/v1/portfolio/1", `{"notes":"hold"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"notes":"hold"`)

	rec = doRequest(e, http.MethodDelete, "/api/v1/portfolio/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/portfolio/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/api/v1/portfolio/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Version = "1.2.3"
	cfg.Cache.Driver = "redis"

	e := echo.New()
	NewHealthHandler(cfg, map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
	}).RegisterRoutes(e)

	rec := doRequest(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","version":"1.2.3","checks":{"database":"connected","redis":"unreachable"}}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cache_driver":"redis"`)
	assert.NotContains(t, rec.Body.String(), "api_key")
}
