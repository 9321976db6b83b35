package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"multibagger-scanner/internal/entity"
	"multibagger-scanner/pkg/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func sampleResults(now time.Time) []entity.ScanResult {
	return []entity.ScanResult{
		{
			Symbol:         "AAPL",
			ScanDate:       now,
			Price:          189.5,
			Volume:         52000000,
			PriceChange7d:  utils.ToPointer(5.83),
			PriceChange30d: utils.ToPointer(-1.25),
			MarketCap:      utils.ToPointer(2950000000000.0),
			ROE:            utils.ToPointer(147.25),
			ROCE:           utils.ToPointer(55.1),
			DebtEquity:     utils.ToPointer(1.87),
			RevenueGrowth:  utils.ToPointer(2.02),
			ForwardPE:      utils.ToPointer(29.4),
			MeetsCriteria:  true,
			CriteriaMet:    datatypes.JSON(`{"roe":147.25,"debt_equity":1.87}`),
		},
		{
			Symbol:        "MSFT",
			ScanDate:      now,
			Price:         410.12,
			Volume:        21000000,
			MeetsCriteria: false,
			CriteriaMet:   datatypes.JSON(`{"roe":null}`),
		},
	}
}

func TestScanResultRepository_AppendAndReadBack(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewScanResultRepository(db)
	ctx := context.Background()
	now := utils.TimeNowUTC()

	run := &entity.ScanRun{
		Symbols:      pq.StringArray{"AAPL", "MSFT"},
		Criteria:     datatypes.JSON(`{"minROE":15}`),
		TotalScanned: 2,
		Matches:      1,
	}
	written := sampleResults(now)
	require.NoError(t, repo.Append(ctx, run, written))
	require.NotZero(t, run.ID)

	got, err := repo.FindRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, []string(got.Symbols))
	assert.JSONEq(t, `{"minROE":15}`, string(got.Criteria))
	require.Len(t, got.Results, 2)

	for i, want := range written {
		have := got.Results[i]
		assert.Equal(t, run.ID, have.ScanRunID)
		assert.Equal(t, want.Symbol, have.Symbol)
		assert.Equal(t, want.Price, have.Price)
		assert.Equal(t, want.Volume, have.Volume)
		assert.Equal(t, want.PriceChange7d, have.PriceChange7d)
		assert.Equal(t, want.PriceChange30d, have.PriceChange30d)
		assert.Equal(t, want.MarketCap, have.MarketCap)
		assert.Equal(t, want.ROE, have.ROE)
		assert.Equal(t, want.ROCE, have.ROCE)
		assert.Equal(t, want.DebtEquity, have.DebtEquity)
		assert.Equal(t, want.RevenueGrowth, have.RevenueGrowth)
		assert.Equal(t, want.ForwardPE, have.ForwardPE)
		assert.Equal(t, want.MeetsCriteria, have.MeetsCriteria)
		assert.JSONEq(t, string(want.CriteriaMet), string(have.CriteriaMet))
		assert.WithinDuration(t, now, have.ScanDate, time.Second)
	}
}

func TestScanResultRepository_ListRuns(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewScanResultRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		run := &entity.ScanRun{Symbols: pq.StringArray{"AAPL"}, Criteria: datatypes.JSON(`{}`)}
		require.NoError(t, repo.Append(ctx, run, nil))
	}

	runs, err := repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Greater(t, runs[0].ID, runs[1].ID)
	assert.Empty(t, runs[0].Results)
}

func TestScanResultRepository_FindRunMissing(t *testing.T) {
	repo := NewScanResultRepository(newSQLiteDB(t))

	_, err := repo.FindRun(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestScanResultRepository_AppendRollsBackOnFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "scan_runs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "scan_results"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	repo := NewScanResultRepository(db)
	run := &entity.ScanRun{Symbols: pq.StringArray{"AAPL", "MSFT"}, Criteria: datatypes.JSON(`{}`)}
	err = repo.Append(context.Background(), run, sampleResults(time.Now()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}
