package repository

import (
	"context"

	"multibagger-scanner/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 100

// ScanResultRepository is the append-only store of scans and their per-symbol results.
type ScanResultRepository interface {
	// Append writes the run and all of its results in one transaction.
	Append(ctx context.Context, run *entity.ScanRun, results []entity.ScanResult) error
	ListRuns(ctx context.Context, limit int) ([]entity.ScanRun, error)
	FindRun(ctx context.Context, id uint) (*entity.ScanRun, error)
}

// NewScanResultRepository creates a new GORM-based scan result repository.
func NewScanResultRepository(db *gorm.DB) ScanResultRepository {
	return &scanResultRepository{db: db}
}

type scanResultRepository struct {
	db *gorm.DB
}

func (r *scanResultRepository) Append(ctx context.Context, run *entity.ScanRun, results []entity.ScanResult) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(run).Error; err != nil {
			return err
		}
		if len(results) == 0 {
			return nil
		}
		for i := range results {
			results[i].ScanRunID = run.ID
		}
		return tx.CreateInBatches(results, insertBatchSize).Error
	})
}

// ListRuns returns the most recent runs without their results.
func (r *scanResultRepository) ListRuns(ctx context.Context, limit int) ([]entity.ScanRun, error) {
	var runs []entity.ScanRun
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// FindRun retrieves a run with its results in insertion order.
func (r *scanResultRepository) FindRun(ctx context.Context, id uint) (*entity.ScanRun, error) {
	var run entity.ScanRun
	err := r.db.WithContext(ctx).
		Preload("Results", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&run, id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}
