package repository

import (
	"testing"

	"multibagger-scanner/internal/entity"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newSQLiteDB opens an in-memory database with the scanner tables.
// scan_runs is created by hand because sqlite has no array type.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec(`CREATE TABLE scan_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbols TEXT,
		criteria TEXT,
		total_scanned INTEGER NOT NULL DEFAULT 0,
		matches INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME
	)`).Error)
	require.NoError(t, db.AutoMigrate(&entity.ScanResult{}, &entity.PortfolioItem{}))
	return db
}
