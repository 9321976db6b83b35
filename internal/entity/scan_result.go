package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ScanRun is one invocation of the scanner. Its rows in scan_results commit together.
type ScanRun struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Symbols      pq.StringArray `gorm:"type:text[]" json:"symbols"`
	Criteria     datatypes.JSON `gorm:"type:jsonb" json:"criteria"`
	TotalScanned int            `gorm:"not null" json:"total_scanned"`
	Matches      int            `gorm:"not null" json:"matches"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	Results      []ScanResult   `gorm:"foreignKey:ScanRunID" json:"results,omitempty"`
}

func (ScanRun) TableName() string {
	return "scan_runs"
}

// ScanResult is the immutable outcome for one symbol in one scan.
type ScanResult struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ScanRunID      uint           `gorm:"not null;index" json:"scan_run_id"`
	Symbol         string         `gorm:"not null;index" json:"symbol"`
	ScanDate       time.Time      `gorm:"not null" json:"scan_date"`
	Price          float64        `gorm:"not null" json:"price"`
	Volume         int64          `gorm:"not null" json:"volume"`
	PriceChange7d  *float64       `gorm:"column:price_change_7d" json:"price_change_7d"`
	PriceChange30d *float64       `gorm:"column:price_change_30d" json:"price_change_30d"`
	MarketCap      *float64       `json:"market_cap"`
	ROE            *float64       `gorm:"column:roe" json:"roe"`
	ROCE           *float64       `gorm:"column:roce" json:"roce"`
	DebtEquity     *float64       `json:"debt_equity"`
	RevenueGrowth  *float64       `json:"revenue_growth"`
	ForwardPE      *float64       `gorm:"column:forward_pe" json:"forward_pe"`
	MeetsCriteria  bool           `gorm:"not null" json:"meets_criteria"`
	CriteriaMet    datatypes.JSON `gorm:"type:jsonb" json:"criteria_met"`
}

func (ScanResult) TableName() string {
	return "scan_results"
}
