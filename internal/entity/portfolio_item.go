package entity

import "time"

type PortfolioItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Symbol     string    `gorm:"not null" json:"symbol"`
	EntryPrice float64   `gorm:"not null" json:"entry_price"`
	Quantity   float64   `gorm:"not null;default:0" json:"quantity"`
	Notes      string    `json:"notes"`
	AddedAt    time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (PortfolioItem) TableName() string {
	return "portfolio_items"
}
