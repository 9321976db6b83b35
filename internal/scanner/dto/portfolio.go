package dto

import "time"

// CreatePortfolioItemRequest is the DTO for adding a symbol to the watchlist.
type CreatePortfolioItemRequest struct {
	Symbol     string  `json:"symbol"`
	EntryPrice float64 `json:"entry_price"`
	Quantity   float64 `json:"quantity"`
	Notes      string  `json:"notes"`
}

// UpdatePortfolioItemRequest is a partial update; nil fields are left unchanged.
type UpdatePortfolioItemRequest struct {
	EntryPrice *float64 `json:"entry_price"`
	Quantity   *float64 `json:"quantity"`
	Notes      *string  `json:"notes"`
}

// PortfolioItemResponse is the DTO for API responses containing a watchlist entry.
type PortfolioItemResponse struct {
	ID         uint      `json:"id"`
	Symbol     string    `json:"symbol"`
	EntryPrice float64   `json:"entry_price"`
	Quantity   float64   `json:"quantity"`
	Notes      string    `json:"notes"`
	AddedAt    time.Time `json:"added_at"`
}
