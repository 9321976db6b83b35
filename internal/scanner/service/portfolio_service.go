package service

import (
	"context"
	"strings"

	"multibagger-scanner/internal/entity"
	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/internal/scanner/repository"
	"multibagger-scanner/pkg/common"
	"multibagger-scanner/pkg/logger"
)

// PortfolioService defines the interface for managing the watchlist.
type PortfolioService interface {
	CreateItem(ctx context.Context, req *dto.CreatePortfolioItemRequest) (*dto.PortfolioItemResponse, error)
	GetItemByID(ctx context.Context, id uint) (*dto.PortfolioItemResponse, error)
	GetAllItems(ctx context.Context) ([]*dto.PortfolioItemResponse, error)
	UpdateItem(ctx context.Context, id uint, req *dto.UpdatePortfolioItemRequest) (*dto.PortfolioItemResponse, error)
	DeleteItem(ctx context.Context, id uint) error
}

// NewPortfolioService creates a new portfolio service.
func NewPortfolioService(portfolioRepo repository.PortfolioRepository, logger *logger.Logger) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		logger:        logger,
	}
}

type portfolioService struct {
	portfolioRepo repository.PortfolioRepository
	logger        *logger.Logger
}

// CreateItem adds a symbol to the watchlist of the current user.
func (s *portfolioService) CreateItem(ctx context.Context, req *dto.CreatePortfolioItemRequest) (*dto.PortfolioItemResponse, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, newValidationError("symbol", "is required")
	}
	if req.EntryPrice <= 0 {
		return nil, newValidationError("entry_price", "must be positive")
	}
	if req.Quantity < 0 {
		return nil, newValidationError("quantity", "must not be negative")
	}

	item := &entity.PortfolioItem{
		UserID:     common.MockUserID,
		Symbol:     symbol,
		EntryPrice: req.EntryPrice,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	}
	if err := s.portfolioRepo.Create(ctx, item); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create portfolio item", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Portfolio item created", logger.Field("item_id", item.ID), logger.StringField("symbol", symbol))
	return mapToPortfolioItemResponse(item), nil
}

func (s *portfolioService) GetItemByID(ctx context.Context, id uint) (*dto.PortfolioItemResponse, error) {
	item, err := s.portfolioRepo.FindByID(ctx, common.MockUserID, id)
	if err != nil {
		return nil, err
	}
	return mapToPortfolioItemResponse(item), nil
}

func (s *portfolioService) GetAllItems(ctx context.Context) ([]*dto.PortfolioItemResponse, error) {
	items, err := s.portfolioRepo.FindAll(ctx, common.MockUserID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PortfolioItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, mapToPortfolioItemResponse(&items[i]))
	}
	return responses, nil
}

// UpdateItem applies a partial update; the symbol itself cannot change.
func (s *portfolioService) UpdateItem(ctx context.Context, id uint, req *dto.UpdatePortfolioItemRequest) (*dto.PortfolioItemResponse, error) {
	item, err := s.portfolioRepo.FindByID(ctx, common.MockUserID, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to find portfolio item for update", logger.ErrorField(err), logger.Field("item_id", id))
		return nil, err
	}

	if req.EntryPrice != nil {
		if *req.EntryPrice <= 0 {
			return nil, newValidationError("entry_price", "must be positive")
		}
		item.EntryPrice = *req.EntryPrice
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, newValidationError("quantity", "must not be negative")
		}
		item.Quantity = *req.Quantity
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}

	if err := s.portfolioRepo.Update(ctx, item); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update portfolio item", logger.ErrorField(err), logger.Field("item_id", id))
		return nil, err
	}
	return mapToPortfolioItemResponse(item), nil
}

func (s *portfolioService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.portfolioRepo.Delete(ctx, common.MockUserID, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete portfolio item", logger.ErrorField(err), logger.Field("item_id", id))
		return err
	}
	s.logger.InfoContext(ctx, "Portfolio item deleted", logger.Field("item_id", id))
	return nil
}

func mapToPortfolioItemResponse(item *entity.PortfolioItem) *dto.PortfolioItemResponse {
	return &dto.PortfolioItemResponse{
		ID:         item.ID,
		Symbol:     item.Symbol,
		EntryPrice: item.EntryPrice,
		Quantity:   item.Quantity,
		Notes:      item.Notes,
		AddedAt:    item.AddedAt,
	}
}
