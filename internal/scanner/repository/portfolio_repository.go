package repository

import (
	"context"

	"multibagger-scanner/internal/entity"

	"gorm.io/gorm"
)

// PortfolioRepository defines the interface for watchlist data operations. Every query is scoped to one user.
type PortfolioRepository interface {
	Create(ctx context.Context, item *entity.PortfolioItem) error
	FindByID(ctx context.Context, userID, id uint) (*entity.PortfolioItem, error)
	FindAll(ctx context.Context, userID uint) ([]entity.PortfolioItem, error)
	Update(ctx context.Context, item *entity.PortfolioItem) error
	Delete(ctx context.Context, userID, id uint) error
}

// NewPortfolioRepository creates a new GORM-based portfolio repository.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

type portfolioRepository struct {
	db *gorm.DB
}

func (r *portfolioRepository) Create(ctx context.Context, item *entity.PortfolioItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *portfolioRepository) FindByID(ctx context.Context, userID, id uint) (*entity.PortfolioItem, error) {
	var item entity.PortfolioItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *portfolioRepository) FindAll(ctx context.Context, userID uint) ([]entity.PortfolioItem, error) {
	var items []entity.PortfolioItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("added_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *portfolioRepository) Update(ctx context.Context, item *entity.PortfolioItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an item, returning gorm.ErrRecordNotFound when nothing matched.
func (r *portfolioRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.PortfolioItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
