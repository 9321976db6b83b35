package service

import (
	"context"
	"testing"
	"time"

	"multibagger-scanner/internal/entity"
	"multibagger-scanner/internal/scanner/dto"
	"multibagger-scanner/pkg/common"
	"multibagger-scanner/pkg/logger"
	"multibagger-scanner/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockPortfolioRepo struct {
	mock.Mock
}

func (m *mockPortfolioRepo) Create(ctx context.Context, item *entity.PortfolioItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockPortfolioRepo) FindByID(ctx context.Context, userID, id uint) (*entity.PortfolioItem, error) {
	args := m.Called(ctx, userID, id)
	item, _ := args.Get(0).(*entity.PortfolioItem)
	return item, args.Error(1)
}

func (m *mockPortfolioRepo) FindAll(ctx context.Context, userID uint) ([]entity.PortfolioItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]entity.PortfolioItem)
	return items, args.Error(1)
}

func (m *mockPortfolioRepo) Update(ctx context.Context, item *entity.PortfolioItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockPortfolioRepo) Delete(ctx context.Context, userID, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}

func TestPortfolioService_CreateNormalizesSymbol(t *testing.T) {
	repo := &mockPortfolioRepo{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(item *entity.PortfolioItem) bool {
		return item.Symbol == "NVDA" && item.UserID == common.MockUserID
	})).Run(func(args mock.Arguments) {
		item := args.Get(1).(*entity.PortfolioItem)
		item.ID = 11
		item.AddedAt = time.Now()
	}).Return(nil)

	svc := NewPortfolioService(repo, logger.NewNop())
	resp, err := svc.CreateItem(context.Background(), &dto.CreatePortfolioItemRequest{
		Symbol: " nvda ", EntryPrice: 120.5, Quantity: 3, Notes: "watch earnings",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(11), resp.ID)
	assert.Equal(t, "NVDA", resp.Symbol)
	repo.AssertExpectations(t)
}

func TestPortfolioService_CreateValidation(t *testing.T) {
	repo := &mockPortfolioRepo{}
	svc := NewPortfolioService(repo, logger.NewNop())

	tests := []struct {
		name  string
		req   dto.CreatePortfolioItemRequest
		field string
	}{
		{"missing symbol", dto.CreatePortfolioItemRequest{Symbol: " ", EntryPrice: 1}, "symbol"},
		{"zero price", dto.CreatePortfolioItemRequest{Symbol: "AAPL"}, "entry_price"},
		{"negative quantity", dto.CreatePortfolioItemRequest{Symbol: "AAPL", EntryPrice: 1, Quantity: -1}, "quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateItem(context.Background(), &tt.req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPortfolioService_PartialUpdate(t *testing.T) {
	repo := &mockPortfolioRepo{}
	existing := &entity.PortfolioItem{ID: 4, UserID: 1, Symbol: "AAPL", EntryPrice: 150, Quantity: 10, Notes: "core"}
	repo.On("FindByID", mock.Anything, common.MockUserID, uint(4)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	svc := NewPortfolioService(repo, logger.NewNop())
	resp, err := svc.UpdateItem(context.Background(), 4, &dto.UpdatePortfolioItemRequest{Notes: utils.ToPointer("trim on spike")})
	require.NoError(t, err)

	assert.Equal(t, "trim on spike", resp.Notes)
	assert.Equal(t, 150.0, resp.EntryPrice)
	assert.Equal(t, 10.0, resp.Quantity)
}

func TestPortfolioService_NotFoundPassesThrough(t *testing.T) {
	repo := &mockPortfolioRepo{}
	repo.On("FindByID", mock.Anything, common.MockUserID, uint(9)).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Delete", mock.Anything, common.MockUserID, uint(9)).Return(gorm.ErrRecordNotFound)

	svc := NewPortfolioService(repo, logger.NewNop())
	_, err := svc.GetItemByID(context.Background(), 9)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = svc.UpdateItem(context.Background(), 9, &dto.UpdatePortfolioItemRequest{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, svc.DeleteItem(context.Background(), 9), gorm.ErrRecordNotFound)
}

func TestPortfolioService_GetAllItems(t *testing.T) {
	repo := &mockPortfolioRepo{}
	repo.On("FindAll", mock.Anything, common.MockUserID).Return([]entity.PortfolioItem{
		{ID: 1, Symbol: "AAPL", EntryPrice: 150},
		{ID: 2, Symbol: "MSFT", EntryPrice: 300},
	}, nil)

	items, err := NewPortfolioService(repo, logger.NewNop()).GetAllItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "MSFT", items[1].Symbol)
}
