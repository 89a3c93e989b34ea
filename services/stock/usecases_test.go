package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStockRepository simula o repositório de estoque
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) CreateItem(ctx context.Context, price int64) (string, error) {
	args := m.Called(ctx, price)
	return args.String(0), args.Error(1)
}

func (m *MockStockRepository) GetItem(ctx context.Context, itemID string) (*Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockStockRepository) AddStock(ctx context.Context, itemID string, amount int64) error {
	args := m.Called(ctx, itemID, amount)
	return args.Error(0)
}

func (m *MockStockRepository) SubtractStock(ctx context.Context, itemID string, amount int64) error {
	args := m.Called(ctx, itemID, amount)
	return args.Error(0)
}

func TestCreateItem(t *testing.T) {
	// Arrange
	mockRepo := new(MockStockRepository)
	uc := NewStockUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("CreateItem", ctx, int64(10)).Return("1", nil)

	// Act
	itemID, err := uc.CreateItem(ctx, 10)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "1", itemID)
	mockRepo.AssertExpectations(t)
}

func TestFindItem_NotFound(t *testing.T) {
	// Arrange
	mockRepo := new(MockStockRepository)
	uc := NewStockUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetItem", ctx, "42").Return(nil, ErrItemNotFound)

	// Act
	item, err := uc.FindItem(ctx, "42")

	// Assert
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Nil(t, item)
	mockRepo.AssertExpectations(t)
}

func TestFindItem(t *testing.T) {
	// Arrange
	mockRepo := new(MockStockRepository)
	uc := NewStockUseCase(mockRepo)
	ctx := context.Background()
	expected := &Item{ItemID: "7", Stock: 3, Price: 25}

	mockRepo.On("GetItem", ctx, "7").Return(expected, nil)

	// Act
	item, err := uc.FindItem(ctx, "7")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, expected, item)
	mockRepo.AssertExpectations(t)
}

func TestAddStock_ItemNotFound(t *testing.T) {
	// Arrange
	mockRepo := new(MockStockRepository)
	uc := NewStockUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("AddStock", ctx, "42", int64(5)).Return(ErrItemNotFound)

	// Act
	err := uc.AddStock(ctx, "42", 5)

	// Assert
	assert.ErrorIs(t, err, ErrItemNotFound)
	mockRepo.AssertExpectations(t)
}

func TestSubtractStock_Insufficient(t *testing.T) {
	// Arrange
	mockRepo := new(MockStockRepository)
	uc := NewStockUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("SubtractStock", ctx, "7", int64(4)).Return(ErrInsufficientStock)

	// Act
	err := uc.SubtractStock(ctx, "7", 4)

	// Assert
	assert.ErrorIs(t, err, ErrInsufficientStock)
	mockRepo.AssertExpectations(t)
}

func TestSubtractStock(t *testing.T) {
	// Arrange
	mockRepo := new(MockStockRepository)
	uc := NewStockUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("SubtractStock", ctx, "7", int64(1)).Return(nil)

	// Act
	err := uc.SubtractStock(ctx, "7", 1)

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
