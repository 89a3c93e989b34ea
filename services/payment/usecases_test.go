package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPaymentRepository simula o repositório de pagamentos
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreateUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentRepository) GetUser(ctx context.Context, userID string) (*User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockPaymentRepository) AddCredit(ctx context.Context, userID string, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeductCredit(ctx context.Context, userID string, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetOrderPayment(ctx context.Context, orderID string) (*OrderPayment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OrderPayment), args.Error(1)
}

func (m *MockPaymentRepository) SetOrderPaid(ctx context.Context, orderID string, paid bool) error {
	args := m.Called(ctx, orderID, paid)
	return args.Error(0)
}

func TestPay(t *testing.T) {
	// Arrange
	mockRepo := new(MockPaymentRepository)
	uc := NewPaymentUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("DeductCredit", ctx, "1", int64(20)).Return(nil)
	mockRepo.On("SetOrderPaid", ctx, "order-123", true).Return(nil)

	// Act
	err := uc.Pay(ctx, "1", "order-123", 20)

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestPay_InsufficientCredit(t *testing.T) {
	// Arrange
	mockRepo := new(MockPaymentRepository)
	uc := NewPaymentUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("DeductCredit", ctx, "1", int64(500)).Return(ErrInsufficientCredit)

	// Act
	err := uc.Pay(ctx, "1", "order-123", 500)

	// Assert
	assert.ErrorIs(t, err, ErrInsufficientCredit)
	// The paid flag must not be touched when the charge is rejected.
	mockRepo.AssertNotCalled(t, "SetOrderPaid", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestPay_UserNotFound(t *testing.T) {
	// Arrange
	mockRepo := new(MockPaymentRepository)
	uc := NewPaymentUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("DeductCredit", ctx, "99", int64(20)).Return(ErrUserNotFound)

	// Act
	err := uc.Pay(ctx, "99", "order-123", 20)

	// Assert
	assert.ErrorIs(t, err, ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}

func TestCancelPayment(t *testing.T) {
	// Arrange
	mockRepo := new(MockPaymentRepository)
	uc := NewPaymentUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetOrderPayment", ctx, "order-123").Return(&OrderPayment{Paid: true, TotalCost: 20}, nil)
	mockRepo.On("SetOrderPaid", ctx, "order-123", false).Return(nil)
	mockRepo.On("AddCredit", ctx, "1", int64(20)).Return(nil)

	// Act
	err := uc.CancelPayment(ctx, "1", "order-123")

	// Assert
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCancelPayment_AlreadyCancelled(t *testing.T) {
	// Arrange
	mockRepo := new(MockPaymentRepository)
	uc := NewPaymentUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetOrderPayment", ctx, "order-123").Return(&OrderPayment{Paid: false, TotalCost: 20}, nil)

	// Act
	err := uc.CancelPayment(ctx, "1", "order-123")

	// Assert
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	mockRepo.AssertNotCalled(t, "AddCredit", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestCancelPayment_OrderNotFound(t *testing.T) {
	// Arrange
	mockRepo := new(MockPaymentRepository)
	uc := NewPaymentUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetOrderPayment", ctx, "missing").Return(nil, ErrOrderNotFound)

	// Act
	err := uc.CancelPayment(ctx, "1", "missing")

	// Assert
	assert.ErrorIs(t, err, ErrOrderNotFound)
	mockRepo.AssertExpectations(t)
}

func TestPaymentStatus(t *testing.T) {
	// Arrange
	mockRepo := new(MockPaymentRepository)
	uc := NewPaymentUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetOrderPayment", ctx, "order-123").Return(&OrderPayment{Paid: true, TotalCost: 20}, nil)

	// Act
	paid, err := uc.PaymentStatus(ctx, "order-123")

	// Assert
	assert.NoError(t, err)
	assert.True(t, paid)
	mockRepo.AssertExpectations(t)
}

func TestAddFunds_UserNotFound(t *testing.T) {
	// Arrange
	mockRepo := new(MockPaymentRepository)
	uc := NewPaymentUseCase(mockRepo)
	ctx := context.Background()

	mockRepo.On("AddCredit", ctx, "99", int64(100)).Return(ErrUserNotFound)

	// Act
	err := uc.AddFunds(ctx, "99", 100)

	// Assert
	assert.ErrorIs(t, err, ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}
