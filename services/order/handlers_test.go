package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderUseCase simula o use case de pedidos
type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) CreateOrder(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockOrderUseCase) RemoveOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderUseCase) AddItem(ctx context.Context, orderID, itemID string) error {
	args := m.Called(ctx, orderID, itemID)
	return args.Error(0)
}

func (m *MockOrderUseCase) RemoveItem(ctx context.Context, orderID, itemID string) error {
	args := m.Called(ctx, orderID, itemID)
	return args.Error(0)
}

func (m *MockOrderUseCase) FindOrder(ctx context.Context, orderID string) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockOrderUseCase) Checkout(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func newTestRouter(useCase OrderUseCaseInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewOrderHandler(useCase)

	r := gin.New()
	r.POST("/create/:user_id", handler.CreateOrder)
	r.DELETE("/remove/:order_id", handler.RemoveOrder)
	r.POST("/addItem/:order_id/:item_id", handler.AddItem)
	r.DELETE("/removeItem/:order_id/:item_id", handler.RemoveItem)
	r.GET("/find/:order_id", handler.FindOrder)
	r.POST("/checkout/:order_id", handler.Checkout)
	return r
}

func TestCreateOrderHandler(t *testing.T) {
	// Arrange
	mockUC := new(MockOrderUseCase)
	mockUC.On("CreateOrder", mock.Anything, "1").Return("abc-123", nil)
	r := newTestRouter(mockUC)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create/1", nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"order_id":"abc-123"}`, w.Body.String())
	mockUC.AssertExpectations(t)
}

func TestRemoveOrderHandler(t *testing.T) {
	// Arrange
	mockUC := new(MockOrderUseCase)
	mockUC.On("RemoveOrder", mock.Anything, "abc-123").Return(nil)
	r := newTestRouter(mockUC)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/remove/abc-123", nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success"}`, w.Body.String())
}

func TestAddItemHandler_ItemNotFound(t *testing.T) {
	// Arrange
	mockUC := new(MockOrderUseCase)
	mockUC.On("AddItem", mock.Anything, "abc-123", "99").Return(ErrItemNotFound)
	r := newTestRouter(mockUC)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/addItem/abc-123/99", nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "item not found")
}

func TestRemoveItemHandler_NotInOrder(t *testing.T) {
	// Arrange
	mockUC := new(MockOrderUseCase)
	mockUC.On("RemoveItem", mock.Anything, "abc-123", "7").Return(ErrItemNotInOrder)
	r := newTestRouter(mockUC)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/removeItem/abc-123/7", nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "item not in order")
}

func TestFindOrderHandler(t *testing.T) {
	// Arrange
	order := &Order{
		OrderID:   "abc-123",
		UserID:    "1",
		Paid:      false,
		Items:     []string{"7", "7"},
		TotalCost: 20,
	}
	mockUC := new(MockOrderUseCase)
	mockUC.On("FindOrder", mock.Anything, "abc-123").Return(order, nil)
	r := newTestRouter(mockUC)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/find/abc-123", nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"order_id":"abc-123","user_id":"1","paid":false,"items":["7","7"],"total_cost":20}`, w.Body.String())
}

func TestFindOrderHandler_NotFound(t *testing.T) {
	// Arrange
	mockUC := new(MockOrderUseCase)
	mockUC.On("FindOrder", mock.Anything, "missing").Return(nil, ErrOrderNotFound)
	r := newTestRouter(mockUC)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/find/missing", nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutHandler(t *testing.T) {
	// Arrange
	mockUC := new(MockOrderUseCase)
	mockUC.On("Checkout", mock.Anything, "abc-123").Return(nil)
	r := newTestRouter(mockUC)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout/abc-123", nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success"}`, w.Body.String())
	mockUC.AssertExpectations(t)
}

func TestCheckoutHandler_InsufficientStock(t *testing.T) {
	// Arrange
	mockUC := new(MockOrderUseCase)
	mockUC.On("Checkout", mock.Anything, "abc-123").Return(ErrInsufficientStock)
	r := newTestRouter(mockUC)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout/abc-123", nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient stock")
}

func TestCheckoutHandler_DownstreamUnavailable(t *testing.T) {
	// Arrange: a transport failure is not a business rejection
	mockUC := new(MockOrderUseCase)
	mockUC.On("Checkout", mock.Anything, "abc-123").Return(assert.AnError)
	r := newTestRouter(mockUC)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout/abc-123", nil)
	r.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
