package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OrderUseCaseInterface define a interface para o use case
type OrderUseCaseInterface interface {
	CreateOrder(ctx context.Context, userID string) (string, error)
	RemoveOrder(ctx context.Context, orderID string) error
	AddItem(ctx context.Context, orderID, itemID string) error
	RemoveItem(ctx context.Context, orderID, itemID string) error
	FindOrder(ctx context.Context, orderID string) (*Order, error)
	Checkout(ctx context.Context, orderID string) error
}

// OrderHandler contém os handlers HTTP do serviço de pedidos
type OrderHandler struct {
	useCase OrderUseCaseInterface
}

// NewOrderHandler cria uma nova instância de OrderHandler
func NewOrderHandler(useCase OrderUseCaseInterface) *OrderHandler {
	return &OrderHandler{
		useCase: useCase,
	}
}

// CreateOrder cria um pedido vazio para o usuário
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	orderID, err := h.useCase.CreateOrder(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": orderID})
}

// RemoveOrder apaga um pedido; sucesso mesmo quando o pedido não existe
func (h *OrderHandler) RemoveOrder(c *gin.Context) {
	if err := h.useCase.RemoveOrder(c.Request.Context(), c.Param("order_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// AddItem reserva uma unidade de um item no pedido
func (h *OrderHandler) AddItem(c *gin.Context) {
	err := h.useCase.AddItem(c.Request.Context(), c.Param("order_id"), c.Param("item_id"))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// RemoveItem remove uma unidade de um item do pedido
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	err := h.useCase.RemoveItem(c.Request.Context(), c.Param("order_id"), c.Param("item_id"))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrItemNotInOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// FindOrder retorna o registro completo do pedido
func (h *OrderHandler) FindOrder(c *gin.Context) {
	order, err := h.useCase.FindOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// Checkout executa a saga de fechamento do pedido
func (h *OrderHandler) Checkout(c *gin.Context) {
	err := h.useCase.Checkout(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrPaymentFailed) || errors.Is(err, ErrInsufficientStock) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// HealthCheck verifica a saúde do serviço
func (h *OrderHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "order-service",
	})
}
