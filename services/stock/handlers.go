package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// StockHandler contém os handlers HTTP do serviço de estoque
type StockHandler struct {
	useCase *StockUseCase
}

// NewStockHandler cria uma nova instância de StockHandler
func NewStockHandler(useCase *StockUseCase) *StockHandler {
	return &StockHandler{
		useCase: useCase,
	}
}

// CreateItem aloca um item novo com o preço informado
func (h *StockHandler) CreateItem(c *gin.Context) {
	price, err := strconv.ParseInt(c.Param("price"), 10, 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return
	}

	itemID, err := h.useCase.CreateItem(c.Request.Context(), price)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item_id": itemID})
}

// FindItem retorna estoque e preço de um item
func (h *StockHandler) FindItem(c *gin.Context) {
	item, err := h.useCase.FindItem(c.Request.Context(), c.Param("item_id"))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stock": item.Stock, "price": item.Price})
}

// AddStock incrementa o estoque de um item
func (h *StockHandler) AddStock(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Param("amount"), 10, 64)
	if err != nil || amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	if err := h.useCase.AddStock(c.Request.Context(), c.Param("item_id"), amount); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"done": true})
}

// SubtractStock decrementa o estoque de um item
func (h *StockHandler) SubtractStock(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Param("amount"), 10, 64)
	if err != nil || amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	if err := h.useCase.SubtractStock(c.Request.Context(), c.Param("item_id"), amount); err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrInsufficientStock) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subtract stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"done": true})
}

// HealthCheck verifica a saúde do serviço
func (h *StockHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stock-service",
	})
}
