package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaymentHandler contém os handlers HTTP do serviço de pagamento
type PaymentHandler struct {
	useCase *PaymentUseCase
}

// NewPaymentHandler cria uma nova instância de PaymentHandler
func NewPaymentHandler(useCase *PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		useCase: useCase,
	}
}

// CreateUser cria um usuário novo
func (h *PaymentHandler) CreateUser(c *gin.Context) {
	userID, err := h.useCase.CreateUser(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID})
}

// FindUser retorna id e crédito de um usuário
func (h *PaymentHandler) FindUser(c *gin.Context) {
	user, err := h.useCase.FindUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": user.UserID, "credit": user.Credit})
}

// AddFunds incrementa o crédito de um usuário
func (h *PaymentHandler) AddFunds(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Param("amount"), 10, 64)
	if err != nil || amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	if err := h.useCase.AddFunds(c.Request.Context(), c.Param("user_id"), amount); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add funds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"done": true})
}

// Pay debita o crédito do usuário e marca o pedido como pago
func (h *PaymentHandler) Pay(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Param("amount"), 10, 64)
	if err != nil || amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	err = h.useCase.Pay(c.Request.Context(), c.Param("user_id"), c.Param("order_id"), amount)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInsufficientCredit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// CancelPayment desfaz um pagamento e devolve o crédito
func (h *PaymentHandler) CancelPayment(c *gin.Context) {
	err := h.useCase.CancelPayment(c.Request.Context(), c.Param("user_id"), c.Param("order_id"))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrAlreadyCancelled) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// PaymentStatus retorna o flag paid de um pedido
func (h *PaymentHandler) PaymentStatus(c *gin.Context) {
	paid, err := h.useCase.PaymentStatus(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read payment status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paid": paid})
}

// HealthCheck verifica a saúde do serviço
func (h *PaymentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "payment-service",
	})
}
