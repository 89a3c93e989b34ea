package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// StockClient é a porta de saída para o ledger de estoque
type StockClient interface {
	GetItemPrice(ctx context.Context, itemID string) (int64, error)
	SubtractStock(ctx context.Context, itemID string, amount int64) error
	AddStock(ctx context.Context, itemID string, amount int64) error
}

// PaymentClient é a porta de saída para o ledger de crédito
type PaymentClient interface {
	Pay(ctx context.Context, userID, orderID string, amount int64) error
	CancelPayment(ctx context.Context, userID, orderID string) error
}

// downstreamBaseURLs resolves the stock and payment base URLs once at
// startup: a gateway URL takes precedence over direct service URLs.
func downstreamBaseURLs() (stockURL, paymentURL string) {
	if gw := os.Getenv("GATEWAY_URL"); gw != "" {
		return gw + "/stock", gw + "/payment"
	}
	return getEnv("STOCK_SERVICE_URL", "http://stock-service:8080"),
		getEnv("PAYMENT_SERVICE_URL", "http://payment-service:8080")
}

type restyStockClient struct {
	client *resty.Client
}

// NewStockClient cria um client HTTP para o serviço de estoque
func NewStockClient(baseURL string) StockClient {
	return &restyStockClient{
		client: resty.New().SetBaseURL(baseURL),
	}
}

// GetItemPrice busca o preço atual de um item
func (c *restyStockClient) GetItemPrice(ctx context.Context, itemID string) (int64, error) {
	var out struct {
		Price int64 `json:"price"`
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/find/" + itemID)
	if err != nil {
		return 0, fmt.Errorf("stock service unavailable: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, ErrItemNotFound
	}
	return out.Price, nil
}

// SubtractStock reserva unidades físicas de um item
func (c *restyStockClient) SubtractStock(ctx context.Context, itemID string, amount int64) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Post("/subtract/" + itemID + "/" + strconv.FormatInt(amount, 10))
	if err != nil {
		return fmt.Errorf("stock service unavailable: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: item %s", ErrInsufficientStock, itemID)
	}
	return nil
}

// AddStock devolve unidades físicas de um item
func (c *restyStockClient) AddStock(ctx context.Context, itemID string, amount int64) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Post("/add/" + itemID + "/" + strconv.FormatInt(amount, 10))
	if err != nil {
		return fmt.Errorf("stock service unavailable: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("failed to re-add stock for item %s: status %d", itemID, resp.StatusCode())
	}
	return nil
}

type restyPaymentClient struct {
	client *resty.Client
}

// NewPaymentClient cria um client HTTP para o serviço de pagamento
func NewPaymentClient(baseURL string) PaymentClient {
	return &restyPaymentClient{
		client: resty.New().SetBaseURL(baseURL),
	}
}

// Pay cobra o valor do pedido do crédito do usuário
func (c *restyPaymentClient) Pay(ctx context.Context, userID, orderID string, amount int64) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Post("/pay/" + userID + "/" + orderID + "/" + strconv.FormatInt(amount, 10))
	if err != nil {
		return fmt.Errorf("payment service unavailable: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrPaymentFailed, resp.String())
	}
	return nil
}

// CancelPayment desfaz a cobrança de um pedido
func (c *restyPaymentClient) CancelPayment(ctx context.Context, userID, orderID string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Post("/cancel/" + userID + "/" + orderID)
	if err != nil {
		return fmt.Errorf("payment service unavailable: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("failed to cancel payment for order %s: %s", orderID, resp.String())
	}
	return nil
}
