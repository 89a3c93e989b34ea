package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// OrderRepository define as operações de store dos registros de pedido
type OrderRepository interface {
	// CreateOrder grava o registro inicial do pedido em um único write
	CreateOrder(ctx context.Context, order *Order) error

	// GetOrder busca um pedido pelo id
	GetOrder(ctx context.Context, orderID string) (*Order, error)

	// UpdateItems grava a lista de itens e o total em um único write
	UpdateItems(ctx context.Context, orderID string, items []string, totalCost int64) error

	// SetPaid grava o flag paid do pedido
	SetPaid(ctx context.Context, orderID string, paid bool) error

	// DeleteOrder remove o registro; remover um pedido inexistente não é erro
	DeleteOrder(ctx context.Context, orderID string) error
}

// RedisOrderRepository implementa OrderRepository usando hash records
type RedisOrderRepository struct {
	rdb *redis.Client
}

// NewOrderRepository cria uma nova instância de RedisOrderRepository
func NewOrderRepository(rdb *redis.Client) OrderRepository {
	return &RedisOrderRepository{
		rdb: rdb,
	}
}

// CreateOrder grava o registro inicial do pedido em um único write
func (r *RedisOrderRepository) CreateOrder(ctx context.Context, order *Order) error {
	items, err := encodeItems(order.Items)
	if err != nil {
		return err
	}

	err = r.rdb.HSet(ctx, orderKey(order.OrderID),
		fieldOrderID, order.OrderID,
		fieldUserID, order.UserID,
		fieldPaid, strconv.FormatBool(order.Paid),
		fieldItems, items,
		fieldTotalCost, order.TotalCost,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to write order record: %w", err)
	}
	return nil
}

// GetOrder busca um pedido pelo id
func (r *RedisOrderRepository) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	data, err := r.rdb.HGetAll(ctx, orderKey(orderID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read order record: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrOrderNotFound
	}

	paid, err := strconv.ParseBool(data[fieldPaid])
	if err != nil {
		return nil, fmt.Errorf("malformed paid field for order %s: %w", orderID, err)
	}
	totalCost, err := strconv.ParseInt(data[fieldTotalCost], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed total_cost field for order %s: %w", orderID, err)
	}
	items, err := decodeItems(data[fieldItems])
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", orderID, err)
	}

	return &Order{
		OrderID:   orderID,
		UserID:    data[fieldUserID],
		Paid:      paid,
		Items:     items,
		TotalCost: totalCost,
	}, nil
}

// UpdateItems grava a lista de itens e o total em um único write
func (r *RedisOrderRepository) UpdateItems(ctx context.Context, orderID string, items []string, totalCost int64) error {
	encoded, err := encodeItems(items)
	if err != nil {
		return err
	}

	err = r.rdb.HSet(ctx, orderKey(orderID), fieldItems, encoded, fieldTotalCost, totalCost).Err()
	if err != nil {
		return fmt.Errorf("failed to update order items: %w", err)
	}
	return nil
}

// SetPaid grava o flag paid do pedido
func (r *RedisOrderRepository) SetPaid(ctx context.Context, orderID string, paid bool) error {
	err := r.rdb.HSet(ctx, orderKey(orderID), fieldPaid, strconv.FormatBool(paid)).Err()
	if err != nil {
		return fmt.Errorf("failed to write paid flag: %w", err)
	}
	return nil
}

// DeleteOrder remove o registro; remover um pedido inexistente não é erro
func (r *RedisOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	if err := r.rdb.Del(ctx, orderKey(orderID)).Err(); err != nil {
		return fmt.Errorf("failed to delete order record: %w", err)
	}
	return nil
}
