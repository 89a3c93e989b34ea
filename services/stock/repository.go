package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// StockRepository define as operações de store do ledger de estoque
type StockRepository interface {
	// CreateItem aloca um id sequencial e grava o registro inicial
	CreateItem(ctx context.Context, price int64) (string, error)

	// GetItem busca um item pelo id
	GetItem(ctx context.Context, itemID string) (*Item, error)

	// AddStock incrementa o estoque atomicamente
	AddStock(ctx context.Context, itemID string, amount int64) error

	// SubtractStock decrementa o estoque se houver saldo suficiente
	SubtractStock(ctx context.Context, itemID string, amount int64) error
}

// RedisStockRepository implementa StockRepository usando hash records
type RedisStockRepository struct {
	rdb *redis.Client
}

// NewStockRepository cria uma nova instância de RedisStockRepository
func NewStockRepository(rdb *redis.Client) StockRepository {
	return &RedisStockRepository{
		rdb: rdb,
	}
}

// subtractStockScript runs the exists/balance check and the decrement as one
// atomic server-side step, so two concurrent subtracts cannot both pass the
// check before either decrements.
// Returns -2 when the item is missing, -1 on insufficient stock, otherwise
// the new stock value.
var subtractStockScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -2
end
local stock = tonumber(redis.call("HGET", KEYS[1], "stock"))
local amount = tonumber(ARGV[1])
if stock < amount then
	return -1
end
return redis.call("HINCRBY", KEYS[1], "stock", -amount)
`)

// CreateItem aloca um id sequencial e inicializa o registro com stock=0
func (r *RedisStockRepository) CreateItem(ctx context.Context, price int64) (string, error) {
	id, err := r.rdb.Incr(ctx, itemIDCounter).Result()
	if err != nil {
		return "", fmt.Errorf("failed to allocate item id: %w", err)
	}

	itemID := strconv.FormatInt(id, 10)
	// One HSET writes both fields atomically.
	if err := r.rdb.HSet(ctx, itemKey(itemID), fieldPrice, price, fieldStock, 0).Err(); err != nil {
		return "", fmt.Errorf("failed to write item record: %w", err)
	}
	return itemID, nil
}

// GetItem busca um item pelo id
func (r *RedisStockRepository) GetItem(ctx context.Context, itemID string) (*Item, error) {
	data, err := r.rdb.HGetAll(ctx, itemKey(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read item record: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrItemNotFound
	}

	stock, err := strconv.ParseInt(data[fieldStock], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed stock field for item %s: %w", itemID, err)
	}
	price, err := strconv.ParseInt(data[fieldPrice], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed price field for item %s: %w", itemID, err)
	}

	return &Item{ItemID: itemID, Stock: stock, Price: price}, nil
}

// AddStock incrementa o estoque atomicamente
func (r *RedisStockRepository) AddStock(ctx context.Context, itemID string, amount int64) error {
	exists, err := r.rdb.Exists(ctx, itemKey(itemID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check item record: %w", err)
	}
	if exists == 0 {
		return ErrItemNotFound
	}

	if err := r.rdb.HIncrBy(ctx, itemKey(itemID), fieldStock, amount).Err(); err != nil {
		return fmt.Errorf("failed to add stock: %w", err)
	}
	return nil
}

// SubtractStock decrementa o estoque se houver saldo suficiente
func (r *RedisStockRepository) SubtractStock(ctx context.Context, itemID string, amount int64) error {
	res, err := subtractStockScript.Run(ctx, r.rdb, []string{itemKey(itemID)}, amount).Int64()
	if err != nil {
		return fmt.Errorf("failed to subtract stock: %w", err)
	}

	switch res {
	case -2:
		return ErrItemNotFound
	case -1:
		return ErrInsufficientStock
	}
	return nil
}
