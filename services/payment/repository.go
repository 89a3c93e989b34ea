package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// PaymentRepository define as operações de store do ledger de crédito
type PaymentRepository interface {
	// CreateUser aloca um id sequencial e grava o registro com credit=0
	CreateUser(ctx context.Context) (string, error)

	// GetUser busca um usuário pelo id
	GetUser(ctx context.Context, userID string) (*User, error)

	// AddCredit incrementa o crédito atomicamente
	AddCredit(ctx context.Context, userID string, amount int64) error

	// DeductCredit decrementa o crédito se houver saldo suficiente
	DeductCredit(ctx context.Context, userID string, amount int64) error

	// GetOrderPayment lê o estado de pagamento de um pedido
	GetOrderPayment(ctx context.Context, orderID string) (*OrderPayment, error)

	// SetOrderPaid grava o flag paid do pedido
	SetOrderPaid(ctx context.Context, orderID string, paid bool) error
}

// RedisPaymentRepository implementa PaymentRepository usando hash records
type RedisPaymentRepository struct {
	rdb *redis.Client
}

// NewPaymentRepository cria uma nova instância de RedisPaymentRepository
func NewPaymentRepository(rdb *redis.Client) PaymentRepository {
	return &RedisPaymentRepository{
		rdb: rdb,
	}
}

// deductCreditScript keeps the balance check and the decrement in one atomic
// server-side step. Returns -2 when the user is missing, -1 on insufficient
// credit, otherwise the new balance.
var deductCreditScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -2
end
local credit = tonumber(redis.call("HGET", KEYS[1], "credit"))
local amount = tonumber(ARGV[1])
if credit < amount then
	return -1
end
return redis.call("HINCRBY", KEYS[1], "credit", -amount)
`)

// CreateUser aloca um id sequencial e inicializa o registro com credit=0
func (r *RedisPaymentRepository) CreateUser(ctx context.Context) (string, error) {
	id, err := r.rdb.Incr(ctx, userIDCounter).Result()
	if err != nil {
		return "", fmt.Errorf("failed to allocate user id: %w", err)
	}

	userID := strconv.FormatInt(id, 10)
	if err := r.rdb.HSet(ctx, userKey(userID), fieldCredit, 0).Err(); err != nil {
		return "", fmt.Errorf("failed to write user record: %w", err)
	}
	return userID, nil
}

// GetUser busca um usuário pelo id
func (r *RedisPaymentRepository) GetUser(ctx context.Context, userID string) (*User, error) {
	data, err := r.rdb.HGetAll(ctx, userKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read user record: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrUserNotFound
	}

	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed user id %s: %w", userID, err)
	}
	credit, err := strconv.ParseInt(data[fieldCredit], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed credit field for user %s: %w", userID, err)
	}

	return &User{UserID: id, Credit: credit}, nil
}

// AddCredit incrementa o crédito atomicamente
func (r *RedisPaymentRepository) AddCredit(ctx context.Context, userID string, amount int64) error {
	exists, err := r.rdb.Exists(ctx, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check user record: %w", err)
	}
	if exists == 0 {
		return ErrUserNotFound
	}

	if err := r.rdb.HIncrBy(ctx, userKey(userID), fieldCredit, amount).Err(); err != nil {
		return fmt.Errorf("failed to add credit: %w", err)
	}
	return nil
}

// DeductCredit decrementa o crédito se houver saldo suficiente
func (r *RedisPaymentRepository) DeductCredit(ctx context.Context, userID string, amount int64) error {
	res, err := deductCreditScript.Run(ctx, r.rdb, []string{userKey(userID)}, amount).Int64()
	if err != nil {
		return fmt.Errorf("failed to deduct credit: %w", err)
	}

	switch res {
	case -2:
		return ErrUserNotFound
	case -1:
		return ErrInsufficientCredit
	}
	return nil
}

// GetOrderPayment lê o estado de pagamento de um pedido
func (r *RedisPaymentRepository) GetOrderPayment(ctx context.Context, orderID string) (*OrderPayment, error) {
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

	return &OrderPayment{Paid: paid, TotalCost: totalCost}, nil
}

// SetOrderPaid grava o flag paid do pedido
func (r *RedisPaymentRepository) SetOrderPaid(ctx context.Context, orderID string, paid bool) error {
	if err := r.rdb.HSet(ctx, orderKey(orderID), fieldPaid, strconv.FormatBool(paid)).Err(); err != nil {
		return fmt.Errorf("failed to write paid flag: %w", err)
	}
	return nil
}
