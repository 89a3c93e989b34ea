package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrItemNotInOrder    = errors.New("item not in order")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPaymentFailed     = errors.New("payment failed")
)

// OrderUseCase contém a lógica de negócio dos pedidos e orquestra o checkout
type OrderUseCase struct {
	repository OrderRepository
	stock      StockClient
	payments   PaymentClient
	tracer     trace.Tracer

	checkoutCommitted     metric.Int64Counter
	checkoutPaymentFailed metric.Int64Counter
	checkoutCompensated   metric.Int64Counter
}

// NewOrderUseCase cria uma nova instância de OrderUseCase
func NewOrderUseCase(
	repository OrderRepository,
	stock StockClient,
	payments PaymentClient,
	tracer trace.Tracer,
) *OrderUseCase {
	meter := otel.Meter("order-service")
	committed, _ := meter.Int64Counter("checkout.committed")
	paymentFailed, _ := meter.Int64Counter("checkout.payment_failed")
	compensated, _ := meter.Int64Counter("checkout.compensated")

	return &OrderUseCase{
		repository:            repository,
		stock:                 stock,
		payments:              payments,
		tracer:                tracer,
		checkoutCommitted:     committed,
		checkoutPaymentFailed: paymentFailed,
		checkoutCompensated:   compensated,
	}
}

// CreateOrder cria um pedido vazio para o usuário informado.
// The user id is not validated here; a dangling reference surfaces at
// checkout when the charge is attempted.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID string) (string, error) {
	orderID := uuid.New().String()

	order := NewOrder(orderID, userID)
	if err := uc.repository.CreateOrder(ctx, order); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("❌ [CREATE ORDER] failed")
		return "", err
	}

	log.Info().Str("order_id", orderID).Str("user_id", userID).Msg("✅ [CREATE ORDER]")
	return orderID, nil
}

// RemoveOrder apaga um pedido; apagar um pedido inexistente também é sucesso
func (uc *OrderUseCase) RemoveOrder(ctx context.Context, orderID string) error {
	log.Info().Str("order_id", orderID).Msg("➡️ [REMOVE ORDER]")
	return uc.repository.DeleteOrder(ctx, orderID)
}

// AddItem reserva uma unidade de um item no pedido. Physical stock is not
// touched here; reservation happens at checkout.
func (uc *OrderUseCase) AddItem(ctx context.Context, orderID, itemID string) error {
	log.Info().Str("order_id", orderID).Str("item_id", itemID).Msg("➡️ [ADD ITEM]")

	// 1. Load the order
	order, err := uc.repository.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	// 2. Fetch the item's current price from the stock ledger
	price, err := uc.stock.GetItemPrice(ctx, itemID)
	if err != nil {
		log.Warn().Err(err).Str("item_id", itemID).Msg("❌ [ADD ITEM] price lookup failed")
		return err
	}

	// 3. Append the unit and write list + total as one record update
	order.AddItem(itemID, price)
	if err := uc.repository.UpdateItems(ctx, orderID, order.Items, order.TotalCost); err != nil {
		return err
	}

	log.Info().Str("order_id", orderID).Int64("total_cost", order.TotalCost).Msg("✅ [ADD ITEM]")
	return nil
}

// RemoveItem remove uma unidade de um item do pedido
func (uc *OrderUseCase) RemoveItem(ctx context.Context, orderID, itemID string) error {
	log.Info().Str("order_id", orderID).Str("item_id", itemID).Msg("➡️ [REMOVE ITEM]")

	// 1. Load the order
	order, err := uc.repository.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	// 2. Fetch the item's current price; if it changed since AddItem the
	// total drifts, same as on the add side.
	price, err := uc.stock.GetItemPrice(ctx, itemID)
	if err != nil {
		log.Warn().Err(err).Str("item_id", itemID).Msg("❌ [REMOVE ITEM] price lookup failed")
		return err
	}

	// 3. Drop one occurrence and write list + total as one record update
	if err := order.RemoveItem(itemID, price); err != nil {
		return err
	}
	if err := uc.repository.UpdateItems(ctx, orderID, order.Items, order.TotalCost); err != nil {
		return err
	}

	log.Info().Str("order_id", orderID).Int64("total_cost", order.TotalCost).Msg("✅ [REMOVE ITEM]")
	return nil
}

// FindOrder busca um pedido pelo id
func (uc *OrderUseCase) FindOrder(ctx context.Context, orderID string) (*Order, error) {
	return uc.repository.GetOrder(ctx, orderID)
}

// Checkout executa a saga do pedido: cobra o usuário, reserva o estoque de
// cada item e desfaz a cobrança quando uma reserva falha.
func (uc *OrderUseCase) Checkout(ctx context.Context, orderID string) error {
	ctx, span := uc.tracer.Start(ctx, "checkout")
	defer span.End()

	log.Info().Str("order_id", orderID).Msg("🚀 [CHECKOUT] starting")

	// 1. Load the order
	order, err := uc.repository.GetOrder(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.String("order_id", orderID),
		attribute.String("user_id", order.UserID),
		attribute.Int64("total_cost", order.TotalCost),
		attribute.Int("item_count", len(order.Items)),
	)

	// 2. Charge the user for the full order total
	if err := uc.charge(ctx, order); err != nil {
		uc.checkoutPaymentFailed.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "payment failed")
		log.Warn().Err(err).Str("order_id", orderID).Msg("❌ [CHECKOUT] payment failed")
		return err
	}
	span.AddEvent("payment charged")

	// 3. Reserve one unit per listed item, tracking what got reserved so a
	// failed reservation can be undone.
	reserved := make([]string, 0, len(order.Items))
	for _, itemID := range order.Items {
		if err := uc.stock.SubtractStock(ctx, itemID, 1); err != nil {
			span.RecordError(err)
			log.Warn().Err(err).Str("order_id", orderID).Str("item_id", itemID).Msg("❌ [CHECKOUT] reservation failed")

			if compErr := uc.compensate(ctx, order, reserved); compErr == nil {
				uc.checkoutCompensated.Add(ctx, 1)
				span.SetStatus(codes.Error, "insufficient stock")
				return fmt.Errorf("%w: item %s", ErrInsufficientStock, itemID)
			}
			// The charge could not be cancelled. The remaining items keep
			// being attempted and the paid write below still happens,
			// leaving the ledgers to manual reconciliation.
			log.Error().Str("order_id", orderID).Msg("💥 [CHECKOUT] compensation failed, continuing")
			continue
		}
		reserved = append(reserved, itemID)
	}

	// 4. Commit: flag the order as paid in a single record update
	if err := uc.repository.SetPaid(ctx, orderID, true); err != nil {
		span.RecordError(err)
		return err
	}

	uc.checkoutCommitted.Add(ctx, 1)
	span.AddEvent("order committed")
	log.Info().Str("order_id", orderID).Msg("✅ [CHECKOUT] Success")
	return nil
}

// charge cobra o total do pedido no ledger de crédito
func (uc *OrderUseCase) charge(ctx context.Context, order *Order) error {
	ctx, span := uc.tracer.Start(ctx, "checkout.charge")
	defer span.End()

	return uc.payments.Pay(ctx, order.UserID, order.OrderID, order.TotalCost)
}

// compensate desfaz a cobrança e devolve as unidades já reservadas nesta
// passada. Re-add failures are logged, not propagated: the refund already
// happened and the caller still reports the stock error.
func (uc *OrderUseCase) compensate(ctx context.Context, order *Order, reserved []string) error {
	ctx, span := uc.tracer.Start(ctx, "checkout.compensate")
	defer span.End()

	if err := uc.payments.CancelPayment(ctx, order.UserID, order.OrderID); err != nil {
		span.RecordError(err)
		return err
	}
	span.AddEvent("payment cancelled")

	for _, itemID := range reserved {
		if err := uc.stock.AddStock(ctx, itemID, 1); err != nil {
			span.RecordError(err)
			log.Error().Err(err).Str("order_id", order.OrderID).Str("item_id", itemID).Msg("💥 [CHECKOUT] failed to re-add reserved stock")
		}
	}

	log.Info().Str("order_id", order.OrderID).Int("reverted", len(reserved)).Msg("↩️ [CHECKOUT] compensated")
	return nil
}
