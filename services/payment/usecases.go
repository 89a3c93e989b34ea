package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrAlreadyCancelled   = errors.New("payment already cancelled")
)

// PaymentUseCase contém a lógica de negócio do ledger de crédito
type PaymentUseCase struct {
	repository PaymentRepository
}

// NewPaymentUseCase cria uma nova instância de PaymentUseCase
func NewPaymentUseCase(repository PaymentRepository) *PaymentUseCase {
	return &PaymentUseCase{
		repository: repository,
	}
}

// CreateUser cria um usuário novo com crédito zero
func (uc *PaymentUseCase) CreateUser(ctx context.Context) (string, error) {
	userID, err := uc.repository.CreateUser(ctx)
	if err != nil {
		log.Error().Err(err).Msg("❌ [CREATE USER] failed")
		return "", err
	}

	log.Info().Str("user_id", userID).Msg("✅ [CREATE USER]")
	return userID, nil
}

// FindUser busca um usuário pelo id
func (uc *PaymentUseCase) FindUser(ctx context.Context, userID string) (*User, error) {
	return uc.repository.GetUser(ctx, userID)
}

// AddFunds incrementa o crédito de um usuário
func (uc *PaymentUseCase) AddFunds(ctx context.Context, userID string, amount int64) error {
	log.Info().Str("user_id", userID).Int64("amount", amount).Msg("➡️ [ADD FUNDS]")

	if err := uc.repository.AddCredit(ctx, userID, amount); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("❌ [ADD FUNDS] failed")
		return err
	}
	return nil
}

// Pay debita o valor do crédito do usuário e marca o pedido como pago.
// The credit decrement is atomic; the paid write is a second command on a
// different key, so the pair is not atomic as a unit.
func (uc *PaymentUseCase) Pay(ctx context.Context, userID, orderID string, amount int64) error {
	log.Info().Str("user_id", userID).Str("order_id", orderID).Int64("amount", amount).Msg("➡️ [PAY]")

	if err := uc.repository.DeductCredit(ctx, userID, amount); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Str("order_id", orderID).Msg("❌ [PAY] failed")
		return err
	}

	if err := uc.repository.SetOrderPaid(ctx, orderID, true); err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("❌ [PAY] credit deducted but paid flag not written")
		return err
	}

	log.Info().Str("order_id", orderID).Msg("✅ [PAY] Success")
	return nil
}

// CancelPayment desfaz um pagamento: limpa o flag paid e devolve o crédito.
// This is the compensating action for a successful Pay.
func (uc *PaymentUseCase) CancelPayment(ctx context.Context, userID, orderID string) error {
	log.Info().Str("user_id", userID).Str("order_id", orderID).Msg("↩️ [CANCEL PAYMENT]")

	payment, err := uc.repository.GetOrderPayment(ctx, orderID)
	if err != nil {
		log.Warn().Err(err).Str("order_id", orderID).Msg("❌ [CANCEL PAYMENT] failed")
		return err
	}

	if !payment.Paid {
		log.Warn().Str("order_id", orderID).Msg("❌ [CANCEL PAYMENT] already cancelled")
		return ErrAlreadyCancelled
	}

	if err := uc.repository.SetOrderPaid(ctx, orderID, false); err != nil {
		return err
	}

	// Refund the recorded order total, not the original charge: the record
	// is all the saga persists about the payment.
	if err := uc.repository.AddCredit(ctx, userID, payment.TotalCost); err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("❌ [CANCEL PAYMENT] paid flag cleared but refund failed")
		return err
	}

	log.Info().Str("order_id", orderID).Int64("refund", payment.TotalCost).Msg("✅ [CANCEL PAYMENT] Success")
	return nil
}

// PaymentStatus retorna o flag paid de um pedido
func (uc *PaymentUseCase) PaymentStatus(ctx context.Context, orderID string) (bool, error) {
	payment, err := uc.repository.GetOrderPayment(ctx, orderID)
	if err != nil {
		return false, err
	}
	return payment.Paid, nil
}
