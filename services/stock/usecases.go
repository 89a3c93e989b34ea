package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockUseCase contém a lógica de negócio do ledger de estoque
type StockUseCase struct {
	repository StockRepository
}

// NewStockUseCase cria uma nova instância de StockUseCase
func NewStockUseCase(repository StockRepository) *StockUseCase {
	return &StockUseCase{
		repository: repository,
	}
}

// CreateItem cria um item novo com estoque zero
func (uc *StockUseCase) CreateItem(ctx context.Context, price int64) (string, error) {
	itemID, err := uc.repository.CreateItem(ctx, price)
	if err != nil {
		log.Error().Err(err).Msg("❌ [CREATE ITEM] failed")
		return "", err
	}

	log.Info().Str("item_id", itemID).Int64("price", price).Msg("✅ [CREATE ITEM]")
	return itemID, nil
}

// FindItem busca um item pelo id
func (uc *StockUseCase) FindItem(ctx context.Context, itemID string) (*Item, error) {
	return uc.repository.GetItem(ctx, itemID)
}

// AddStock incrementa o estoque de um item
func (uc *StockUseCase) AddStock(ctx context.Context, itemID string, amount int64) error {
	log.Info().Str("item_id", itemID).Int64("amount", amount).Msg("➡️ [ADD STOCK]")

	if err := uc.repository.AddStock(ctx, itemID, amount); err != nil {
		log.Warn().Err(err).Str("item_id", itemID).Msg("❌ [ADD STOCK] failed")
		return err
	}
	return nil
}

// SubtractStock decrementa o estoque de um item se houver saldo suficiente
func (uc *StockUseCase) SubtractStock(ctx context.Context, itemID string, amount int64) error {
	log.Info().Str("item_id", itemID).Int64("amount", amount).Msg("➡️ [SUBTRACT STOCK]")

	if err := uc.repository.SubtractStock(ctx, itemID, amount); err != nil {
		log.Warn().Err(err).Str("item_id", itemID).Msg("❌ [SUBTRACT STOCK] failed")
		return err
	}
	return nil
}
