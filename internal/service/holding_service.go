package service

import (
	"github.com/hverma/stock-tracker-backend/internal/model"
	"github.com/hverma/stock-tracker-backend/internal/repository"
	"github.com/hverma/stock-tracker-backend/internal/validation"
)

// HoldingService handles holding-related business logic operations.
type HoldingService struct {
	holdingRepo *repository.HoldingRepository
}

// NewHoldingService creates a new HoldingService with the provided repository.
func NewHoldingService(holdingRepo *repository.HoldingRepository) *HoldingService {
	return &HoldingService{holdingRepo: holdingRepo}
}

// ListHoldings retrieves all holdings tracked by an account.
func (s *HoldingService) ListHoldings(accountID string) ([]model.Holding, error) {
	return s.holdingRepo.List(accountID)
}

// GetHolding retrieves a single holding by ID.
func (s *HoldingService) GetHolding(accountID, holdingID string) (model.Holding, error) {
	return s.holdingRepo.Get(accountID, holdingID)
}

// AddHolding creates a new tracked position for an account. The symbol must
// be non-empty and the quantity positive; one live record exists per
// (account, symbol).
func (s *HoldingService) AddHolding(accountID, symbol, displayName string, quantity float64) (model.Holding, error) {
	if err := validation.ValidateHolding(symbol, quantity); err != nil {
		return model.Holding{}, err
	}

	if displayName == "" {
		displayName = symbol
	}

	return s.holdingRepo.Create(accountID, symbol, displayName, quantity)
}

// UpdateQuantity mutates the recorded quantity of a holding.
func (s *HoldingService) UpdateQuantity(accountID, holdingID string, quantity float64) (model.Holding, error) {
	if err := validation.ValidateQuantity(quantity); err != nil {
		return model.Holding{}, err
	}

	if err := s.holdingRepo.UpdateQuantity(accountID, holdingID, quantity); err != nil {
		return model.Holding{}, err
	}

	return s.holdingRepo.Get(accountID, holdingID)
}

// RemoveHolding deletes a holding from an account.
func (s *HoldingService) RemoveHolding(accountID, holdingID string) error {
	return s.holdingRepo.Delete(accountID, holdingID)
}
