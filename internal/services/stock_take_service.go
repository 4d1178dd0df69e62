package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"asset_inventory_backend/internal/models"
	"asset_inventory_backend/internal/repositories"
)

// --- Stock-Take DTOs ---

type CreateStockTakeRequest struct {
	UserID   string                  `json:"user_id" binding:"required"`
	UserName string                  `json:"user_name" binding:"required"`
	ItemType string                  `json:"item_type" binding:"required"`
	Entries  []models.StockTakeEntry `json:"entries" binding:"required"`
}

// StockTakeEntryFailure records one entry that could not be applied.
type StockTakeEntryFailure struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

// StockTakeResult reports the per-entry outcome of a batch.
type StockTakeResult struct {
	StockTake *models.StockTake       `json:"stock_take"`
	Applied   int                     `json:"applied"`
	Failed    []StockTakeEntryFailure `json:"failed,omitempty"`
}

// --- StockTakeService Interface ---

// StockTakeService applies a batch of counted corrections. Entries are
// processed sequentially and independently: a failing entry is recorded and
// skipped, entries already applied are never rolled back. Each individual
// entry is atomic (overwrite plus audit append in one transaction), the batch
// as a whole is not.
type StockTakeService interface {
	ProcessStockTake(req CreateStockTakeRequest) (*StockTakeResult, error)
	GetStockTakes(limit int) ([]models.StockTake, error)
}

type stockTakeService struct {
	materialRepo    repositories.MaterialRepository
	toolRepo        repositories.ToolRepository
	transactionRepo repositories.TransactionRepository
	stockTakeRepo   repositories.StockTakeRepository
	runner          repositories.TxRunner
}

// NewStockTakeService creates a new instance of StockTakeService.
func NewStockTakeService(
	materialRepo repositories.MaterialRepository,
	toolRepo repositories.ToolRepository,
	transactionRepo repositories.TransactionRepository,
	stockTakeRepo repositories.StockTakeRepository,
	runner repositories.TxRunner,
) StockTakeService {
	return &stockTakeService{
		materialRepo:    materialRepo,
		toolRepo:        toolRepo,
		transactionRepo: transactionRepo,
		stockTakeRepo:   stockTakeRepo,
		runner:          runner,
	}
}

func (s *stockTakeService) ProcessStockTake(req CreateStockTakeRequest) (*StockTakeResult, error) {
	if len(req.Entries) == 0 {
		return nil, fmt.Errorf("%w: stock take requires at least one entry", ErrValidation)
	}

	result := &StockTakeResult{}
	for _, entry := range req.Entries {
		if err := s.applyEntry(req, entry); err != nil {
			result.Failed = append(result.Failed, StockTakeEntryFailure{
				ItemID: entry.ItemID,
				Reason: err.Error(),
			})
			continue
		}
		result.Applied++
	}

	stockTake := &models.StockTake{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		UserName:  req.UserName,
		ItemType:  req.ItemType,
		Entries:   req.Entries,
		Completed: true,
		CreatedAt: time.Now().UTC(),
	}
	err := s.runner.RunInTx(func(ex repositories.SQLExecutor) error {
		return s.stockTakeRepo.Create(ex, stockTake)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record stock take: %w", err)
	}
	result.StockTake = stockTake
	return result, nil
}

// applyEntry unconditionally overwrites the counted value and appends a
// stock_take transaction, both inside one storage transaction.
func (s *stockTakeService) applyEntry(req CreateStockTakeRequest, entry models.StockTakeEntry) error {
	if !models.IsValidItemType(entry.ItemType) {
		return fmt.Errorf("%w: item_type must be material or tool", ErrValidation)
	}

	return s.runner.RunInTx(func(ex repositories.SQLExecutor) error {
		switch entry.ItemType {
		case models.ItemTypeMaterial:
			if entry.CountedQuantity == nil {
				return fmt.Errorf("%w: counted_quantity is required for materials", ErrValidation)
			}
			if *entry.CountedQuantity < 0 {
				return fmt.Errorf("%w: counted_quantity cannot be negative", ErrValidation)
			}
			if err := s.materialRepo.SetQuantity(ex, entry.ItemID, *entry.CountedQuantity); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return fmt.Errorf("%w: material %s", ErrMaterialNotFound, entry.ItemID)
				}
				return fmt.Errorf("failed to set counted quantity: %w", err)
			}
		case models.ItemTypeTool:
			if entry.Condition == nil {
				return fmt.Errorf("%w: condition is required for tools", ErrValidation)
			}
			if !models.IsValidCondition(*entry.Condition) {
				return fmt.Errorf("%w: unknown condition %q", ErrValidation, *entry.Condition)
			}
			if err := s.toolRepo.SetCondition(ex, entry.ItemID, *entry.Condition); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return fmt.Errorf("%w: tool %s", ErrToolNotFound, entry.ItemID)
				}
				return fmt.Errorf("failed to set counted condition: %w", err)
			}
		}

		transaction := &models.Transaction{
			ID:              uuid.NewString(),
			ItemID:          entry.ItemID,
			ItemType:        entry.ItemType,
			TransactionType: models.TransactionStockTake,
			Quantity:        entry.CountedQuantity,
			Condition:       entry.Condition,
			UserID:          req.UserID,
			UserName:        req.UserName,
			Notes:           entry.Notes,
			Timestamp:       time.Now().UTC(),
		}
		if err := s.transactionRepo.Create(ex, transaction); err != nil {
			return fmt.Errorf("failed to record stock take transaction: %w", err)
		}
		return nil
	})
}

func (s *stockTakeService) GetStockTakes(limit int) ([]models.StockTake, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	stockTakes, err := s.stockTakeRepo.GetAll(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock takes: %w", err)
	}
	return stockTakes, nil
}
