package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"asset_inventory_backend/internal/models"
	"asset_inventory_backend/internal/repositories"
)

// --- Transaction DTOs ---

type CreateTransactionRequest struct {
	ItemID          string  `json:"item_id" binding:"required"`
	ItemType        string  `json:"item_type" binding:"required"`
	TransactionType string  `json:"transaction_type" binding:"required"`
	UserID          string  `json:"user_id" binding:"required"`
	UserName        string  `json:"user_name" binding:"required"`
	Quantity        *int    `json:"quantity"`
	Condition       *string `json:"condition"`
	Notes           *string `json:"notes"`
}

// --- TransactionService Interface ---

// TransactionService applies one inventory-affecting event to a single item
// record and logs it. The item mutation and the audit append run inside one
// storage transaction, so a crash cannot leave the item updated with the
// audit entry missing.
type TransactionService interface {
	Process(req CreateTransactionRequest) (*models.Transaction, error)
	GetTransactions(itemID, userID, transactionType *string, limit int) ([]models.Transaction, error)
}

type transactionService struct {
	materialRepo    repositories.MaterialRepository
	toolRepo        repositories.ToolRepository
	transactionRepo repositories.TransactionRepository
	runner          repositories.TxRunner
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(
	materialRepo repositories.MaterialRepository,
	toolRepo repositories.ToolRepository,
	transactionRepo repositories.TransactionRepository,
	runner repositories.TxRunner,
) TransactionService {
	return &transactionService{
		materialRepo:    materialRepo,
		toolRepo:        toolRepo,
		transactionRepo: transactionRepo,
		runner:          runner,
	}
}

func (s *transactionService) Process(req CreateTransactionRequest) (*models.Transaction, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		ID:              uuid.NewString(),
		ItemID:          req.ItemID,
		ItemType:        req.ItemType,
		TransactionType: req.TransactionType,
		Quantity:        req.Quantity,
		Condition:       req.Condition,
		UserID:          req.UserID,
		UserName:        req.UserName,
		Notes:           req.Notes,
		Timestamp:       time.Now().UTC(),
	}

	// The audit append shares the item mutation's transaction, so a failed
	// mutation never produces a Transaction record.
	err := s.runner.RunInTx(func(ex repositories.SQLExecutor) error {
		var applyErr error
		switch req.ItemType {
		case models.ItemTypeMaterial:
			applyErr = s.applyMaterial(ex, req)
		case models.ItemTypeTool:
			applyErr = s.applyTool(ex, req)
		default:
			applyErr = fmt.Errorf("%w: unknown item type %q", ErrValidation, req.ItemType)
		}
		if applyErr != nil {
			return applyErr
		}
		if err := s.transactionRepo.Create(ex, transaction); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *transactionService) applyMaterial(ex repositories.SQLExecutor, req CreateTransactionRequest) error {
	if _, err := s.materialRepo.GetByID(ex, req.ItemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: material %s", ErrMaterialNotFound, req.ItemID)
		}
		return fmt.Errorf("failed to load material: %w", err)
	}

	quantity := *req.Quantity
	switch req.TransactionType {
	case models.TransactionTake:
		if _, err := s.materialRepo.AdjustQuantity(ex, req.ItemID, -quantity); err != nil {
			if errors.Is(err, repositories.ErrNoRowsAffected) {
				return fmt.Errorf("%w: cannot take %d", ErrInsufficientStock, quantity)
			}
			return fmt.Errorf("failed to take material: %w", err)
		}
	case models.TransactionRestock:
		if _, err := s.materialRepo.AdjustQuantity(ex, req.ItemID, quantity); err != nil {
			return fmt.Errorf("failed to restock material: %w", err)
		}
	case models.TransactionStockTake:
		if err := s.materialRepo.SetQuantity(ex, req.ItemID, quantity); err != nil {
			return fmt.Errorf("failed to set material quantity: %w", err)
		}
	default:
		return fmt.Errorf("%w: transaction type %q not valid for materials", ErrValidation, req.TransactionType)
	}
	return nil
}

func (s *transactionService) applyTool(ex repositories.SQLExecutor, req CreateTransactionRequest) error {
	if _, err := s.toolRepo.GetByID(ex, req.ItemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: tool %s", ErrToolNotFound, req.ItemID)
		}
		return fmt.Errorf("failed to load tool: %w", err)
	}

	switch req.TransactionType {
	case models.TransactionCheckOut:
		if err := s.toolRepo.SetCheckedOut(ex, req.ItemID, req.UserName); err != nil {
			return fmt.Errorf("failed to check out tool: %w", err)
		}
	case models.TransactionCheckIn:
		if err := s.toolRepo.SetCheckedIn(ex, req.ItemID, req.Condition); err != nil {
			return fmt.Errorf("failed to check in tool: %w", err)
		}
	default:
		return fmt.Errorf("%w: transaction type %q not valid for tools", ErrValidation, req.TransactionType)
	}
	return nil
}

func (s *transactionService) validate(req CreateTransactionRequest) error {
	if !models.IsValidItemType(req.ItemType) {
		return fmt.Errorf("%w: item_type must be material or tool", ErrValidation)
	}
	if !models.IsValidTransactionType(req.TransactionType) {
		return fmt.Errorf("%w: unknown transaction_type %q", ErrValidation, req.TransactionType)
	}
	if req.ItemType == models.ItemTypeMaterial {
		switch req.TransactionType {
		case models.TransactionTake, models.TransactionRestock, models.TransactionStockTake:
		default:
			return fmt.Errorf("%w: transaction type %q not valid for materials", ErrValidation, req.TransactionType)
		}
		if req.Quantity == nil {
			return fmt.Errorf("%w: quantity is required for material transactions", ErrValidation)
		}
		if *req.Quantity < 0 || (req.TransactionType != models.TransactionStockTake && *req.Quantity == 0) {
			return fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
	}
	if req.ItemType == models.ItemTypeTool {
		switch req.TransactionType {
		case models.TransactionCheckOut, models.TransactionCheckIn:
		default:
			return fmt.Errorf("%w: transaction type %q not valid for tools", ErrValidation, req.TransactionType)
		}
		if req.Condition != nil && !models.IsValidCondition(*req.Condition) {
			return fmt.Errorf("%w: unknown condition %q", ErrValidation, *req.Condition)
		}
	}
	return nil
}

func (s *transactionService) GetTransactions(itemID, userID, transactionType *string, limit int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	transactions, err := s.transactionRepo.GetAll(itemID, userID, transactionType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}
