package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"asset_inventory_backend/internal/services"
	"asset_inventory_backend/pkg/utils"
)

// TransactionHandler holds the transaction service.
type TransactionHandler struct {
	transactionService services.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ts services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: ts}
}

// CreateTransaction applies one inventory transaction (take, restock,
// stock_take, check_out, check_in) and returns the logged record.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req services.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	transaction, err := h.transactionService.Process(req)
	if err != nil {
		if errors.Is(err, services.ErrMaterialNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Material not found.", err.Error()))
		} else if errors.Is(err, services.ErrToolNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tool not found.", err.Error()))
		} else if errors.Is(err, services.ErrInsufficientStock) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInsufficientStock, "Insufficient stock for this transaction.", err.Error()))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateTransaction: Error from transactionService.Process")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process transaction.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

// GetTransactions handles fetching the transaction log, optionally filtered
// by item, user or transaction type.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	itemID := utils.NewNullString(c.Query("item_id"))
	userID := utils.NewNullString(c.Query("user_id"))
	transactionType := utils.NewNullString(c.Query("transaction_type"))

	transactions, err := h.transactionService.GetTransactions(itemID, userID, transactionType, limit)
	if err != nil {
		utils.LogError(err, "GetTransactions: Error from transactionService.GetTransactions")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch transactions.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, transactions)
}
