package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"asset_inventory_backend/internal/services"
	"asset_inventory_backend/pkg/utils"
)

// StockTakeHandler holds the stock-take service.
type StockTakeHandler struct {
	stockTakeService services.StockTakeService
}

// NewStockTakeHandler creates a new StockTakeHandler.
func NewStockTakeHandler(ss services.StockTakeService) *StockTakeHandler {
	return &StockTakeHandler{stockTakeService: ss}
}

// CreateStockTake applies a batch of counted corrections. The response
// reports per-entry outcomes; a partially failed batch is still 201.
func (h *StockTakeHandler) CreateStockTake(c *gin.Context) {
	var req services.CreateStockTakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.stockTakeService.ProcessStockTake(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateStockTake: Error from stockTakeService.ProcessStockTake")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process stock take.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetStockTakes handles fetching past stock-take batches.
func (h *StockTakeHandler) GetStockTakes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	stockTakes, err := h.stockTakeService.GetStockTakes(limit)
	if err != nil {
		utils.LogError(err, "GetStockTakes: Error from stockTakeService.GetStockTakes")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch stock takes.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stockTakes)
}
