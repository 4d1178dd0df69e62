package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"asset_inventory_backend/internal/repositories"
	"asset_inventory_backend/internal/services"
	"asset_inventory_backend/pkg/utils"
)

// DeliveryHandler holds the delivery service.
type DeliveryHandler struct {
	deliveryService services.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(ds services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: ds}
}

// CreateDelivery handles creation of a new delivery.
func (h *DeliveryHandler) CreateDelivery(c *gin.Context) {
	var req services.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	delivery, err := h.deliveryService.CreateDelivery(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateDelivery: Error from deliveryService.CreateDelivery")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create delivery.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, delivery)
}

// GetDeliveries handles fetching deliveries with optional status, supplier
// and date-range filters.
func (h *DeliveryHandler) GetDeliveries(c *gin.Context) {
	var filter repositories.DeliveryFilter
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	filter.Status = utils.NewNullString(c.Query("status"))
	filter.SupplierID = utils.NewNullString(c.Query("supplier_id"))

	if dateFromStr := c.Query("date_from"); dateFromStr != "" {
		t, err := time.Parse("2006-01-02", dateFromStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_from format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		filter.DateFrom = &t
	}
	if dateToStr := c.Query("date_to"); dateToStr != "" {
		t, err := time.Parse("2006-01-02", dateToStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date_to format. Use YYYY-MM-DD.", err.Error()))
			return
		}
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second) // End of day
		filter.DateTo = &t
	}

	deliveries, err := h.deliveryService.GetDeliveries(filter)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "GetDeliveries: Error from deliveryService.GetDeliveries")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch deliveries.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

// SearchDeliveries handles the cross-field delivery search.
func (h *DeliveryHandler) SearchDeliveries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	req := services.DeliverySearchRequest{
		Query:     c.Query("query"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Limit:     limit,
	}

	result, err := h.deliveryService.SearchDeliveries(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "SearchDeliveries: Error from deliveryService.SearchDeliveries")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to search deliveries.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetDeliveryByID handles fetching a single delivery.
func (h *DeliveryHandler) GetDeliveryByID(c *gin.Context) {
	delivery, err := h.deliveryService.GetDeliveryByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrDeliveryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Delivery not found.", ""))
		} else {
			utils.LogError(err, "GetDeliveryByID: Error from deliveryService.GetDeliveryByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch delivery.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, delivery)
}

// UpdateDelivery handles updating an existing delivery.
func (h *DeliveryHandler) UpdateDelivery(c *gin.Context) {
	var req services.UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	delivery, err := h.deliveryService.UpdateDelivery(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrDeliveryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Delivery not found.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "UpdateDelivery: Error from deliveryService.UpdateDelivery")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update delivery.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, delivery)
}

// DeleteDelivery handles deleting a delivery.
func (h *DeliveryHandler) DeleteDelivery(c *gin.Context) {
	if err := h.deliveryService.DeleteDelivery(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrDeliveryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Delivery not found.", ""))
		} else {
			utils.LogError(err, "DeleteDelivery: Error from deliveryService.DeleteDelivery")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete delivery.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Delivery deleted successfully"})
}

// ProcessDeliveryNote extracts structured line items from a delivery note
// photo. The response is tagged with the extraction method.
func (h *DeliveryHandler) ProcessDeliveryNote(c *gin.Context) {
	var req services.ProcessDeliveryNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.deliveryService.ProcessDeliveryNote(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrDeliveryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Delivery not found.", ""))
		} else {
			utils.LogError(err, "ProcessDeliveryNote: Error from deliveryService.ProcessDeliveryNote")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process delivery note.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmDelivery applies received items to the inventory and completes the
// delivery. Per-item failures are reported in the response, not as an error.
func (h *DeliveryHandler) ConfirmDelivery(c *gin.Context) {
	var req services.ConfirmDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.deliveryService.ConfirmDelivery(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrDeliveryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Delivery not found.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "ConfirmDelivery: Error from deliveryService.ConfirmDelivery")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to confirm delivery.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAnalytics returns the delivery dashboard summary.
func (h *DeliveryHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.deliveryService.GetAnalytics()
	if err != nil {
		utils.LogError(err, "GetAnalytics: Error from deliveryService.GetAnalytics")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch delivery analytics.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, analytics)
}
