package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"asset_inventory_backend/internal/services"
	"asset_inventory_backend/pkg/utils"
)

// ErrorReportHandler holds the error-report service.
type ErrorReportHandler struct {
	reportService services.ErrorReportService
}

// NewErrorReportHandler creates a new ErrorReportHandler.
func NewErrorReportHandler(rs services.ErrorReportService) *ErrorReportHandler {
	return &ErrorReportHandler{reportService: rs}
}

// CreateErrorReport handles filing a new report.
func (h *ErrorReportHandler) CreateErrorReport(c *gin.Context) {
	var req services.CreateErrorReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	report, err := h.reportService.CreateReport(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateErrorReport: Error from reportService.CreateReport")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create error report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, report)
}

// GetErrorReports handles fetching reports, optionally filtered by status.
func (h *ErrorReportHandler) GetErrorReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	status := utils.NewNullString(c.Query("status"))

	reports, err := h.reportService.GetReports(status, limit)
	if err != nil {
		utils.LogError(err, "GetErrorReports: Error from reportService.GetReports")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch error reports.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, reports)
}

// GetErrorReportByID handles fetching a single report.
func (h *ErrorReportHandler) GetErrorReportByID(c *gin.Context) {
	report, err := h.reportService.GetReportByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Error report not found.", ""))
		} else {
			utils.LogError(err, "GetErrorReportByID: Error from reportService.GetReportByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch error report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// UpdateErrorReport handles editing a report.
func (h *ErrorReportHandler) UpdateErrorReport(c *gin.Context) {
	var req services.UpdateErrorReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	report, err := h.reportService.UpdateReport(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Error report not found.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "UpdateErrorReport: Error from reportService.UpdateReport")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update error report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// ResolveErrorReport marks a report resolved.
func (h *ErrorReportHandler) ResolveErrorReport(c *gin.Context) {
	report, err := h.reportService.ResolveReport(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Error report not found.", ""))
		} else {
			utils.LogError(err, "ResolveErrorReport: Error from reportService.ResolveReport")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to resolve error report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// DeleteErrorReport handles deleting a report.
func (h *ErrorReportHandler) DeleteErrorReport(c *gin.Context) {
	if err := h.reportService.DeleteReport(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Error report not found.", ""))
		} else {
			utils.LogError(err, "DeleteErrorReport: Error from reportService.DeleteReport")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete error report.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Error report deleted successfully"})
}
