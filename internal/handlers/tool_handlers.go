package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"asset_inventory_backend/internal/services"
	"asset_inventory_backend/pkg/utils"
)

// ToolHandler holds the tool service.
type ToolHandler struct {
	toolService services.ToolService
}

// NewToolHandler creates a new ToolHandler.
func NewToolHandler(ts services.ToolService) *ToolHandler {
	return &ToolHandler{toolService: ts}
}

// CreateTool handles creation of a new tool.
func (h *ToolHandler) CreateTool(c *gin.Context) {
	var req services.CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	tool, err := h.toolService.CreateTool(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateTool: Error from toolService.CreateTool")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create tool.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, tool)
}

// GetTools handles fetching all tools, optionally filtered by category or status.
func (h *ToolHandler) GetTools(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "1000"))
	category := utils.NewNullString(c.Query("category"))
	status := utils.NewNullString(c.Query("status"))

	tools, err := h.toolService.GetTools(category, status, limit)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "GetTools: Error from toolService.GetTools")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch tools.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, tools)
}

// GetToolByID handles fetching a single tool.
func (h *ToolHandler) GetToolByID(c *gin.Context) {
	tool, err := h.toolService.GetToolByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tool not found.", ""))
		} else {
			utils.LogError(err, "GetToolByID: Error from toolService.GetToolByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch tool.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, tool)
}

// UpdateTool handles updating an existing tool.
func (h *ToolHandler) UpdateTool(c *gin.Context) {
	var req services.UpdateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	tool, err := h.toolService.UpdateTool(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tool not found.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "UpdateTool: Error from toolService.UpdateTool")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update tool.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, tool)
}

// DeleteTool handles deleting a tool.
func (h *ToolHandler) DeleteTool(c *gin.Context) {
	if err := h.toolService.DeleteTool(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tool not found.", ""))
		} else {
			utils.LogError(err, "DeleteTool: Error from toolService.DeleteTool")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete tool.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tool deleted successfully"})
}

// AddServiceRecord appends a maintenance record to a tool.
func (h *ToolHandler) AddServiceRecord(c *gin.Context) {
	var req services.AddServiceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	tool, err := h.toolService.AddServiceRecord(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tool not found.", ""))
		} else {
			utils.LogError(err, "AddServiceRecord: Error from toolService.AddServiceRecord")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to add service record.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, tool)
}

// LinkSupplier embeds a supplier snapshot onto a tool.
func (h *ToolHandler) LinkSupplier(c *gin.Context) {
	var req services.LinkSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	tool, err := h.toolService.LinkSupplier(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrToolNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tool not found.", ""))
		} else if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "LinkSupplier: Error from toolService.LinkSupplier")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to link supplier.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, tool)
}
