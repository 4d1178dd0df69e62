package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"asset_inventory_backend/internal/services"
	"asset_inventory_backend/pkg/utils"
)

// MaterialHandler holds the material service.
type MaterialHandler struct {
	materialService services.MaterialService
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(ms services.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: ms}
}

// CreateMaterial handles creation of a new material.
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	var req services.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	material, err := h.materialService.CreateMaterial(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateMaterial: Error from materialService.CreateMaterial")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create material.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, material)
}

// GetMaterials handles fetching all materials, optionally filtered by
// category or a name search term.
func (h *MaterialHandler) GetMaterials(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "1000"))
	category := utils.NewNullString(c.Query("category"))
	search := utils.NewNullString(c.Query("search"))

	materials, err := h.materialService.GetMaterials(category, search, limit)
	if err != nil {
		utils.LogError(err, "GetMaterials: Error from materialService.GetMaterials")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch materials.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, materials)
}

// GetMaterialByID handles fetching a single material.
func (h *MaterialHandler) GetMaterialByID(c *gin.Context) {
	material, err := h.materialService.GetMaterialByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrMaterialNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Material not found.", ""))
		} else {
			utils.LogError(err, "GetMaterialByID: Error from materialService.GetMaterialByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch material.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, material)
}

// UpdateMaterial handles updating an existing material.
func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	var req services.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	material, err := h.materialService.UpdateMaterial(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrMaterialNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Material not found.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "UpdateMaterial: Error from materialService.UpdateMaterial")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update material.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, material)
}

// DeleteMaterial handles deleting a material.
func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	if err := h.materialService.DeleteMaterial(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrMaterialNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Material not found.", ""))
		} else {
			utils.LogError(err, "DeleteMaterial: Error from materialService.DeleteMaterial")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete material.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Material deleted successfully"})
}

// GetLowStockMaterials returns every material at or below its minimum stock.
func (h *MaterialHandler) GetLowStockMaterials(c *gin.Context) {
	materials, err := h.materialService.GetLowStockMaterials()
	if err != nil {
		utils.LogError(err, "GetLowStockMaterials: Error from materialService.GetLowStockMaterials")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch low stock materials.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(materials), "materials": materials})
}

// LinkSupplier embeds a supplier snapshot onto a material.
func (h *MaterialHandler) LinkSupplier(c *gin.Context) {
	var req services.LinkSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	material, err := h.materialService.LinkSupplier(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrMaterialNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Material not found.", ""))
		} else if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "LinkSupplier: Error from materialService.LinkSupplier")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to link supplier.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, material)
}
