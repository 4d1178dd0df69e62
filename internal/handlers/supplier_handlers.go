package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"asset_inventory_backend/internal/services"
	"asset_inventory_backend/pkg/utils"
)

// SupplierHandler holds the supplier service.
type SupplierHandler struct {
	supplierService services.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(ss services.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: ss}
}

// CreateSupplier handles creation of a new supplier.
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req services.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	supplier, err := h.supplierService.CreateSupplier(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "CreateSupplier: Error from supplierService.CreateSupplier")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create supplier.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

// GetSuppliers handles fetching all suppliers, optionally filtered by type.
func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	supplierType := utils.NewNullString(c.Query("type"))

	suppliers, err := h.supplierService.GetSuppliers(supplierType, limit)
	if err != nil {
		utils.LogError(err, "GetSuppliers: Error from supplierService.GetSuppliers")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch suppliers.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// GetSupplierByID handles fetching a single supplier.
func (h *SupplierHandler) GetSupplierByID(c *gin.Context) {
	supplier, err := h.supplierService.GetSupplierByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", ""))
		} else {
			utils.LogError(err, "GetSupplierByID: Error from supplierService.GetSupplierByID")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch supplier.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier handles updating an existing supplier.
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	var req services.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", ""))
		} else if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		} else {
			utils.LogError(err, "UpdateSupplier: Error from supplierService.UpdateSupplier")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update supplier.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles deleting a supplier.
func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	if err := h.supplierService.DeleteSupplier(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", ""))
		} else {
			utils.LogError(err, "DeleteSupplier: Error from supplierService.DeleteSupplier")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete supplier.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}

// GetSupplierProducts returns the supplier's embedded product catalog.
func (h *SupplierHandler) GetSupplierProducts(c *gin.Context) {
	products, err := h.supplierService.GetProducts(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", ""))
		} else {
			utils.LogError(err, "GetSupplierProducts: Error from supplierService.GetProducts")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch supplier products.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

// AddSupplierProduct appends one product to the supplier's catalog.
func (h *SupplierHandler) AddSupplierProduct(c *gin.Context) {
	var req services.AddSupplierProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	supplier, err := h.supplierService.AddProduct(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", ""))
		} else {
			utils.LogError(err, "AddSupplierProduct: Error from supplierService.AddProduct")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to add supplier product.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

// ScanProducts regenerates the supplier's catalog from its website. The
// response is always tagged with the scan method so callers can tell a real
// model analysis from fallback data.
func (h *SupplierHandler) ScanProducts(c *gin.Context) {
	var req services.ScanProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.supplierService.ScanProducts(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Supplier not found.", ""))
		} else {
			utils.LogError(err, "ScanProducts: Error from supplierService.ScanProducts")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to scan supplier products.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
