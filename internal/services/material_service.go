package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"asset_inventory_backend/internal/models"
	"asset_inventory_backend/internal/repositories"
)

// --- Material DTOs ---

type CreateMaterialRequest struct {
	Name                string              `json:"name" binding:"required"`
	Description         *string             `json:"description"`
	Category            string              `json:"category"`
	Quantity            int                 `json:"quantity"`
	Unit                string              `json:"unit"`
	MinStock            int                 `json:"min_stock"`
	Location            *string             `json:"location"`
	Supplier            *models.SupplierRef `json:"supplier"`
	SupplierProductCode *string             `json:"supplier_product_code"`
}

type UpdateMaterialRequest struct {
	Name                *string             `json:"name"`
	Description         *string             `json:"description"`
	Category            *string             `json:"category"`
	Quantity            *int                `json:"quantity"`
	Unit                *string             `json:"unit"`
	MinStock            *int                `json:"min_stock"`
	Location            *string             `json:"location"`
	Supplier            *models.SupplierRef `json:"supplier"`
	SupplierProductCode *string             `json:"supplier_product_code"`
}

// LinkSupplierRequest embeds a supplier snapshot onto a material or tool.
type LinkSupplierRequest struct {
	SupplierID          string  `json:"supplier_id" binding:"required"`
	SupplierProductCode *string `json:"supplier_product_code"`
}

// --- MaterialService Interface ---

type MaterialService interface {
	CreateMaterial(req CreateMaterialRequest) (*models.Material, error)
	GetMaterialByID(id string) (*models.Material, error)
	GetMaterials(category, search *string, limit int) ([]models.Material, error)
	UpdateMaterial(id string, req UpdateMaterialRequest) (*models.Material, error)
	DeleteMaterial(id string) error
	GetLowStockMaterials() ([]models.Material, error)
	LinkSupplier(materialID string, req LinkSupplierRequest) (*models.Material, error)
}

type materialService struct {
	materialRepo repositories.MaterialRepository
	supplierRepo repositories.SupplierRepository
	db           repositories.SQLExecutor
}

// NewMaterialService creates a new instance of MaterialService.
func NewMaterialService(materialRepo repositories.MaterialRepository, supplierRepo repositories.SupplierRepository, db repositories.SQLExecutor) MaterialService {
	return &materialService{
		materialRepo: materialRepo,
		supplierRepo: supplierRepo,
		db:           db,
	}
}

// lowStockResultCap bounds the low-stock scan; there is no pagination.
const lowStockResultCap = 1000

func (s *materialService) CreateMaterial(req CreateMaterialRequest) (*models.Material, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: material name cannot be empty", ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if req.MinStock < 0 {
		return nil, fmt.Errorf("%w: min_stock cannot be negative", ErrValidation)
	}

	id := uuid.NewString()
	material := &models.Material{
		ID:                  id,
		Name:                req.Name,
		Description:         req.Description,
		Category:            defaultString(req.Category, "general"),
		Quantity:            req.Quantity,
		Unit:                defaultString(req.Unit, "pieces"),
		MinStock:            req.MinStock,
		Location:            req.Location,
		Supplier:            req.Supplier,
		SupplierProductCode: req.SupplierProductCode,
		QRCode:              qrCode("MAT", id),
	}
	if err := s.materialRepo.Create(s.db, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	return material, nil
}

func (s *materialService) GetMaterialByID(id string) (*models.Material, error) {
	material, err := s.materialRepo.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return material, nil
}

func (s *materialService) GetMaterials(category, search *string, limit int) ([]models.Material, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	materials, err := s.materialRepo.GetAll(category, search, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get materials: %w", err)
	}
	return materials, nil
}

func (s *materialService) UpdateMaterial(id string, req UpdateMaterialRequest) (*models.Material, error) {
	material, err := s.materialRepo.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to find material for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: material name cannot be empty if provided", ErrValidation)
		}
		material.Name = *req.Name
	}
	if req.Description != nil {
		material.Description = req.Description
	}
	if req.Category != nil {
		material.Category = *req.Category
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
		}
		material.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		material.Unit = *req.Unit
	}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			return nil, fmt.Errorf("%w: min_stock cannot be negative", ErrValidation)
		}
		material.MinStock = *req.MinStock
	}
	if req.Location != nil {
		material.Location = req.Location
	}
	if req.Supplier != nil {
		material.Supplier = req.Supplier
	}
	if req.SupplierProductCode != nil {
		material.SupplierProductCode = req.SupplierProductCode
	}

	if err := s.materialRepo.Update(s.db, material); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to update material: %w", err)
	}
	return material, nil
}

// DeleteMaterial removes the record. Transaction history referencing it is
// orphaned, not cascaded.
func (s *materialService) DeleteMaterial(id string) error {
	if err := s.materialRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}

// GetLowStockMaterials returns every material with quantity <= min_stock.
// At-threshold stock counts as low.
func (s *materialService) GetLowStockMaterials() ([]models.Material, error) {
	materials, err := s.materialRepo.GetLowStock(lowStockResultCap)
	if err != nil {
		return nil, fmt.Errorf("failed to get low stock materials: %w", err)
	}
	return materials, nil
}

func (s *materialService) LinkSupplier(materialID string, req LinkSupplierRequest) (*models.Material, error) {
	if strings.TrimSpace(req.SupplierID) == "" {
		return nil, fmt.Errorf("%w: supplier_id is required", ErrValidation)
	}
	material, err := s.materialRepo.GetByID(s.db, materialID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to find material for linking: %w", err)
	}
	supplier, err := s.supplierRepo.GetByID(s.db, req.SupplierID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to find supplier for linking: %w", err)
	}

	material.Supplier = supplierSnapshot(supplier)
	material.SupplierProductCode = req.SupplierProductCode
	if err := s.materialRepo.Update(s.db, material); err != nil {
		return nil, fmt.Errorf("failed to link supplier: %w", err)
	}
	return material, nil
}

// supplierSnapshot denormalizes the supplier fields embedded into items.
func supplierSnapshot(supplier *models.Supplier) *models.SupplierRef {
	id := supplier.ID
	return &models.SupplierRef{
		ID:            &id,
		Name:          supplier.Name,
		ContactPerson: supplier.ContactPerson,
		Phone:         supplier.Phone,
		Email:         supplier.Email,
	}
}

// qrCode derives a short scannable code from the record's UUID.
func qrCode(prefix, id string) string {
	short := strings.ReplaceAll(id, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return prefix + "-" + strings.ToUpper(short)
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
