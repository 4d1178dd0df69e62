package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"asset_inventory_backend/internal/ai"
	"asset_inventory_backend/internal/models"
	"asset_inventory_backend/internal/repositories"
	"asset_inventory_backend/pkg/utils"
)

// Scan method labels. The scan result is always tagged with one of these so
// callers (and tests) can tell a real model analysis from fallback data.
const (
	ScanMethodAI       = "AI-powered scan"
	ScanMethodFallback = "Enhanced fallback"
)

// --- Supplier DTOs ---

type CreateSupplierRequest struct {
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type"`
	Website       *string `json:"website"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	AccountNumber *string `json:"account_number"`
	DeliveryInfo  *string `json:"delivery_info"`
}

type UpdateSupplierRequest struct {
	Name          *string `json:"name"`
	Type          *string `json:"type"`
	Website       *string `json:"website"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	AccountNumber *string `json:"account_number"`
	DeliveryInfo  *string `json:"delivery_info"`
}

type AddSupplierProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	ProductCode string  `json:"product_code"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type ScanProductsRequest struct {
	Website *string `json:"website"`
}

// ScanResult is the tagged outcome of a product scan. Success is always true:
// every failure in the primary chain falls back to templated products.
type ScanResult struct {
	Success        bool                     `json:"success"`
	ProductsFound  int                      `json:"products_found"`
	Products       []models.SupplierProduct `json:"products"`
	ScanMethod     string                   `json:"scan_method"`
	FallbackReason *string                  `json:"fallback_reason,omitempty"`
}

// --- SupplierService Interface ---

type SupplierService interface {
	CreateSupplier(req CreateSupplierRequest) (*models.Supplier, error)
	GetSupplierByID(id string) (*models.Supplier, error)
	GetSuppliers(supplierType *string, limit int) ([]models.Supplier, error)
	UpdateSupplier(id string, req UpdateSupplierRequest) (*models.Supplier, error)
	DeleteSupplier(id string) error
	GetProducts(supplierID string) ([]models.SupplierProduct, error)
	AddProduct(supplierID string, req AddSupplierProductRequest) (*models.Supplier, error)
	ScanProducts(ctx context.Context, supplierID string, req ScanProductsRequest) (*ScanResult, error)
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
	scanner      ai.ProductScanner
	fetcher      ai.WebsiteFetcher
	db           repositories.SQLExecutor
}

// NewSupplierService creates a new instance of SupplierService. scanner may
// be nil when no model API key is configured; every scan then takes the
// fallback path.
func NewSupplierService(supplierRepo repositories.SupplierRepository, scanner ai.ProductScanner, fetcher ai.WebsiteFetcher, db repositories.SQLExecutor) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		scanner:      scanner,
		fetcher:      fetcher,
		db:           db,
	}
}

func (s *supplierService) CreateSupplier(req CreateSupplierRequest) (*models.Supplier, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: supplier name cannot be empty", ErrValidation)
	}
	supplier := &models.Supplier{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Type:          defaultString(req.Type, "general"),
		Website:       req.Website,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		AccountNumber: req.AccountNumber,
		DeliveryInfo:  req.DeliveryInfo,
		Products:      []models.SupplierProduct{},
	}
	if err := s.supplierRepo.Create(s.db, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) GetSupplierByID(id string) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) GetSuppliers(supplierType *string, limit int) ([]models.Supplier, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	suppliers, err := s.supplierRepo.GetAll(supplierType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *supplierService) UpdateSupplier(id string, req UpdateSupplierRequest) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to find supplier for update: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: supplier name cannot be empty if provided", ErrValidation)
		}
		supplier.Name = *req.Name
	}
	if req.Type != nil {
		supplier.Type = *req.Type
	}
	if req.Website != nil {
		supplier.Website = req.Website
	}
	if req.ContactPerson != nil {
		supplier.ContactPerson = req.ContactPerson
	}
	if req.Phone != nil {
		supplier.Phone = req.Phone
	}
	if req.Email != nil {
		supplier.Email = req.Email
	}
	if req.AccountNumber != nil {
		supplier.AccountNumber = req.AccountNumber
	}
	if req.DeliveryInfo != nil {
		supplier.DeliveryInfo = req.DeliveryInfo
	}

	if err := s.supplierRepo.Update(s.db, supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

func (s *supplierService) DeleteSupplier(id string) error {
	if err := s.supplierRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSupplierNotFound
		}
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}

func (s *supplierService) GetProducts(supplierID string) ([]models.SupplierProduct, error) {
	supplier, err := s.GetSupplierByID(supplierID)
	if err != nil {
		return nil, err
	}
	return supplier.Products, nil
}

func (s *supplierService) AddProduct(supplierID string, req AddSupplierProductRequest) (*models.Supplier, error) {
	supplier, err := s.GetSupplierByID(supplierID)
	if err != nil {
		return nil, err
	}
	supplier.Products = append(supplier.Products, models.SupplierProduct{
		Name:        req.Name,
		ProductCode: req.ProductCode,
		Category:    defaultString(req.Category, "hardware"),
		Price:       req.Price,
		Description: req.Description,
		SupplierID:  supplier.ID,
	})
	if err := s.supplierRepo.Update(s.db, supplier); err != nil {
		return nil, fmt.Errorf("failed to add supplier product: %w", err)
	}
	return supplier, nil
}

// ScanProducts produces exactly five product descriptors. The primary path
// fetches the supplier website and asks the model; any failure in that chain
// (no scanner, no website, fetch error, malformed model output) substitutes
// five templated products. The stored product list is replaced wholesale.
func (s *supplierService) ScanProducts(ctx context.Context, supplierID string, req ScanProductsRequest) (*ScanResult, error) {
	supplier, err := s.GetSupplierByID(supplierID)
	if err != nil {
		return nil, err
	}

	website := supplier.Website
	if req.Website != nil && *req.Website != "" {
		website = req.Website
	}

	products, scanErr := s.scanViaModel(ctx, supplier, website)
	result := &ScanResult{Success: true, ScanMethod: ScanMethodAI}
	if scanErr != nil {
		utils.LogInfo("Product scan fell back to templated data", map[string]interface{}{
			"supplier_id": supplier.ID,
			"reason":      scanErr.Error(),
		})
		products = fallbackProducts(supplier)
		reason := scanErr.Error()
		result.ScanMethod = ScanMethodFallback
		result.FallbackReason = &reason
	}

	for i := range products {
		products[i].SupplierID = supplier.ID
	}
	if err := s.supplierRepo.ReplaceProducts(s.db, supplier.ID, products, result.ScanMethod, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to store scanned products: %w", err)
	}

	result.Products = products
	result.ProductsFound = len(products)
	return result, nil
}

func (s *supplierService) scanViaModel(ctx context.Context, supplier *models.Supplier, website *string) ([]models.SupplierProduct, error) {
	if s.scanner == nil {
		return nil, errors.New("model API key not configured")
	}
	if website == nil || strings.TrimSpace(*website) == "" {
		return nil, errors.New("supplier has no website to scan")
	}
	text, err := s.fetcher.FetchText(ctx, *website)
	if err != nil {
		return nil, err
	}
	return s.scanner.ScanProducts(ctx, supplier.Name, supplier.Type, text)
}

// fallbackProducts synthesizes five deterministic products from the
// supplier's name and type.
func fallbackProducts(supplier *models.Supplier) []models.SupplierProduct {
	templates := []struct {
		name        string
		category    string
		price       float64
		description string
	}{
		{"Heavy Duty Work Gloves", "safety", 12.99, "Cut-resistant gloves for general maintenance work"},
		{"Cordless Drill Driver", "tools", 89.50, "18V drill driver with two batteries"},
		{"Electrical Insulation Tape", "electrical", 3.25, "19mm x 20m PVC tape, pack of 10"},
		{"PTFE Thread Seal Tape", "plumbing", 1.80, "12mm thread sealing tape for pipe fittings"},
		{"Assorted Screw Set", "hardware", 15.40, "1000-piece assorted wood and machine screws"},
	}

	products := make([]models.SupplierProduct, 0, len(templates))
	for i, t := range templates {
		products = append(products, models.SupplierProduct{
			Name:        fmt.Sprintf("%s %s", supplier.Name, t.name),
			ProductCode: fmt.Sprintf("%s-%03d", productCodePrefix(supplier), i+1),
			Category:    t.category,
			Price:       t.price,
			Description: t.description,
			SupplierID:  supplier.ID,
		})
	}
	return products
}

func productCodePrefix(supplier *models.Supplier) string {
	name := strings.ToUpper(strings.ReplaceAll(supplier.Name, " ", ""))
	if len(name) > 3 {
		name = name[:3]
	}
	if name == "" {
		name = "SUP"
	}
	return name
}
