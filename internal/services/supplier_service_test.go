package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset_inventory_backend/internal/models"
)

type stubScanner struct {
	products []models.SupplierProduct
	err      error
}

func (s stubScanner) ScanProducts(_ context.Context, _, _, _ string) ([]models.SupplierProduct, error) {
	return s.products, s.err
}

type stubFetcher struct {
	text string
	err  error
}

func (s stubFetcher) FetchText(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func seedSupplier(repo *fakeSupplierRepo, website *string) *models.Supplier {
	supplier := &models.Supplier{
		ID:      gofakeit.UUID(),
		Name:    "Apex Trade Supplies",
		Type:    "wholesale",
		Website: website,
	}
	repo.suppliers[supplier.ID] = supplier
	return supplier
}

func TestScanProductsFallbackWithoutScanner(t *testing.T) {
	supplierRepo := newFakeSupplierRepo()
	svc := NewSupplierService(supplierRepo, nil, stubFetcher{}, nil)
	supplier := seedSupplier(supplierRepo, strPtr("https://apex.example.com"))

	result, err := svc.ScanProducts(context.Background(), supplier.ID, ScanProductsRequest{})
	require.NoError(t, err)

	// Fallback still reports success, but the outcome is tagged.
	assert.True(t, result.Success)
	assert.Equal(t, ScanMethodFallback, result.ScanMethod)
	require.NotNil(t, result.FallbackReason)
	assert.NotEmpty(t, *result.FallbackReason)
	assert.Equal(t, 5, result.ProductsFound)
	require.Len(t, result.Products, 5)

	for _, product := range result.Products {
		assert.True(t, strings.HasPrefix(product.ProductCode, "APE-"), "product code %q", product.ProductCode)
		assert.Equal(t, supplier.ID, product.SupplierID)
	}

	stored := supplierRepo.suppliers[supplier.ID]
	assert.Len(t, stored.Products, 5)
	require.NotNil(t, stored.ScanMethod)
	assert.Equal(t, ScanMethodFallback, *stored.ScanMethod)
	assert.NotNil(t, stored.LastScanned)
}

func TestScanProductsFallbackWithoutWebsite(t *testing.T) {
	supplierRepo := newFakeSupplierRepo()
	svc := NewSupplierService(supplierRepo, stubScanner{}, stubFetcher{}, nil)
	supplier := seedSupplier(supplierRepo, nil)

	result, err := svc.ScanProducts(context.Background(), supplier.ID, ScanProductsRequest{})
	require.NoError(t, err)
	assert.Equal(t, ScanMethodFallback, result.ScanMethod)
	require.NotNil(t, result.FallbackReason)
	assert.Contains(t, *result.FallbackReason, "website")
}

func TestScanProductsFallbackOnFetchError(t *testing.T) {
	supplierRepo := newFakeSupplierRepo()
	svc := NewSupplierService(supplierRepo, stubScanner{}, stubFetcher{err: errors.New("connection refused")}, nil)
	supplier := seedSupplier(supplierRepo, strPtr("https://apex.example.com"))

	result, err := svc.ScanProducts(context.Background(), supplier.ID, ScanProductsRequest{})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, ScanMethodFallback, result.ScanMethod)
}

func TestScanProductsModelSuccess(t *testing.T) {
	supplierRepo := newFakeSupplierRepo()
	scanned := []models.SupplierProduct{
		{Name: "Angle grinder disc", ProductCode: "AGD-1", Category: "tools", Price: 4.5},
		{Name: "Masonry bit set", ProductCode: "MBS-7", Category: "tools", Price: 22.0},
	}
	svc := NewSupplierService(supplierRepo, stubScanner{products: scanned}, stubFetcher{text: "<html>catalog</html>"}, nil)
	supplier := seedSupplier(supplierRepo, strPtr("https://apex.example.com"))

	result, err := svc.ScanProducts(context.Background(), supplier.ID, ScanProductsRequest{})
	require.NoError(t, err)

	assert.Equal(t, ScanMethodAI, result.ScanMethod)
	assert.Nil(t, result.FallbackReason)
	assert.Equal(t, 2, result.ProductsFound)
	for _, product := range result.Products {
		assert.Equal(t, supplier.ID, product.SupplierID)
	}

	stored := supplierRepo.suppliers[supplier.ID]
	require.NotNil(t, stored.ScanMethod)
	assert.Equal(t, ScanMethodAI, *stored.ScanMethod)
}

func TestScanProductsWebsiteOverride(t *testing.T) {
	supplierRepo := newFakeSupplierRepo()
	// No stored website; the request supplies one, so the model path runs.
	svc := NewSupplierService(supplierRepo,
		stubScanner{products: []models.SupplierProduct{{Name: "Wall plugs", ProductCode: "WP-1"}}},
		stubFetcher{text: "catalog"}, nil)
	supplier := seedSupplier(supplierRepo, nil)

	result, err := svc.ScanProducts(context.Background(), supplier.ID, ScanProductsRequest{
		Website: strPtr("https://override.example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, ScanMethodAI, result.ScanMethod)
	assert.Equal(t, 1, result.ProductsFound)
}

func TestScanProductsReplacesWholesale(t *testing.T) {
	supplierRepo := newFakeSupplierRepo()
	svc := NewSupplierService(supplierRepo, nil, stubFetcher{}, nil)
	supplier := seedSupplier(supplierRepo, nil)
	supplierRepo.suppliers[supplier.ID].Products = []models.SupplierProduct{
		{Name: "Old product", ProductCode: "OLD-1"},
	}

	_, err := svc.ScanProducts(context.Background(), supplier.ID, ScanProductsRequest{})
	require.NoError(t, err)

	stored := supplierRepo.suppliers[supplier.ID]
	require.Len(t, stored.Products, 5)
	for _, product := range stored.Products {
		assert.NotEqual(t, "Old product", product.Name)
	}
}

func TestScanProductsUnknownSupplier(t *testing.T) {
	svc := NewSupplierService(newFakeSupplierRepo(), nil, stubFetcher{}, nil)

	_, err := svc.ScanProducts(context.Background(), gofakeit.UUID(), ScanProductsRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestAddProductAppends(t *testing.T) {
	supplierRepo := newFakeSupplierRepo()
	svc := NewSupplierService(supplierRepo, nil, stubFetcher{}, nil)
	supplier := seedSupplier(supplierRepo, nil)

	updated, err := svc.AddProduct(supplier.ID, AddSupplierProductRequest{
		Name:        "Hex key set",
		ProductCode: "HKS-9",
		Price:       8.99,
	})
	require.NoError(t, err)
	require.Len(t, updated.Products, 1)
	assert.Equal(t, "hardware", updated.Products[0].Category)
	assert.Equal(t, supplier.ID, updated.Products[0].SupplierID)
}

func TestCreateSupplierDefaultsType(t *testing.T) {
	svc := NewSupplierService(newFakeSupplierRepo(), nil, stubFetcher{}, nil)

	supplier, err := svc.CreateSupplier(CreateSupplierRequest{Name: gofakeit.Company()})
	require.NoError(t, err)
	assert.Equal(t, "general", supplier.Type)
	assert.NotNil(t, supplier.Products)
}
