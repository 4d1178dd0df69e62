package services

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset_inventory_backend/internal/models"
)

func newMaterialFixture() (MaterialService, *fakeMaterialRepo, *fakeSupplierRepo) {
	materialRepo := newFakeMaterialRepo()
	supplierRepo := newFakeSupplierRepo()
	svc := NewMaterialService(materialRepo, supplierRepo, nil)
	return svc, materialRepo, supplierRepo
}

func TestCreateMaterialDefaults(t *testing.T) {
	svc, materialRepo, _ := newMaterialFixture()

	material, err := svc.CreateMaterial(CreateMaterialRequest{Name: "Copper pipe 15mm"})
	require.NoError(t, err)
	require.NotNil(t, material)

	assert.NotEmpty(t, material.ID)
	assert.Equal(t, "general", material.Category)
	assert.Equal(t, "pieces", material.Unit)
	assert.Equal(t, 0, material.Quantity)
	assert.Equal(t, 0, material.MinStock)
	assert.True(t, strings.HasPrefix(material.QRCode, "MAT-"), "qr code %q", material.QRCode)
	assert.Len(t, material.QRCode, len("MAT-")+8)

	stored, ok := materialRepo.materials[material.ID]
	require.True(t, ok)
	assert.Equal(t, material.Name, stored.Name)
}

func TestCreateMaterialValidation(t *testing.T) {
	svc, _, _ := newMaterialFixture()

	tests := []struct {
		name string
		req  CreateMaterialRequest
	}{
		{name: "empty name", req: CreateMaterialRequest{Name: "   "}},
		{name: "negative quantity", req: CreateMaterialRequest{Name: "x", Quantity: -1}},
		{name: "negative min stock", req: CreateMaterialRequest{Name: "x", MinStock: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateMaterial(tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdateMaterialPartial(t *testing.T) {
	svc, _, _ := newMaterialFixture()

	material, err := svc.CreateMaterial(CreateMaterialRequest{
		Name:     "PTFE tape",
		Quantity: 12,
		MinStock: 3,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateMaterial(material.ID, UpdateMaterialRequest{Quantity: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
	// Untouched fields keep their values.
	assert.Equal(t, "PTFE tape", updated.Name)
	assert.Equal(t, 3, updated.MinStock)
}

func TestUpdateMaterialNotFound(t *testing.T) {
	svc, _, _ := newMaterialFixture()

	_, err := svc.UpdateMaterial(gofakeit.UUID(), UpdateMaterialRequest{Quantity: intPtr(1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaterialNotFound)
}

func TestGetLowStockMaterialsBoundary(t *testing.T) {
	svc, materialRepo, _ := newMaterialFixture()
	atThreshold := seedMaterial(materialRepo, 5, 5)
	below := seedMaterial(materialRepo, 0, 2)
	seedMaterial(materialRepo, 6, 5)

	materials, err := svc.GetLowStockMaterials()
	require.NoError(t, err)
	require.Len(t, materials, 2)

	ids := []string{materials[0].ID, materials[1].ID}
	assert.Contains(t, ids, atThreshold.ID)
	assert.Contains(t, ids, below.ID)
}

func TestLinkSupplierSnapshot(t *testing.T) {
	svc, _, supplierRepo := newMaterialFixture()

	contact := gofakeit.Name()
	supplier := &models.Supplier{
		ID:            gofakeit.UUID(),
		Name:          gofakeit.Company(),
		Type:          "wholesale",
		ContactPerson: &contact,
	}
	supplierRepo.suppliers[supplier.ID] = supplier

	material, err := svc.CreateMaterial(CreateMaterialRequest{Name: "Pipe clips"})
	require.NoError(t, err)

	code := "PC-100"
	linked, err := svc.LinkSupplier(material.ID, LinkSupplierRequest{
		SupplierID:          supplier.ID,
		SupplierProductCode: &code,
	})
	require.NoError(t, err)

	require.NotNil(t, linked.Supplier)
	require.NotNil(t, linked.Supplier.ID)
	assert.Equal(t, supplier.ID, *linked.Supplier.ID)
	assert.Equal(t, supplier.Name, linked.Supplier.Name)
	require.NotNil(t, linked.Supplier.ContactPerson)
	assert.Equal(t, contact, *linked.Supplier.ContactPerson)
	require.NotNil(t, linked.SupplierProductCode)
	assert.Equal(t, code, *linked.SupplierProductCode)
}

func TestLinkSupplierUnknownSupplier(t *testing.T) {
	svc, _, _ := newMaterialFixture()

	material, err := svc.CreateMaterial(CreateMaterialRequest{Name: "Sealant"})
	require.NoError(t, err)

	_, err = svc.LinkSupplier(material.ID, LinkSupplierRequest{SupplierID: gofakeit.UUID()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestDeleteMaterial(t *testing.T) {
	svc, materialRepo, _ := newMaterialFixture()
	material := seedMaterial(materialRepo, 1, 0)

	require.NoError(t, svc.DeleteMaterial(material.ID))
	_, err := svc.GetMaterialByID(material.ID)
	assert.ErrorIs(t, err, ErrMaterialNotFound)

	err = svc.DeleteMaterial(material.ID)
	assert.ErrorIs(t, err, ErrMaterialNotFound)
}
