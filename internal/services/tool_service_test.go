package services

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset_inventory_backend/internal/models"
)

func newToolFixture() (ToolService, *fakeToolRepo, *fakeSupplierRepo) {
	toolRepo := newFakeToolRepo()
	supplierRepo := newFakeSupplierRepo()
	svc := NewToolService(toolRepo, supplierRepo, nil)
	return svc, toolRepo, supplierRepo
}

func TestCreateToolDefaults(t *testing.T) {
	svc, _, _ := newToolFixture()

	tool, err := svc.CreateTool(CreateToolRequest{Name: "Pipe threader"})
	require.NoError(t, err)

	assert.Equal(t, models.ToolStatusAvailable, tool.Status)
	assert.Equal(t, models.ConditionGood, tool.Condition)
	assert.Equal(t, "general", tool.Category)
	assert.True(t, strings.HasPrefix(tool.QRCode, "TL-"), "qr code %q", tool.QRCode)
}

func TestCreateToolRejectsUnknownEnums(t *testing.T) {
	svc, _, _ := newToolFixture()

	_, err := svc.CreateTool(CreateToolRequest{Name: "x", Status: "lost"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateTool(CreateToolRequest{Name: "x", Condition: "wrecked"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateToolDirectEdit(t *testing.T) {
	svc, toolRepo, _ := newToolFixture()
	tool := seedTool(toolRepo)
	userName := gofakeit.Username()

	// A direct edit can set in_use without a checkout transaction.
	updated, err := svc.UpdateTool(tool.ID, UpdateToolRequest{
		Status:      strPtr(models.ToolStatusInUse),
		CurrentUser: &userName,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ToolStatusInUse, updated.Status)
	require.NotNil(t, updated.CurrentUser)
	assert.Equal(t, userName, *updated.CurrentUser)

	_, err = svc.UpdateTool(tool.ID, UpdateToolRequest{Status: strPtr("lost")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddServiceRecord(t *testing.T) {
	svc, toolRepo, _ := newToolFixture()
	tool := seedTool(toolRepo)

	updated, err := svc.AddServiceRecord(tool.ID, AddServiceRecordRequest{
		Description: "Replaced chuck and greased gears",
		PerformedBy: gofakeit.Name(),
	})
	require.NoError(t, err)
	require.Len(t, updated.ServiceRecords, 1)
	assert.Equal(t, "Replaced chuck and greased gears", updated.ServiceRecords[0].Description)
	assert.False(t, updated.ServiceRecords[0].Date.IsZero())

	updated, err = svc.AddServiceRecord(tool.ID, AddServiceRecordRequest{
		Description: "Annual PAT test",
		PerformedBy: gofakeit.Name(),
	})
	require.NoError(t, err)
	assert.Len(t, updated.ServiceRecords, 2)
}

func TestToolLinkSupplier(t *testing.T) {
	svc, toolRepo, supplierRepo := newToolFixture()
	tool := seedTool(toolRepo)
	supplier := seedSupplier(supplierRepo, nil)

	linked, err := svc.LinkSupplier(tool.ID, LinkSupplierRequest{SupplierID: supplier.ID})
	require.NoError(t, err)
	require.NotNil(t, linked.Supplier)
	assert.Equal(t, supplier.Name, linked.Supplier.Name)
}

func TestGetToolsRejectsUnknownStatusFilter(t *testing.T) {
	svc, _, _ := newToolFixture()

	_, err := svc.GetTools(nil, strPtr("lost"), 10)
	assert.ErrorIs(t, err, ErrValidation)
}
