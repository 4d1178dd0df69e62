package services

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset_inventory_backend/internal/models"
)

func newStockTakeFixture() (StockTakeService, *fakeMaterialRepo, *fakeToolRepo, *fakeTransactionRepo, *fakeStockTakeRepo) {
	materialRepo := newFakeMaterialRepo()
	toolRepo := newFakeToolRepo()
	transactionRepo := &fakeTransactionRepo{}
	stockTakeRepo := &fakeStockTakeRepo{}
	svc := NewStockTakeService(materialRepo, toolRepo, transactionRepo, stockTakeRepo, fakeTxRunner{})
	return svc, materialRepo, toolRepo, transactionRepo, stockTakeRepo
}

func TestProcessStockTakeOverwritesCounts(t *testing.T) {
	svc, materialRepo, _, transactionRepo, stockTakeRepo := newStockTakeFixture()
	first := seedMaterial(materialRepo, 20, 5)
	second := seedMaterial(materialRepo, 3, 5)

	result, err := svc.ProcessStockTake(CreateStockTakeRequest{
		UserID:   gofakeit.UUID(),
		UserName: gofakeit.Username(),
		ItemType: models.ItemTypeMaterial,
		Entries: []models.StockTakeEntry{
			{ItemID: first.ID, ItemType: models.ItemTypeMaterial, CountedQuantity: intPtr(18)},
			{ItemID: second.ID, ItemType: models.ItemTypeMaterial, CountedQuantity: intPtr(0)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.StockTake)

	assert.Equal(t, 2, result.Applied)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 18, materialRepo.materials[first.ID].Quantity)
	assert.Equal(t, 0, materialRepo.materials[second.ID].Quantity)

	// One stock_take transaction per applied entry.
	require.Len(t, transactionRepo.transactions, 2)
	for _, transaction := range transactionRepo.transactions {
		assert.Equal(t, models.TransactionStockTake, transaction.TransactionType)
	}

	require.Len(t, stockTakeRepo.stockTakes, 1)
	assert.True(t, stockTakeRepo.stockTakes[0].Completed)
	assert.Len(t, stockTakeRepo.stockTakes[0].Entries, 2)
}

func TestProcessStockTakePartialFailure(t *testing.T) {
	svc, materialRepo, _, transactionRepo, stockTakeRepo := newStockTakeFixture()
	good := seedMaterial(materialRepo, 10, 0)
	missingID := gofakeit.UUID()

	result, err := svc.ProcessStockTake(CreateStockTakeRequest{
		UserID:   gofakeit.UUID(),
		UserName: gofakeit.Username(),
		ItemType: models.ItemTypeMaterial,
		Entries: []models.StockTakeEntry{
			{ItemID: good.ID, ItemType: models.ItemTypeMaterial, CountedQuantity: intPtr(9)},
			{ItemID: missingID, ItemType: models.ItemTypeMaterial, CountedQuantity: intPtr(4)},
			{ItemID: good.ID, ItemType: models.ItemTypeMaterial, CountedQuantity: nil},
		},
	})
	require.NoError(t, err)

	// A failing entry is reported and skipped; the others still apply and the
	// batch record is still written.
	assert.Equal(t, 1, result.Applied)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, missingID, result.Failed[0].ItemID)
	assert.NotEmpty(t, result.Failed[0].Reason)

	assert.Equal(t, 9, materialRepo.materials[good.ID].Quantity)
	assert.Len(t, transactionRepo.transactions, 1)
	require.Len(t, stockTakeRepo.stockTakes, 1)
	assert.True(t, stockTakeRepo.stockTakes[0].Completed)
}

func TestProcessStockTakeToolCondition(t *testing.T) {
	svc, _, toolRepo, transactionRepo, _ := newStockTakeFixture()
	tool := seedTool(toolRepo)

	result, err := svc.ProcessStockTake(CreateStockTakeRequest{
		UserID:   gofakeit.UUID(),
		UserName: gofakeit.Username(),
		ItemType: models.ItemTypeTool,
		Entries: []models.StockTakeEntry{
			{ItemID: tool.ID, ItemType: models.ItemTypeTool, Condition: strPtr(models.ConditionPoor)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, models.ConditionPoor, toolRepo.tools[tool.ID].Condition)
	require.Len(t, transactionRepo.transactions, 1)
	require.NotNil(t, transactionRepo.transactions[0].Condition)
	assert.Equal(t, models.ConditionPoor, *transactionRepo.transactions[0].Condition)
}

func TestProcessStockTakeEmptyBatch(t *testing.T) {
	svc, _, _, _, stockTakeRepo := newStockTakeFixture()

	_, err := svc.ProcessStockTake(CreateStockTakeRequest{
		UserID:   gofakeit.UUID(),
		UserName: gofakeit.Username(),
		ItemType: models.ItemTypeMaterial,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, stockTakeRepo.stockTakes)
}

func TestGetStockTakesLimit(t *testing.T) {
	svc, materialRepo, _, _, _ := newStockTakeFixture()
	material := seedMaterial(materialRepo, 10, 0)

	for i := 0; i < 3; i++ {
		_, err := svc.ProcessStockTake(CreateStockTakeRequest{
			UserID:   gofakeit.UUID(),
			UserName: gofakeit.Username(),
			ItemType: models.ItemTypeMaterial,
			Entries: []models.StockTakeEntry{
				{ItemID: material.ID, ItemType: models.ItemTypeMaterial, CountedQuantity: intPtr(i)},
			},
		})
		require.NoError(t, err)
	}

	stockTakes, err := svc.GetStockTakes(2)
	require.NoError(t, err)
	assert.Len(t, stockTakes, 2)
}
