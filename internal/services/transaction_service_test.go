package services

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset_inventory_backend/internal/models"
)

func newTransactionFixture() (TransactionService, *fakeMaterialRepo, *fakeToolRepo, *fakeTransactionRepo) {
	materialRepo := newFakeMaterialRepo()
	toolRepo := newFakeToolRepo()
	transactionRepo := &fakeTransactionRepo{}
	svc := NewTransactionService(materialRepo, toolRepo, transactionRepo, fakeTxRunner{})
	return svc, materialRepo, toolRepo, transactionRepo
}

func seedMaterial(repo *fakeMaterialRepo, quantity, minStock int) *models.Material {
	material := &models.Material{
		ID:       gofakeit.UUID(),
		Name:     gofakeit.ProductName(),
		Category: "general",
		Quantity: quantity,
		Unit:     "pieces",
		MinStock: minStock,
	}
	repo.materials[material.ID] = material
	return material
}

func seedTool(repo *fakeToolRepo) *models.Tool {
	tool := &models.Tool{
		ID:        gofakeit.UUID(),
		Name:      gofakeit.ProductName(),
		Category:  "general",
		Status:    models.ToolStatusAvailable,
		Condition: models.ConditionGood,
	}
	repo.tools[tool.ID] = tool
	return tool
}

func intPtr(v int) *int { return &v }
func strPtr(s string) *string { return &s }

func TestProcessTakeDecrementsQuantity(t *testing.T) {
	svc, materialRepo, _, transactionRepo := newTransactionFixture()
	material := seedMaterial(materialRepo, 10, 2)

	transaction, err := svc.Process(CreateTransactionRequest{
		ItemID:          material.ID,
		ItemType:        models.ItemTypeMaterial,
		TransactionType: models.TransactionTake,
		Quantity:        intPtr(4),
		UserID:          gofakeit.UUID(),
		UserName:        gofakeit.Username(),
	})
	require.NoError(t, err)
	require.NotNil(t, transaction)

	assert.Equal(t, 6, materialRepo.materials[material.ID].Quantity)
	require.Len(t, transactionRepo.transactions, 1)
	assert.Equal(t, transaction.ID, transactionRepo.transactions[0].ID)
	assert.Equal(t, models.TransactionTake, transactionRepo.transactions[0].TransactionType)
}

func TestProcessTakeInsufficientStock(t *testing.T) {
	svc, materialRepo, _, transactionRepo := newTransactionFixture()
	material := seedMaterial(materialRepo, 3, 0)

	_, err := svc.Process(CreateTransactionRequest{
		ItemID:          material.ID,
		ItemType:        models.ItemTypeMaterial,
		TransactionType: models.TransactionTake,
		Quantity:        intPtr(5),
		UserID:          gofakeit.UUID(),
		UserName:        gofakeit.Username(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The failed take must leave both the quantity and the log untouched.
	assert.Equal(t, 3, materialRepo.materials[material.ID].Quantity)
	assert.Empty(t, transactionRepo.transactions)
}

func TestProcessTakeExactRemainingStock(t *testing.T) {
	svc, materialRepo, _, _ := newTransactionFixture()
	material := seedMaterial(materialRepo, 5, 0)

	_, err := svc.Process(CreateTransactionRequest{
		ItemID:          material.ID,
		ItemType:        models.ItemTypeMaterial,
		TransactionType: models.TransactionTake,
		Quantity:        intPtr(5),
		UserID:          gofakeit.UUID(),
		UserName:        gofakeit.Username(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, materialRepo.materials[material.ID].Quantity)
}

func TestProcessRestockIncrementsQuantity(t *testing.T) {
	svc, materialRepo, _, _ := newTransactionFixture()
	material := seedMaterial(materialRepo, 2, 0)

	_, err := svc.Process(CreateTransactionRequest{
		ItemID:          material.ID,
		ItemType:        models.ItemTypeMaterial,
		TransactionType: models.TransactionRestock,
		Quantity:        intPtr(8),
		UserID:          gofakeit.UUID(),
		UserName:        gofakeit.Username(),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, materialRepo.materials[material.ID].Quantity)
}

func TestProcessStockTakeOverwritesQuantity(t *testing.T) {
	svc, materialRepo, _, _ := newTransactionFixture()
	material := seedMaterial(materialRepo, 50, 0)

	_, err := svc.Process(CreateTransactionRequest{
		ItemID:          material.ID,
		ItemType:        models.ItemTypeMaterial,
		TransactionType: models.TransactionStockTake,
		Quantity:        intPtr(0),
		UserID:          gofakeit.UUID(),
		UserName:        gofakeit.Username(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, materialRepo.materials[material.ID].Quantity)
}

func TestProcessCheckOutAndCheckIn(t *testing.T) {
	svc, _, toolRepo, transactionRepo := newTransactionFixture()
	tool := seedTool(toolRepo)
	userName := gofakeit.Username()

	_, err := svc.Process(CreateTransactionRequest{
		ItemID:          tool.ID,
		ItemType:        models.ItemTypeTool,
		TransactionType: models.TransactionCheckOut,
		UserID:          gofakeit.UUID(),
		UserName:        userName,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ToolStatusInUse, toolRepo.tools[tool.ID].Status)
	require.NotNil(t, toolRepo.tools[tool.ID].CurrentUser)
	assert.Equal(t, userName, *toolRepo.tools[tool.ID].CurrentUser)

	_, err = svc.Process(CreateTransactionRequest{
		ItemID:          tool.ID,
		ItemType:        models.ItemTypeTool,
		TransactionType: models.TransactionCheckIn,
		Condition:       strPtr(models.ConditionFair),
		UserID:          gofakeit.UUID(),
		UserName:        userName,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ToolStatusAvailable, toolRepo.tools[tool.ID].Status)
	assert.Nil(t, toolRepo.tools[tool.ID].CurrentUser)
	assert.Equal(t, models.ConditionFair, toolRepo.tools[tool.ID].Condition)

	assert.Len(t, transactionRepo.transactions, 2)
}

func TestProcessValidation(t *testing.T) {
	svc, materialRepo, toolRepo, _ := newTransactionFixture()
	material := seedMaterial(materialRepo, 10, 0)
	tool := seedTool(toolRepo)

	tests := []struct {
		name string
		req  CreateTransactionRequest
	}{
		{
			name: "unknown item type",
			req: CreateTransactionRequest{
				ItemID: material.ID, ItemType: "vehicle", TransactionType: models.TransactionTake,
				Quantity: intPtr(1), UserID: "u", UserName: "n",
			},
		},
		{
			name: "unknown transaction type",
			req: CreateTransactionRequest{
				ItemID: material.ID, ItemType: models.ItemTypeMaterial, TransactionType: "borrow",
				Quantity: intPtr(1), UserID: "u", UserName: "n",
			},
		},
		{
			name: "missing quantity for material",
			req: CreateTransactionRequest{
				ItemID: material.ID, ItemType: models.ItemTypeMaterial, TransactionType: models.TransactionTake,
				UserID: "u", UserName: "n",
			},
		},
		{
			name: "zero quantity take",
			req: CreateTransactionRequest{
				ItemID: material.ID, ItemType: models.ItemTypeMaterial, TransactionType: models.TransactionTake,
				Quantity: intPtr(0), UserID: "u", UserName: "n",
			},
		},
		{
			name: "tool transaction type on material",
			req: CreateTransactionRequest{
				ItemID: material.ID, ItemType: models.ItemTypeMaterial, TransactionType: models.TransactionCheckOut,
				Quantity: intPtr(1), UserID: "u", UserName: "n",
			},
		},
		{
			name: "material transaction type on tool",
			req: CreateTransactionRequest{
				ItemID: tool.ID, ItemType: models.ItemTypeTool, TransactionType: models.TransactionTake,
				Quantity: intPtr(1), UserID: "u", UserName: "n",
			},
		},
		{
			name: "unknown condition on check in",
			req: CreateTransactionRequest{
				ItemID: tool.ID, ItemType: models.ItemTypeTool, TransactionType: models.TransactionCheckIn,
				Condition: strPtr("broken"), UserID: "u", UserName: "n",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Process(tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestProcessMaterialNotFound(t *testing.T) {
	svc, _, _, transactionRepo := newTransactionFixture()

	_, err := svc.Process(CreateTransactionRequest{
		ItemID:          gofakeit.UUID(),
		ItemType:        models.ItemTypeMaterial,
		TransactionType: models.TransactionTake,
		Quantity:        intPtr(1),
		UserID:          gofakeit.UUID(),
		UserName:        gofakeit.Username(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaterialNotFound)
	assert.Empty(t, transactionRepo.transactions)
}

// Walks a material through the full stock lifecycle against one shared store:
// a take drops it to the alert threshold, a restock is not enough to clear it,
// and only a corrective stock take recovers it.
func TestStockLifecycleLowStockRecovery(t *testing.T) {
	materialRepo := newFakeMaterialRepo()
	toolRepo := newFakeToolRepo()
	transactionRepo := &fakeTransactionRepo{}
	transactionSvc := NewTransactionService(materialRepo, toolRepo, transactionRepo, fakeTxRunner{})
	materialSvc := NewMaterialService(materialRepo, newFakeSupplierRepo(), nil)

	material := seedMaterial(materialRepo, 100, 20)
	userID := gofakeit.UUID()
	userName := gofakeit.Username()
	take := func(quantity int) {
		t.Helper()
		_, err := transactionSvc.Process(CreateTransactionRequest{
			ItemID:          material.ID,
			ItemType:        models.ItemTypeMaterial,
			TransactionType: models.TransactionTake,
			Quantity:        intPtr(quantity),
			UserID:          userID,
			UserName:        userName,
		})
		require.NoError(t, err)
	}
	lowStockIDs := func() []string {
		t.Helper()
		lowStock, err := materialSvc.GetLowStockMaterials()
		require.NoError(t, err)
		ids := make([]string, 0, len(lowStock))
		for _, m := range lowStock {
			ids = append(ids, m.ID)
		}
		return ids
	}

	// Healthy stock stays off the alert list.
	take(30)
	assert.Equal(t, 70, materialRepo.materials[material.ID].Quantity)
	assert.NotContains(t, lowStockIDs(), material.ID)

	// Dropping below min_stock raises the alert.
	take(60)
	assert.Equal(t, 10, materialRepo.materials[material.ID].Quantity)
	assert.Contains(t, lowStockIDs(), material.ID)

	// A small restock that stays at or under the threshold keeps the alert.
	_, err := transactionSvc.Process(CreateTransactionRequest{
		ItemID:          material.ID,
		ItemType:        models.ItemTypeMaterial,
		TransactionType: models.TransactionRestock,
		Quantity:        intPtr(5),
		UserID:          userID,
		UserName:        userName,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, materialRepo.materials[material.ID].Quantity)
	assert.Contains(t, lowStockIDs(), material.ID)

	// A stock take counting above the threshold clears it.
	_, err = transactionSvc.Process(CreateTransactionRequest{
		ItemID:          material.ID,
		ItemType:        models.ItemTypeMaterial,
		TransactionType: models.TransactionStockTake,
		Quantity:        intPtr(25),
		UserID:          userID,
		UserName:        userName,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, materialRepo.materials[material.ID].Quantity)
	assert.NotContains(t, lowStockIDs(), material.ID)

	// Every step above left an audit record.
	assert.Len(t, transactionRepo.transactions, 4)
}

func TestGetTransactionsFilters(t *testing.T) {
	svc, materialRepo, _, _ := newTransactionFixture()
	material := seedMaterial(materialRepo, 100, 0)
	userID := gofakeit.UUID()

	for i := 0; i < 3; i++ {
		_, err := svc.Process(CreateTransactionRequest{
			ItemID:          material.ID,
			ItemType:        models.ItemTypeMaterial,
			TransactionType: models.TransactionTake,
			Quantity:        intPtr(1),
			UserID:          userID,
			UserName:        gofakeit.Username(),
		})
		require.NoError(t, err)
	}

	transactions, err := svc.GetTransactions(strPtr(material.ID), nil, nil, 10)
	require.NoError(t, err)
	assert.Len(t, transactions, 3)

	transactions, err = svc.GetTransactions(nil, strPtr(gofakeit.UUID()), nil, 10)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}
