package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"asset_inventory_backend/internal/ai"
	"asset_inventory_backend/internal/handlers"
	"asset_inventory_backend/internal/middleware"
	"asset_inventory_backend/internal/repositories"
	"asset_inventory_backend/internal/services"
)

// Setup initializes the routing for the application. aiClient may be nil when
// no model API key is configured; the scan endpoints then always fall back.
func Setup(engine *gin.Engine, db *sql.DB, aiClient *ai.Client) {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	materialRepo := repositories.NewMaterialRepository(db)
	toolRepo := repositories.NewToolRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	stockTakeRepo := repositories.NewStockTakeRepository(db)
	supplierRepo := repositories.NewSupplierRepository(db)
	deliveryRepo := repositories.NewDeliveryRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	reportRepo := repositories.NewErrorReportRepository(db)
	runner := repositories.NewTxRunner(db)

	// Initialize Services
	var scanner ai.ProductScanner
	var reader ai.DeliveryNoteReader
	if aiClient != nil {
		scanner = aiClient
		reader = aiClient
	}

	authService := services.NewAuthService(userRepo, db)
	userService := services.NewUserService(userRepo, db)
	materialService := services.NewMaterialService(materialRepo, supplierRepo, db)
	toolService := services.NewToolService(toolRepo, supplierRepo, db)
	transactionService := services.NewTransactionService(materialRepo, toolRepo, transactionRepo, runner)
	stockTakeService := services.NewStockTakeService(materialRepo, toolRepo, transactionRepo, stockTakeRepo, runner)
	supplierService := services.NewSupplierService(supplierRepo, scanner, ai.NewWebsiteFetcher(), db)
	deliveryService := services.NewDeliveryService(deliveryRepo, materialRepo, toolRepo, notificationRepo, reader, db)
	reportService := services.NewErrorReportService(reportRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	materialHandler := handlers.NewMaterialHandler(materialService)
	toolHandler := handlers.NewToolHandler(toolService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	stockTakeHandler := handlers.NewStockTakeHandler(stockTakeService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	deliveryHandler := handlers.NewDeliveryHandler(deliveryService)
	reportHandler := handlers.NewErrorReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupUserRoutes(authenticated, userHandler)
		SetupMaterialRoutes(authenticated, materialHandler)
		SetupToolRoutes(authenticated, toolHandler)
		SetupTransactionRoutes(authenticated, transactionHandler)
		SetupStockTakeRoutes(authenticated, stockTakeHandler)
		SetupSupplierRoutes(authenticated, supplierHandler)
		SetupDeliveryRoutes(authenticated, deliveryHandler)
		SetupErrorReportRoutes(authenticated, reportHandler)
	}
}
