package router

import (
	"github.com/gin-gonic/gin"

	"asset_inventory_backend/internal/handlers"
	"asset_inventory_backend/internal/middleware"
	"asset_inventory_backend/internal/models"
)

// SetupPublicAuthRoutes sets up the unauthenticated auth routes.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.Login)
	group.POST("/refresh-token", authHandler.Refresh)
}

// SetupAuthenticatedAuthRoutes sets up the auth routes that need a valid token.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetMe)
}

// SetupUserRoutes sets up user management routes. Creating, updating and
// deleting accounts is restricted to supervisory roles.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, userHandler *handlers.UserHandler) {
	userRoutes := authenticatedGroup.Group("/users")
	{
		userRoutes.GET("", userHandler.GetUsers)
		userRoutes.GET("/:id", userHandler.GetUserByID)

		adminRoutes := userRoutes.Group("")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleOwner, models.RoleAdmin, models.RoleSupervisor))
		{
			adminRoutes.POST("", userHandler.CreateUser)
			adminRoutes.PUT("/:id", userHandler.UpdateUser)
			adminRoutes.DELETE("/:id", userHandler.DeleteUser)
		}
	}
}

// SetupMaterialRoutes sets up the material routes.
func SetupMaterialRoutes(authenticatedGroup *gin.RouterGroup, materialHandler *handlers.MaterialHandler) {
	materialRoutes := authenticatedGroup.Group("/materials")
	{
		materialRoutes.POST("", materialHandler.CreateMaterial)
		materialRoutes.GET("", materialHandler.GetMaterials)
		materialRoutes.GET("/alerts/low-stock", materialHandler.GetLowStockMaterials)
		materialRoutes.GET("/:id", materialHandler.GetMaterialByID)
		materialRoutes.PUT("/:id", materialHandler.UpdateMaterial)
		materialRoutes.DELETE("/:id", materialHandler.DeleteMaterial)
		materialRoutes.POST("/:id/link-supplier", materialHandler.LinkSupplier)
	}
}

// SetupToolRoutes sets up the tool routes.
func SetupToolRoutes(authenticatedGroup *gin.RouterGroup, toolHandler *handlers.ToolHandler) {
	toolRoutes := authenticatedGroup.Group("/tools")
	{
		toolRoutes.POST("", toolHandler.CreateTool)
		toolRoutes.GET("", toolHandler.GetTools)
		toolRoutes.GET("/:id", toolHandler.GetToolByID)
		toolRoutes.PUT("/:id", toolHandler.UpdateTool)
		toolRoutes.DELETE("/:id", toolHandler.DeleteTool)
		toolRoutes.POST("/:id/service-records", toolHandler.AddServiceRecord)
		toolRoutes.POST("/:id/link-supplier", toolHandler.LinkSupplier)
	}
}

// SetupTransactionRoutes sets up the transaction log routes.
func SetupTransactionRoutes(authenticatedGroup *gin.RouterGroup, transactionHandler *handlers.TransactionHandler) {
	transactionRoutes := authenticatedGroup.Group("/transactions")
	{
		transactionRoutes.POST("", transactionHandler.CreateTransaction)
		transactionRoutes.GET("", transactionHandler.GetTransactions)
	}
}

// SetupStockTakeRoutes sets up the stock-take routes.
func SetupStockTakeRoutes(authenticatedGroup *gin.RouterGroup, stockTakeHandler *handlers.StockTakeHandler) {
	stockTakeRoutes := authenticatedGroup.Group("/stock-takes")
	{
		stockTakeRoutes.POST("", stockTakeHandler.CreateStockTake)
		stockTakeRoutes.GET("", stockTakeHandler.GetStockTakes)
	}
}

// SetupSupplierRoutes sets up the supplier routes.
func SetupSupplierRoutes(authenticatedGroup *gin.RouterGroup, supplierHandler *handlers.SupplierHandler) {
	supplierRoutes := authenticatedGroup.Group("/suppliers")
	{
		supplierRoutes.POST("", supplierHandler.CreateSupplier)
		supplierRoutes.GET("", supplierHandler.GetSuppliers)
		supplierRoutes.GET("/:id", supplierHandler.GetSupplierByID)
		supplierRoutes.PUT("/:id", supplierHandler.UpdateSupplier)
		supplierRoutes.DELETE("/:id", supplierHandler.DeleteSupplier)
		supplierRoutes.GET("/:id/products", supplierHandler.GetSupplierProducts)
		supplierRoutes.POST("/:id/products", supplierHandler.AddSupplierProduct)
		supplierRoutes.POST("/:id/scan-products", supplierHandler.ScanProducts)
	}
}

// SetupDeliveryRoutes sets up the delivery routes.
func SetupDeliveryRoutes(authenticatedGroup *gin.RouterGroup, deliveryHandler *handlers.DeliveryHandler) {
	deliveryRoutes := authenticatedGroup.Group("/deliveries")
	{
		deliveryRoutes.POST("", deliveryHandler.CreateDelivery)
		deliveryRoutes.GET("", deliveryHandler.GetDeliveries)
		deliveryRoutes.GET("/analytics/dashboard", deliveryHandler.GetAnalytics)
		deliveryRoutes.GET("/search/advanced", deliveryHandler.SearchDeliveries)
		deliveryRoutes.GET("/:id", deliveryHandler.GetDeliveryByID)
		deliveryRoutes.PUT("/:id", deliveryHandler.UpdateDelivery)
		deliveryRoutes.DELETE("/:id", deliveryHandler.DeleteDelivery)
		deliveryRoutes.POST("/:id/process-delivery-note", deliveryHandler.ProcessDeliveryNote)
		deliveryRoutes.POST("/:id/confirm-and-update-inventory", deliveryHandler.ConfirmDelivery)
	}
}

// SetupErrorReportRoutes sets up the error report routes.
func SetupErrorReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ErrorReportHandler) {
	reportRoutes := authenticatedGroup.Group("/error-reports")
	{
		reportRoutes.POST("", reportHandler.CreateErrorReport)
		reportRoutes.GET("", reportHandler.GetErrorReports)
		reportRoutes.GET("/:id", reportHandler.GetErrorReportByID)
		reportRoutes.PUT("/:id", reportHandler.UpdateErrorReport)
		reportRoutes.POST("/:id/resolve", reportHandler.ResolveErrorReport)
		reportRoutes.DELETE("/:id", reportHandler.DeleteErrorReport)
	}
}
