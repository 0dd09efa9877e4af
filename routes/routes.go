package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yeminhtut/donortrack-be/config"
	"github.com/yeminhtut/donortrack-be/controllers"
	"github.com/yeminhtut/donortrack-be/middleware"
	"github.com/yeminhtut/donortrack-be/websocket"
)

func SetupRoutes() *gin.Engine {
	r := gin.Default()

	// Initialize controllers
	authController := controllers.NewAuthController()
	entityController := controllers.NewEntityController()
	transactionController := controllers.NewTransactionController()
	dashboardController := controllers.NewDashboardController()
	reportController := controllers.NewReportController()
	referenceController := controllers.NewReferenceController()
	adminController := controllers.NewAdminController()

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", authController.Login)
	}

	// Authenticated read routes (all roles)
	protected := r.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", authController.GetProfile)

		protected.GET("/entities", entityController.ListEntities)
		protected.GET("/entities/autocomplete", entityController.Autocomplete)

		protected.GET("/transactions", transactionController.ListTransactions)
		protected.GET("/transactions/:id", transactionController.GetTransaction)
		protected.GET("/attachments/:id", transactionController.DownloadAttachment)

		protected.GET("/currencies", referenceController.GetCurrencies)
		protected.GET("/purposes", referenceController.GetPurposes)

		protected.GET("/dashboard", dashboardController.Index)
		protected.GET("/reports", reportController.Index)
		protected.GET("/reports/export/csv", reportController.ExportCSV)
		protected.GET("/reports/export/xlsx", reportController.ExportXLSX)
		protected.GET("/reports/export/pdf", reportController.ExportPDF)

		protected.GET("/ws", websocket.HandleWebSocket(config.WSHub))
	}

	// Mutation routes (manager and admin)
	writer := r.Group("/api/v1")
	writer.Use(middleware.AuthMiddleware())
	writer.Use(middleware.ManagerOrAdmin())
	{
		writer.POST("/entities", entityController.CreateEntity)
		writer.PUT("/entities/:id", entityController.UpdateEntity)

		writer.POST("/transactions", transactionController.CreateTransaction)
		writer.PUT("/transactions/:id", transactionController.UpdateTransaction)
	}

	// Admin only routes
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminOnly())
	{
		// Deletion (soft by default, hard behind /hard)
		admin.DELETE("/entities/:id", entityController.SoftDeleteEntity)
		admin.DELETE("/entities/:id/hard", entityController.HardDeleteEntity)
		admin.DELETE("/transactions/:id", transactionController.SoftDeleteTransaction)
		admin.DELETE("/transactions/:id/hard", transactionController.HardDeleteTransaction)

		// User management
		admin.POST("/users", adminController.CreateUser)
		admin.GET("/users", adminController.GetUsers)
		admin.PUT("/users/:id", adminController.UpdateUser)

		// Reference data management
		admin.POST("/currencies", adminController.CreateCurrency)
		admin.PUT("/currencies/:id", adminController.UpdateCurrency)
		admin.POST("/purposes", adminController.CreatePurpose)
		admin.PUT("/purposes/:id", adminController.UpdatePurpose)

		// Audit trail review
		admin.GET("/audit-logs", adminController.GetAuditLogs)
	}

	return r
}
