package server

import (
	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/farmstead/internal/config"
	"github.com/h4ks-com/farmstead/internal/handlers"
	"github.com/h4ks-com/farmstead/internal/metrics"
	"github.com/h4ks-com/farmstead/internal/middleware"
	"github.com/h4ks-com/farmstead/internal/repository"
	"github.com/h4ks-com/farmstead/internal/services"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/h4ks-com/farmstead/docs"
)

// New wires repositories, services and handlers into a gin engine.
func New(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	farmerRepo := repository.NewFarmerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	itemRepo := repository.NewItemRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	landRepo := repository.NewLandRepository(db)
	cropRepo := repository.NewCropRepository(db)
	reportRepo := repository.NewReportRepository(db)

	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenRepo, tokenService, logger)
	transactionService := services.NewTransactionService(itemRepo, transactionRepo, db, logger)
	itemService := services.NewItemService(itemRepo)
	farmerService := services.NewFarmerService(farmerRepo, taskRepo, landRepo)
	taskService := services.NewTaskService(taskRepo, farmerRepo)
	assetService := services.NewAssetService(assetRepo)
	landService := services.NewLandService(landRepo, farmerRepo)
	cropService := services.NewCropService(cropRepo, landRepo)
	reportService := services.NewReportService(reportRepo)
	exportService := services.NewExportService(itemRepo, transactionRepo, cfg.ExportSigningKey)

	authMiddleware := middleware.NewAuthMiddleware(authService, logger)
	loginLimiter := middleware.NewRateLimiter(cfg.Login.RatePerMinute, cfg.Login.Burst, logger)

	publicHandler := handlers.NewPublicHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(authService)
	farmerHandler := handlers.NewFarmerHandler(farmerService)
	taskHandler := handlers.NewTaskHandler(taskService)
	itemHandler := handlers.NewItemHandler(itemService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	assetHandler := handlers.NewAssetHandler(assetService)
	landHandler := handlers.NewLandHandler(landService)
	cropHandler := handlers.NewCropHandler(cropService)
	reportHandler := handlers.NewReportHandler(reportService)
	exportHandler := handlers.NewExportHandler(exportService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/", publicHandler.Root)
	router.GET("/healthz", publicHandler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/docs", handlers.SwaggerUI("/swagger/doc.json"))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.POST("/token", loginLimiter.Handler(), authHandler.Login)
	router.POST("/users/register", authHandler.Register)

	authenticated := router.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		authenticated.GET("/users/me", authHandler.Me)
		authenticated.GET("/users/me/tokens", authHandler.ListTokens)
		authenticated.DELETE("/users/me/tokens/:id", authHandler.RevokeToken)

		farmers := authenticated.Group("/farmers")
		farmers.POST("", farmerHandler.CreateFarmer)
		farmers.GET("", farmerHandler.ListFarmers)
		farmers.GET("/:id", farmerHandler.GetFarmer)
		farmers.PUT("/:id", farmerHandler.UpdateFarmer)
		farmers.DELETE("/:id", farmerHandler.DeleteFarmer)
		farmers.GET("/:id/tasks", farmerHandler.FarmerTasks)
		farmers.GET("/:id/lands", farmerHandler.FarmerLands)

		tasks := authenticated.Group("/tasks")
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)

		items := authenticated.Group("/items")
		items.POST("", itemHandler.CreateItem)
		items.GET("", itemHandler.ListItems)
		items.GET("/:id", itemHandler.GetItem)
		items.PUT("/:id", itemHandler.UpdateItem)
		items.DELETE("/:id", itemHandler.DeleteItem)
		items.GET("/:id/transactions", transactionHandler.ItemTransactions)
		items.GET("/:id/ledger", exportHandler.ExportLedger)
		items.POST("/ledger/verify", exportHandler.VerifyExport)

		transactions := authenticated.Group("/transactions")
		transactions.POST("", transactionHandler.CreateTransaction)
		transactions.GET("", transactionHandler.ListTransactions)
		transactions.GET("/:id", transactionHandler.GetTransaction)

		assets := authenticated.Group("/assets")
		assets.POST("", assetHandler.CreateAsset)
		assets.GET("", assetHandler.ListAssets)
		assets.GET("/:id", assetHandler.GetAsset)
		assets.DELETE("/:id", assetHandler.DeleteAsset)

		lands := authenticated.Group("/lands")
		lands.POST("", landHandler.CreateLand)
		lands.GET("", landHandler.ListLands)
		lands.GET("/:id", landHandler.GetLand)
		lands.PUT("/:id", landHandler.UpdateLand)
		lands.DELETE("/:id", landHandler.DeleteLand)
		lands.PUT("/:id/assign/:farmer_id", landHandler.AssignFarmer)

		crops := authenticated.Group("/crops")
		crops.POST("", cropHandler.CreateCrop)
		crops.GET("", cropHandler.ListCrops)
		crops.GET("/:id", cropHandler.GetCrop)
		crops.PUT("/:id", cropHandler.UpdateCrop)
		crops.DELETE("/:id", cropHandler.DeleteCrop)
		crops.GET("/land/:id", cropHandler.LandCrops)
		crops.GET("/land/:id/4months", cropHandler.UpcomingCrops)

		reports := authenticated.Group("/reports")
		reports.GET("/summary", reportHandler.Summary)
		reports.GET("/farmers", reportHandler.Farmers)
		reports.GET("/items", reportHandler.Items)
		reports.GET("/transactions/summary", reportHandler.TransactionSummary)
	}

	admin := router.Group("/users")
	admin.Use(authMiddleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.POST("/", adminHandler.CreateUser)
		admin.GET("/", adminHandler.ListUsers)
		admin.PUT("/:id", adminHandler.UpdateUser)
		admin.DELETE("/:id", adminHandler.DeleteUser)
	}

	return router
}
