package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gearboxhq/autoshop-backend/config"
	"github.com/gearboxhq/autoshop-backend/internal/app/controller"
	"github.com/gearboxhq/autoshop-backend/internal/app/repository"
	"github.com/gearboxhq/autoshop-backend/internal/app/service"
	"github.com/gearboxhq/autoshop-backend/internal/db"
	"github.com/gearboxhq/autoshop-backend/internal/middleware"
	"github.com/gearboxhq/autoshop-backend/internal/router"
	"github.com/gearboxhq/autoshop-backend/internal/scheduler"
	"github.com/gearboxhq/autoshop-backend/internal/storage"
	"github.com/gearboxhq/autoshop-backend/pkg/logger"
	"github.com/gearboxhq/autoshop-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Autoshop Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations and seed the baseline data
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs token revocation; the server runs without it when disabled
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
	}

	// S3 storage for part images
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	customerRepo := repository.NewCustomerRepository(db.GetDB())
	vehicleRepo := repository.NewVehicleRepository(db.GetDB())
	appointmentRepo := repository.NewAppointmentRepository(db.GetDB())
	estimateRepo := repository.NewEstimateRepository(db.GetDB())
	workOrderRepo := repository.NewWorkOrderRepository(db.GetDB())
	invoiceRepo := repository.NewInvoiceRepository(db.GetDB())
	partRepo := repository.NewPartRepository(db.GetDB())
	serviceRepo := repository.NewServiceRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	supplierRepo := repository.NewSupplierRepository(db.GetDB())
	bayRepo := repository.NewBayRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	customerService := service.NewCustomerService(customerRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, customerRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, customerRepo, vehicleRepo)
	estimateService := service.NewEstimateService(estimateRepo, workOrderRepo, customerRepo, vehicleRepo)
	workOrderService := service.NewWorkOrderService(workOrderRepo, customerRepo, vehicleRepo, userRepo, bayRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, workOrderRepo, cfg.Billing.InvoiceDueDays)
	inventoryService := service.NewInventoryService(partRepo, supplierRepo, s3Storage)
	catalogService := service.NewCatalogService(serviceRepo, categoryRepo)
	bayService := service.NewBayService(bayRepo)
	reportService := service.NewReportService(invoiceRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	customerController := controller.NewCustomerController(customerService, vehicleService)
	vehicleController := controller.NewVehicleController(vehicleService)
	appointmentController := controller.NewAppointmentController(appointmentService)
	estimateController := controller.NewEstimateController(estimateService)
	workOrderController := controller.NewWorkOrderController(workOrderService)
	invoiceController := controller.NewInvoiceController(invoiceService)
	partController := controller.NewPartController(inventoryService)
	supplierController := controller.NewSupplierController(inventoryService)
	catalogController := controller.NewCatalogController(catalogService)
	bayController := controller.NewBayController(bayService)
	reportController := controller.NewReportController(reportService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		customerController,
		vehicleController,
		appointmentController,
		estimateController,
		workOrderController,
		invoiceController,
		partController,
		supplierController,
		catalogController,
		bayController,
		reportController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Daily billing sweep
	billingScheduler := scheduler.NewBillingScheduler(
		cfg.Billing.SweepSchedule,
		invoiceService,
		estimateService,
	)
	if err := billingScheduler.Start(); err != nil {
		logger.Fatal("Failed to start billing scheduler", err)
	}
	defer billingScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
