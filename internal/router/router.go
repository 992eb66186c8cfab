package router

import (
	"github.com/gearboxhq/autoshop-backend/config"
	"github.com/gearboxhq/autoshop-backend/internal/app/controller"
	"github.com/gearboxhq/autoshop-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController        *controller.AuthController
	customerController    *controller.CustomerController
	vehicleController     *controller.VehicleController
	appointmentController *controller.AppointmentController
	estimateController    *controller.EstimateController
	workOrderController   *controller.WorkOrderController
	invoiceController     *controller.InvoiceController
	partController        *controller.PartController
	supplierController    *controller.SupplierController
	catalogController     *controller.CatalogController
	bayController         *controller.BayController
	reportController      *controller.ReportController
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	customerController *controller.CustomerController,
	vehicleController *controller.VehicleController,
	appointmentController *controller.AppointmentController,
	estimateController *controller.EstimateController,
	workOrderController *controller.WorkOrderController,
	invoiceController *controller.InvoiceController,
	partController *controller.PartController,
	supplierController *controller.SupplierController,
	catalogController *controller.CatalogController,
	bayController *controller.BayController,
	reportController *controller.ReportController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:        authController,
		customerController:    customerController,
		vehicleController:     vehicleController,
		appointmentController: appointmentController,
		estimateController:    estimateController,
		workOrderController:   workOrderController,
		invoiceController:     invoiceController,
		partController:        partController,
		supplierController:    supplierController,
		catalogController:     catalogController,
		bayController:         bayController,
		reportController:      reportController,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Autoshop API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate())
		{
			users.GET("",
				r.authMiddleware.RequireRole("shop_manager"),
				r.authController.GetUsers,
			)
			users.GET("/technicians", r.authController.GetTechnicians)
		}

		customers := v1.Group("/customers")
		customers.Use(r.authMiddleware.Authenticate())
		{
			customers.GET("", r.customerController.GetCustomers)
			customers.GET("/:id", r.customerController.GetCustomerByID)
			customers.GET("/:id/vehicles", r.customerController.GetCustomerVehicles)
			customers.POST("", r.customerController.CreateCustomer)
			customers.PUT("/:id", r.customerController.UpdateCustomer)
			customers.DELETE("/:id",
				r.authMiddleware.RequireRole("shop_manager"),
				r.customerController.DeleteCustomer,
			)
		}

		vehicles := v1.Group("/vehicles")
		vehicles.Use(r.authMiddleware.Authenticate())
		{
			vehicles.GET("", r.vehicleController.GetVehicles)
			vehicles.GET("/:id", r.vehicleController.GetVehicleByID)
			vehicles.POST("", r.vehicleController.CreateVehicle)
			vehicles.PUT("/:id", r.vehicleController.UpdateVehicle)
			vehicles.DELETE("/:id",
				r.authMiddleware.RequireRole("shop_manager"),
				r.vehicleController.DeleteVehicle,
			)
		}

		appointments := v1.Group("/appointments")
		appointments.Use(r.authMiddleware.Authenticate())
		{
			appointments.GET("", r.appointmentController.GetAppointments)
			appointments.GET("/:id", r.appointmentController.GetAppointmentByID)
			appointments.POST("", r.appointmentController.CreateAppointment)
			appointments.PUT("/:id", r.appointmentController.UpdateAppointment)
			appointments.PATCH("/:id/status", r.appointmentController.UpdateAppointmentStatus)
			appointments.DELETE("/:id", r.appointmentController.DeleteAppointment)
		}

		estimates := v1.Group("/estimates")
		estimates.Use(r.authMiddleware.Authenticate())
		{
			estimates.GET("", r.estimateController.GetEstimates)
			estimates.GET("/:id", r.estimateController.GetEstimateByID)
			estimates.POST("", r.estimateController.CreateEstimate)
			estimates.PUT("/:id", r.estimateController.UpdateEstimate)
			estimates.PATCH("/:id/status", r.estimateController.UpdateEstimateStatus)
			estimates.POST("/:id/convert",
				r.authMiddleware.RequireRole("service_advisor", "shop_manager"),
				r.estimateController.ConvertEstimate,
			)
			estimates.DELETE("/:id", r.estimateController.DeleteEstimate)
		}

		workOrders := v1.Group("/work-orders")
		workOrders.Use(r.authMiddleware.Authenticate())
		{
			workOrders.GET("", r.workOrderController.GetWorkOrders)
			workOrders.GET("/:id", r.workOrderController.GetWorkOrderByID)
			workOrders.POST("", r.workOrderController.CreateWorkOrder)
			workOrders.PUT("/:id", r.workOrderController.UpdateWorkOrder)
			workOrders.PATCH("/:id/status", r.workOrderController.UpdateWorkOrderStatus)
			workOrders.PATCH("/:id/assign",
				r.authMiddleware.RequireRole("service_advisor", "shop_manager"),
				r.workOrderController.AssignTechnician,
			)
			workOrders.DELETE("/:id",
				r.authMiddleware.RequireRole("shop_manager"),
				r.workOrderController.DeleteWorkOrder,
			)
		}

		invoices := v1.Group("/invoices")
		invoices.Use(r.authMiddleware.Authenticate())
		{
			invoices.GET("", r.invoiceController.GetInvoices)
			invoices.GET("/:id", r.invoiceController.GetInvoiceByID)
			invoices.POST("",
				r.authMiddleware.RequireRole("cashier", "service_advisor", "shop_manager"),
				r.invoiceController.CreateInvoice,
			)
			invoices.POST("/:id/payments",
				r.authMiddleware.RequireRole("cashier", "shop_manager"),
				r.invoiceController.RecordPayment,
			)
			invoices.PATCH("/:id/status",
				r.authMiddleware.RequireRole("cashier", "shop_manager"),
				r.invoiceController.UpdateInvoiceStatus,
			)
			invoices.DELETE("/:id",
				r.authMiddleware.RequireRole("shop_manager"),
				r.invoiceController.DeleteInvoice,
			)
		}

		parts := v1.Group("/parts")
		parts.Use(r.authMiddleware.Authenticate())
		{
			parts.GET("", r.partController.GetParts)
			parts.GET("/:id", r.partController.GetPartByID)
			parts.POST("",
				r.authMiddleware.RequireRole("parts_manager", "shop_manager"),
				r.partController.CreatePart,
			)
			parts.PUT("/:id",
				r.authMiddleware.RequireRole("parts_manager", "shop_manager"),
				r.partController.UpdatePart,
			)
			parts.PATCH("/:id/stock",
				r.authMiddleware.RequireRole("parts_manager", "shop_manager"),
				r.partController.AdjustStock,
			)
			parts.POST("/upload-image",
				r.authMiddleware.RequireRole("parts_manager", "shop_manager"),
				r.partController.UploadImage,
			)
			parts.DELETE("/:id",
				r.authMiddleware.RequireRole("parts_manager", "shop_manager"),
				r.partController.DeletePart,
			)
		}

		suppliers := v1.Group("/suppliers")
		suppliers.Use(r.authMiddleware.Authenticate())
		{
			suppliers.GET("", r.supplierController.GetSuppliers)
			suppliers.GET("/:id", r.supplierController.GetSupplierByID)
			suppliers.POST("",
				r.authMiddleware.RequireRole("parts_manager", "shop_manager"),
				r.supplierController.CreateSupplier,
			)
			suppliers.PUT("/:id",
				r.authMiddleware.RequireRole("parts_manager", "shop_manager"),
				r.supplierController.UpdateSupplier,
			)
			suppliers.DELETE("/:id",
				r.authMiddleware.RequireRole("shop_manager"),
				r.supplierController.DeleteSupplier,
			)
		}

		services := v1.Group("/services")
		services.Use(r.authMiddleware.Authenticate())
		{
			services.GET("", r.catalogController.GetServices)
			services.GET("/:id", r.catalogController.GetServiceByID)
			services.POST("",
				r.authMiddleware.RequireRole("shop_manager"),
				r.catalogController.CreateService,
			)
			services.PUT("/:id",
				r.authMiddleware.RequireRole("shop_manager"),
				r.catalogController.UpdateService,
			)
			services.DELETE("/:id",
				r.authMiddleware.RequireRole("shop_manager"),
				r.catalogController.DeleteService,
			)
		}

		categories := v1.Group("/categories")
		categories.Use(r.authMiddleware.Authenticate())
		{
			categories.GET("", r.catalogController.GetCategories)
			categories.GET("/:id", r.catalogController.GetCategoryByID)
			categories.POST("",
				r.authMiddleware.RequireRole("shop_manager"),
				r.catalogController.CreateCategory,
			)
			categories.PUT("/:id",
				r.authMiddleware.RequireRole("shop_manager"),
				r.catalogController.UpdateCategory,
			)
			categories.DELETE("/:id",
				r.authMiddleware.RequireRole("shop_manager"),
				r.catalogController.DeleteCategory,
			)
		}

		bays := v1.Group("/bays")
		bays.Use(r.authMiddleware.Authenticate())
		{
			bays.GET("", r.bayController.GetBays)
			bays.GET("/:id", r.bayController.GetBayByID)
			bays.POST("",
				r.authMiddleware.RequireRole("shop_manager"),
				r.bayController.CreateBay,
			)
			bays.PUT("/:id",
				r.authMiddleware.RequireRole("shop_manager"),
				r.bayController.UpdateBay,
			)
			bays.PATCH("/:id/status", r.bayController.UpdateBayStatus)
			bays.DELETE("/:id",
				r.authMiddleware.RequireRole("shop_manager"),
				r.bayController.DeleteBay,
			)
		}

		reports := v1.Group("/reports")
		reports.Use(r.authMiddleware.Authenticate())
		reports.Use(r.authMiddleware.RequireRole("shop_manager"))
		{
			reports.GET("/revenue", r.reportController.GetRevenueSummary)
			reports.GET("/revenue/export", r.reportController.ExportRevenue)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
