package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-inventory-erp/internal/handler"
	"go-inventory-erp/internal/middleware"
	"go-inventory-erp/internal/model"
	"go-inventory-erp/internal/repository"
	"go-inventory-erp/internal/service"
	"go-inventory-erp/internal/ws"
	"go-inventory-erp/pkg/database"
	"go-inventory-erp/pkg/exchange"
	applogger "go-inventory-erp/pkg/logger"
	"go-inventory-erp/pkg/mailer"
	"go-inventory-erp/pkg/supplierapi"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}
	applogger.Init()

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	if err := db.AutoMigrate(
		&model.User{},
		&model.Supplier{},
		&model.Product{},
		&model.StockLog{},
		&model.PriceHistory{},
		&model.Sale{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	stockLogRepo := repository.NewStockLogRepo(db)
	priceHistoryRepo := repository.NewPriceHistoryRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	poRepo := repository.NewPurchaseOrderRepo(db)
	userRepo := repository.NewUserRepo(db)

	stockSvc := service.NewStockService(db, stockLogRepo, wsHub)
	priceRecorder := service.NewPriceRecorder(priceHistoryRepo)
	productSvc := service.NewProductService(db, productRepo, stockLogRepo, priceHistoryRepo, saleRepo, poRepo, stockSvc, priceRecorder)
	saleSvc := service.NewSaleService(db, productRepo, saleRepo, stockSvc)
	purchaseSvc := service.NewPurchaseService(db, poRepo, stockSvc)
	syncSvc := service.NewSyncService(db, productRepo, supplierapi.NewClient(), priceRecorder)
	alertSvc := service.NewAlertService(productRepo, mailer.NewSMTPMailerFromEnv(), wsHub)
	currencySvc := service.NewCurrencyService(exchange.NewClient())
	dashboardSvc := service.NewDashboardService(db, productRepo, saleRepo)
	reportSvc := service.NewReportService(productRepo)
	authSvc := service.NewAuthService(userRepo)

	productHandler := handler.NewProductHandler(productSvc, reportSvc)
	supplierHandler := handler.NewSupplierHandler(supplierRepo)
	saleHandler := handler.NewSaleHandler(saleSvc)
	poHandler := handler.NewPurchaseOrderHandler(purchaseSvc)
	syncHandler := handler.NewSyncHandler(syncSvc)
	currencyHandler := handler.NewCurrencyHandler(currencySvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	cronHandler := handler.NewCronHandler(syncSvc, alertSvc, os.Getenv("CRON_SECRET"))
	authHandler := handler.NewAuthHandler(authSvc, userRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Inventory ERP v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.RequireAuth(userRepo), authHandler.Me)

	// Cron uses a shared secret instead of a user JWT; GET so external
	// schedulers can hit it directly
	api.Get("/cron", cronHandler.Run)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/export", productHandler.ExportProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireAdmin(), productHandler.DeleteProduct)

	// Suppliers
	protected.Get("/suppliers", supplierHandler.GetSuppliers)
	protected.Get("/suppliers/:id", supplierHandler.GetSupplier)
	protected.Post("/suppliers", supplierHandler.CreateSupplier)
	protected.Put("/suppliers/:id", supplierHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", middleware.RequireAdmin(), supplierHandler.DeleteSupplier)

	// Sales
	protected.Get("/sales", saleHandler.GetSales)
	protected.Post("/sales", saleHandler.CreateSale)

	// Purchase Orders
	protected.Get("/purchase-orders", poHandler.GetOrders)
	protected.Get("/purchase-orders/:id", poHandler.GetOrder)
	protected.Post("/purchase-orders", poHandler.CreateOrder)
	protected.Patch("/purchase-orders/:id/status", poHandler.UpdateStatus)
	protected.Delete("/purchase-orders/:id", middleware.RequireAdmin(), poHandler.DeleteOrder)

	// Supplier Sync (admin only)
	protected.Post("/sync", middleware.RequireAdmin(), syncHandler.Sync)

	// Currency
	protected.Get("/currency/rates", currencyHandler.GetRates)
	protected.Get("/currency/convert", currencyHandler.Convert)

	// Registration is admin only
	protected.Post("/auth/register", middleware.RequireAdmin(), authHandler.Register)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// seedAdmin creates the default admin account if it does not exist yet.
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Name:  "Administrator",
		Email: email,
		Role:  model.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Warn().Err(err).Msg("failed to hash admin password")
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Warn().Err(err).Msg("failed to create admin user")
		return
	}
	log.Info().Str("email", email).Msg("admin user created")
}
