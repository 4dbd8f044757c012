package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-backend/internal/handler"
	"go-pos-backend/internal/middleware"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"
	"go-pos-backend/pkg/database"
	"go-pos-backend/pkg/mailer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.User{}, &model.OtpToken{},
		&model.Product{}, &model.Sale{}, &model.SaleItem{},
		&model.StockReceiving{}, &model.CashTransaction{},
	)

	// 3. Seed default owner account
	seedOwner(db)

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	receivingRepo := repository.NewStockReceivingRepo(db)
	financeRepo := repository.NewFinanceRepo(db)
	analyticsRepo := repository.NewAnalyticsRepo(db)
	userRepo := repository.NewUserRepo(db)
	otpRepo := repository.NewOtpRepo(db)

	otpMailer := mailer.New()

	productService := service.NewProductService(productRepo)
	salesService := service.NewSalesService(productRepo, saleRepo, financeRepo, db)
	receivingService := service.NewStockReceivingService(productRepo, receivingRepo, financeRepo, db)
	financeService := service.NewFinanceService(financeRepo, db)
	analyticsService := service.NewAnalyticsService(analyticsRepo)
	authService := service.NewAuthService(userRepo, otpRepo, otpMailer)

	productHandler := handler.NewProductHandler(productService)
	salesHandler := handler.NewSalesHandler(salesService)
	receivingHandler := handler.NewStockReceivingHandler(receivingService)
	financeHandler := handler.NewFinanceHandler(financeService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	authHandler := handler.NewAuthHandler(authService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Backend v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Auth Routes (No authentication required)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/verify-email", authHandler.VerifyEmail)
	auth.Post("/resend-otp", authHandler.ResendOtp)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Get("/me", middleware.RequireAuth(userRepo), authHandler.GetProfile)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Product Routes (catalog writes are owner-only)
	protected.Get("/products", productHandler.ListProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", middleware.RequireRole(model.RoleOwner), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireRole(model.RoleOwner), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleOwner), productHandler.DeleteProduct)

	// Sales Routes (cashiers check out, everyone authenticated can read)
	protected.Post("/sales", salesHandler.CreateSale)
	protected.Get("/sales", salesHandler.ListSales)
	protected.Get("/sales/summary", salesHandler.GetSummary)
	protected.Get("/sales/:id", salesHandler.GetSale)

	// Stock Receiving Routes (owner-only)
	protected.Post("/stock-receivings", middleware.RequireRole(model.RoleOwner), receivingHandler.ReceiveStock)
	protected.Get("/stock-receivings", receivingHandler.ListReceivings)

	// Finance Routes (owner-only)
	finance := protected.Group("/finance", middleware.RequireRole(model.RoleOwner))
	finance.Get("/transactions", financeHandler.ListTransactions)
	finance.Post("/transactions", financeHandler.CreateTransaction)
	finance.Delete("/transactions/:id", financeHandler.DeleteTransaction)
	finance.Get("/summary", financeHandler.GetSummary)

	// Analytics Routes (owner-only)
	analytics := protected.Group("/analytics", middleware.RequireRole(model.RoleOwner))
	analytics.Get("/dashboard", analyticsHandler.GetDashboard)
	analytics.Get("/sales", analyticsHandler.GetSalesReport)
	analytics.Get("/profit-loss", analyticsHandler.GetProfitLossReport)

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedOwner creates the default owner account if no user exists yet
func seedOwner(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("SEED_OWNER_EMAIL")
	if email == "" {
		email = "owner@example.com"
	}
	password := os.Getenv("SEED_OWNER_PASSWORD")
	if password == "" {
		password = "owner123"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	owner := &model.User{
		Email:      email,
		Role:       model.RoleOwner,
		IsVerified: true,
	}
	if err := owner.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash owner password: %v", err)
		return
	}

	if err := userRepo.Create(owner); err != nil {
		log.Printf("Warning: Failed to create owner user: %v", err)
	} else {
		log.Printf("✅ Owner user created: %s / %s", email, password)
	}
}
