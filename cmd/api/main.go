package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-catalog-ws/internal/config"
	"go-catalog-ws/internal/handler"
	"go-catalog-ws/internal/middleware"
	"go-catalog-ws/internal/repository"
	"go-catalog-ws/internal/seed"
	"go-catalog-ws/internal/service"
	"go-catalog-ws/internal/telemetry"
	"go-catalog-ws/internal/ws"
	"go-catalog-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	appLogger := telemetry.NewLogger(os.Stdout, cfg.Server.LogLevel, cfg.OTLP.ServiceName, cfg.OTLP.Environment)
	slog.SetDefault(appLogger)

	// 2. Telemetry
	telem, err := telemetry.New(context.Background(), &cfg.OTLP, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	// 3. Setup Database
	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database. \n", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database. \n", err)
	}
	appLogger.Info("Database connection established")

	// 4. Setup WebSocket Hub
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	wsHub := ws.NewHub(appLogger)
	go wsHub.Run(hubCtx)

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	productService := service.NewProductService(productRepo, wsHub, appLogger, telem.Tracer(), telem.Metrics)
	seeder := seed.NewSeeder(productService, appLogger)

	productHandler := handler.NewProductHandler(productService, cfg.Pagination.DefaultLimit)
	seedHandler := handler.NewSeedHandler(seeder)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.Server.AppName,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/metrics", adaptor.HTTPHandler(telem.Metrics.Handler()))

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Get("/products", productHandler.GetProducts)
	api.Get("/products/:term", productHandler.GetProduct)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth())

	protected.Post("/products", middleware.RequirePrivilege("product:create"), productHandler.CreateProduct)
	protected.Patch("/products/:id", middleware.RequirePrivilege("product:update"), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), productHandler.DeleteProduct)
	protected.Post("/seed", middleware.RequireAnyPrivilege("catalog:seed", "catalog:admin"), seedHandler.RunSeed)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	stopHub()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := telem.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Telemetry shutdown failed", slog.String("error", err.Error()))
	}

	appLogger.Info("Server exited")
}
