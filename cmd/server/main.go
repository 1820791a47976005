package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"siports-backend/internal/adapters/http/middleware"
	"siports-backend/internal/adapters/http/routes"
	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/adapters/persistence/repositories"
	"siports-backend/internal/config"
	"siports-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed catalog, admin and demo accounts
	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Fatalf("❌ Failed to seed database: %v", err)
	}

	// Start hourly cleanup of stale anonymous sessions
	cleanupService := services.NewCleanupService(repositories.NewUserRepository(db))
	if err := cleanupService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cleanup scheduler: %v", err)
	}
	defer cleanupService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SIPORTS API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
