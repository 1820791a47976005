package routes

import (
	"siports-backend/internal/adapters/http/handlers"
	"siports-backend/internal/adapters/http/middleware"
	"siports-backend/internal/adapters/persistence/repositories"
	"siports-backend/internal/config"
	"siports-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	actionRepo := repositories.NewValidationActionRepository(db)
	packageRepo := repositories.NewPackageRepository(db)

	// Initialize services
	notifyService := services.NewNotificationService(cfg.Notify.WebhookURL)
	authService := services.NewAuthService(userRepo, cfg)
	validationService := services.NewValidationService(userRepo, actionRepo, notifyService)
	packageService := services.NewPackageService(userRepo, packageRepo)
	dashboardService := services.NewDashboardService(db)
	chatbotService := services.NewChatbotService(cfg.Chatbot.ServiceURL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, notifyService)
	packageHandler := handlers.NewPackageHandler(packageService)
	adminHandler := handlers.NewAdminHandler(validationService, dashboardService)
	chatHandler := handlers.NewChatHandler(chatbotService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API group
	api := app.Group("/api")
	api.Get("/", healthHandler.APIInfo)

	// Public auth routes, tighter rate limit on credential endpoints
	authLimiter := middleware.AuthRateLimiter()
	auth := api.Group("/auth")
	auth.Post("/register", authLimiter, authHandler.Register)
	auth.Post("/login", authLimiter, authHandler.Login)
	auth.Post("/visitor-login", authLimiter, authHandler.VisitorLogin)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Public catalog routes
	api.Get("/visitor-packages", packageHandler.VisitorPackages)
	api.Get("/partnership-packages", packageHandler.PartnershipPackages)
	api.Get("/exhibition-packages", packageHandler.ExhibitionPackages)

	// Public chat widget
	api.Post("/chat", chatHandler.Chat)

	// Authenticated user routes
	user := api.Group("", middleware.AuthMiddleware(cfg))
	user.Post("/update-package", packageHandler.UpdatePackage)
	user.Get("/user-package-status", packageHandler.PackageStatus)
	user.Post("/book-b2b-meeting", packageHandler.BookMeeting)

	// Admin routes: the role check hits the database on every request
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminRequired(userRepo))
	admin.Get("/dashboard/stats", adminHandler.DashboardStats)
	admin.Get("/users/pending", adminHandler.PendingUsers)
	admin.Get("/users/export", adminHandler.Export)
	admin.Get("/users", adminHandler.Users)
	admin.Get("/users/:id/history", adminHandler.History)
	admin.Post("/users/:id/validate", adminHandler.Validate)
	admin.Post("/users/:id/reject", adminHandler.Reject)
	admin.Post("/users/:id/remind", adminHandler.Remind)
	admin.Post("/users/:id/deactivate", adminHandler.Deactivate)
}
