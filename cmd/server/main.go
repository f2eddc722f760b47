package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"coop-console/internal/adapters/api"
	"coop-console/internal/adapters/http/middleware"
	"coop-console/internal/adapters/http/routes"
	"coop-console/internal/adapters/http/views"
	"coop-console/internal/config"
	"coop-console/internal/core/services"
	"coop-console/internal/core/tabs"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Client of the cooperative REST API
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, api.WithDebug(cfg.API.Debug))

	viewService := services.NewViewService(client, services.ViewOptions{
		TabMode:     tabs.ParseMode(cfg.Views.TabMode),
		Concurrency: cfg.Views.Concurrency,
		PageSize:    cfg.Views.PageSize,
	})

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Coop Console",
		Views:        views.New(),
		ViewsLayout:  views.Layout,
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, viewService, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Console starting on port %s [MODE: %s, TABS: %s]", cfg.Port, cfg.AppMode, cfg.Views.TabMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down console...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Console stopped gracefully")
}
