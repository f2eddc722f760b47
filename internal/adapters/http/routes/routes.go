package routes

import (
	"coop-console/internal/adapters/http/handlers"
	"coop-console/internal/adapters/http/middleware"
	"coop-console/internal/config"
	"coop-console/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, views *services.ViewService, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg)
	associationHandler := handlers.NewAssociationHandler(views)
	tenantHandler := handlers.NewTenantHandler(views)
	loanHandler := handlers.NewLoanHandler(views)
	attendanceHandler := handlers.NewAttendanceHandler(views)
	settingsHandler := handlers.NewSettingsHandler(views)
	sessionHandler := handlers.NewSessionHandler(cfg)

	// Health check
	app.Get("/health", healthHandler.HealthCheck)

	// Console pages: session on every request, never cached
	pages := app.Group("", middleware.NoCacheHeaders(), middleware.Session(cfg))
	write := middleware.WriteRateLimiter()

	pages.Get("/", associationHandler.Home)
	pages.Get("/associations", associationHandler.List)
	pages.Post("/signout", write, sessionHandler.SignOut)

	setupLoanRoutes(pages, loanHandler, write)
	setupAttendanceRoutes(pages, attendanceHandler, write)
	setupSettingsRoutes(pages, settingsHandler, write)

	// Tenant routes last: /:scope/:id would shadow the pages above
	setupTenantRoutes(pages, tenantHandler, write)
}

// setupLoanRoutes configures the loan list and its form
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler, write fiber.Handler) {
	router.Get("/loans", handler.List)
	router.Post("/loans", write, handler.Save)
	router.Post("/loans/:id", write, handler.Save)
}

// setupAttendanceRoutes configures meetings and attendance sheets
func setupAttendanceRoutes(router fiber.Router, handler *handlers.AttendanceHandler, write fiber.Handler) {
	router.Get("/attendance", handler.Recent)
	router.Get("/meetings/:id/attendance", handler.Sheet)
	router.Post("/meetings/:id/attendance", write, handler.Mark)
}

// setupSettingsRoutes configures roles and the admin profile
func setupSettingsRoutes(router fiber.Router, handler *handlers.SettingsHandler, write fiber.Handler) {
	router.Get("/settings", handler.Show)
	router.Post("/settings/roles", write, handler.CreateRole)
	router.Post("/settings/profile", write, handler.UpdateProfile)
}

// setupTenantRoutes configures association and cooperative detail pages
func setupTenantRoutes(router fiber.Router, handler *handlers.TenantHandler, write fiber.Handler) {
	router.Get("/:scope/:id", handler.Detail)
	router.Post("/:scope/:id/members", write, handler.SaveMember)
	router.Post("/:scope/:id/members/:memberId", write, handler.SaveMember)
	router.Post("/:scope/:id/members/:memberId/delete", write, handler.DeleteMember)
	router.Post("/:scope/:id/applications/:appId/status", write, handler.Decide)
}
