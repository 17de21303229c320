package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trimworks/takeoff-api/internal/application/auth"
	"github.com/trimworks/takeoff-api/internal/application/billing"
	"github.com/trimworks/takeoff-api/internal/application/pricing"
	"github.com/trimworks/takeoff-api/internal/application/takeoff"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	TakeoffUC *takeoff.UseCase
	InvoiceUC *billing.InvoiceUseCase
	PricingUC *pricing.UseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Takeoffs
	takeoffs := protected.Group("/takeoffs")
	takeoffHandler := NewTakeoffHandler(deps.TakeoffUC)
	takeoffs.Post("/", takeoffHandler.Create)
	takeoffs.Get("/", takeoffHandler.List)
	takeoffs.Get("/:id", takeoffHandler.GetByID)
	takeoffs.Put("/:id", takeoffHandler.Update)
	takeoffs.Post("/:id/complete", takeoffHandler.Complete)

	// Invoices (generation restricted to office and admin)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", RequireRole(entity.RoleAdmin, entity.RoleOffice), invoiceHandler.Generate)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Patch("/:id/status", RequireRole(entity.RoleAdmin, entity.RoleOffice), invoiceHandler.UpdateStatus)

	// Pricing (writes restricted to admin)
	pricingGroup := protected.Group("/pricing")
	pricingHandler := NewPricingHandler(deps.PricingUC)
	pricingGroup.Get("/", pricingHandler.List)
	pricingGroup.Get("/export", pricingHandler.Export)
	pricingGroup.Post("/", RequireRole(entity.RoleAdmin), pricingHandler.Create)
	pricingGroup.Delete("/:id", RequireRole(entity.RoleAdmin), pricingHandler.Deactivate)
}
