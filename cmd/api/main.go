package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/trimworks/takeoff-api/internal/application/auth"
	"github.com/trimworks/takeoff-api/internal/application/billing"
	"github.com/trimworks/takeoff-api/internal/application/pricing"
	"github.com/trimworks/takeoff-api/internal/application/takeoff"
	infraexcel "github.com/trimworks/takeoff-api/internal/infrastructure/excel"
	infrapdf "github.com/trimworks/takeoff-api/internal/infrastructure/pdf"
	"github.com/trimworks/takeoff-api/internal/infrastructure/postgres"
	httpRouter "github.com/trimworks/takeoff-api/internal/interfaces/http"
	"github.com/trimworks/takeoff-api/pkg/config"
	"github.com/trimworks/takeoff-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	takeoffRepo := postgres.NewTakeoffRepository(pool)
	pricingRepo := postgres.NewPricingRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	takeoffUC := takeoff.NewUseCase(takeoffRepo)
	pricingUC := pricing.NewUseCase(pricingRepo, infraexcel.NewPriceListExporter())
	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, takeoffRepo, pricingRepo, invoiceRepo,
		infrapdf.NewFormRenderer(cfg.App.Name),
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Takeoff API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		TakeoffUC: takeoffUC,
		InvoiceUC: invoiceUC,
		PricingUC: pricingUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
