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

	"github.com/dcastano/fogon-api/internal/application/auth"
	"github.com/dcastano/fogon-api/internal/application/catalog"
	"github.com/dcastano/fogon-api/internal/application/pricing"
	"github.com/dcastano/fogon-api/internal/application/procurement"
	"github.com/dcastano/fogon-api/internal/application/products"
	"github.com/dcastano/fogon-api/internal/application/recipes"
	"github.com/dcastano/fogon-api/internal/application/reports"
	"github.com/dcastano/fogon-api/internal/application/stock"
	infrapdf "github.com/dcastano/fogon-api/internal/infrastructure/pdf"
	"github.com/dcastano/fogon-api/internal/infrastructure/postgres"
	httpRouter "github.com/dcastano/fogon-api/internal/interfaces/http"
	"github.com/dcastano/fogon-api/pkg/config"
	"github.com/dcastano/fogon-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewRawMaterialRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	policyRepo := postgres.NewPricingPolicyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	productMovRepo := postgres.NewProductMovementRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	venueRepo := postgres.NewVenueRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := stock.NewLedgerUseCase(txRunner, materialRepo, movementRepo)
	catalogUC := catalog.NewUseCase(materialRepo, recipeRepo)
	recipesUC := recipes.NewUseCase(txRunner, recipeRepo, materialRepo, productRepo)
	pricingUC := pricing.NewUseCase(policyRepo, productRepo, recipesUC)
	procurementUC := procurement.NewUseCase(poRepo, materialRepo)
	productsUC := products.NewUseCase(productRepo, recipeRepo)
	productInv := products.NewInventoryAdapter(txRunner, productRepo, productMovRepo, recipesUC)

	pdfGenerator := infrapdf.NewMovementReportGenerator()
	reportsUC := reports.NewUseCase(materialRepo, movementRepo, venueRepo, pdfGenerator)

	authUC := auth.NewUseCase(userRepo, venueRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fogón API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:     catalogUC,
		LedgerUC:      ledgerUC,
		RecipesUC:     recipesUC,
		PricingUC:     pricingUC,
		ProcurementUC: procurementUC,
		ProductsUC:    productsUC,
		ProductInv:    productInv,
		ReportsUC:     reportsUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
