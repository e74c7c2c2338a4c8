package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/fogon-api/internal/application/auth"
	"github.com/dcastano/fogon-api/internal/application/catalog"
	"github.com/dcastano/fogon-api/internal/application/pricing"
	"github.com/dcastano/fogon-api/internal/application/procurement"
	"github.com/dcastano/fogon-api/internal/application/products"
	"github.com/dcastano/fogon-api/internal/application/recipes"
	"github.com/dcastano/fogon-api/internal/application/reports"
	"github.com/dcastano/fogon-api/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC     *catalog.UseCase
	LedgerUC      *stock.LedgerUseCase
	RecipesUC     *recipes.UseCase
	PricingUC     *pricing.UseCase
	ProcurementUC *procurement.UseCase
	ProductsUC    *products.UseCase
	ProductInv    *products.InventoryAdapter
	ReportsUC     *reports.UseCase
	AuthUC        *auth.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	procurementHandler := NewProcurementHandler(deps.ProcurementUC)

	// Raw materials (protegido). Las rutas estáticas van antes de /:id.
	materials := protected.Group("/raw-materials")
	materialHandler := NewRawMaterialHandler(deps.CatalogUC, deps.LedgerUC, deps.ReportsUC)
	materials.Get("/generate-sku", materialHandler.GenerateSku)
	materials.Get("/in-transit", procurementHandler.InTransitReport)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Patch("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)
	materials.Post("/:id/adjust", materialHandler.Adjust)
	materials.Get("/:id/movements", materialHandler.Movements)
	materials.Get("/:id/movements/report", materialHandler.MovementsReport)

	// Products, recetas y pricing (protegido)
	productsGroup := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductsUC, deps.ProductInv)
	productsGroup.Post("/", productHandler.Create)
	productsGroup.Get("/", productHandler.List)
	productsGroup.Get("/:id", productHandler.GetByID)
	productsGroup.Patch("/:id", productHandler.Update)
	productsGroup.Delete("/:id", productHandler.Delete)
	productsGroup.Post("/:id/adjust", productHandler.Adjust)
	productsGroup.Get("/:id/movements", productHandler.Movements)
	productsGroup.Post("/:id/convert-to-recipe", productHandler.ConvertToRecipe)

	recipeHandler := NewRecipeHandler(deps.RecipesUC)
	productsGroup.Post("/:id/recipe", recipeHandler.Create)
	productsGroup.Get("/:id/recipe", recipeHandler.Get)
	productsGroup.Patch("/:id/recipe", recipeHandler.Update)
	productsGroup.Delete("/:id/recipe", recipeHandler.Delete)
	productsGroup.Post("/:id/recipe/lines", recipeHandler.AddLine)
	productsGroup.Delete("/:id/recipe/lines/:lineId", recipeHandler.RemoveLine)

	pricingHandler := NewPricingHandler(deps.PricingUC)
	productsGroup.Get("/:id/pricing-policy", pricingHandler.GetPolicy)
	productsGroup.Put("/:id/pricing-policy", pricingHandler.UpsertPolicy)
	productsGroup.Get("/:id/pricing/calculate", pricingHandler.Calculate)
	productsGroup.Post("/:id/pricing/apply-suggested", pricingHandler.ApplySuggested)

	// Purchase orders (protegido, solo lectura)
	protected.Get("/purchase-orders", procurementHandler.ListOrders)
}
