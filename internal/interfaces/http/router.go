package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/production"
	"github.com/jhoicas/inventario-ledger/internal/application/recipe"
	"github.com/jhoicas/inventario-ledger/internal/application/sales"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	ProductUC    *usecase.ProductUseCase
	IngredientUC *usecase.IngredientUseCase
	Ledger       *inventory.StockLedger
	Replenish    *inventory.ReplenishmentUseCase
	RecipeUC     *recipe.RecipeUseCase
	ProduceUC    *production.ProduceUseCase
	SaleUC       *sales.SaleUseCase
	Companies    repository.CompanyRepository
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleVendedor)
	stockRole := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)
	saleRole := RequireRole(jwt.RoleAdmin, jwt.RoleVendedor)

	// Companies: alta pública (bootstrap del tenant), consulta protegida
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token y empresa existente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireCompany(deps.Companies))
	protected.Get("/companies/:id", anyRole, companyHandler.GetByID)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", stockRole, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Put("/:id/active", stockRole, productHandler.SetActive)

	ingredients := protected.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredients.Post("/", stockRole, ingredientHandler.Create)
	ingredients.Get("/", anyRole, ingredientHandler.List)
	ingredients.Get("/:id", anyRole, ingredientHandler.GetByID)
	ingredients.Put("/:id/active", stockRole, ingredientHandler.SetActive)

	// Ledger
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Replenish)
	invGroup.Post("/movements", stockRole, inventoryHandler.RecordMovement)
	invGroup.Get("/replenishment-list", anyRole, inventoryHandler.GetReplenishmentList)
	invGroup.Get("/:kind/:id/movements", anyRole, inventoryHandler.History)
	invGroup.Get("/:kind/:id/reconcile", anyRole, inventoryHandler.Reconcile)

	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Get("/:productId", anyRole, recipeHandler.Get)
	recipes.Put("/:productId/lines", stockRole, recipeHandler.SetLine)
	recipes.Delete("/:productId/lines/:ingredientId", stockRole, recipeHandler.RemoveLine)

	productionHandler := NewProductionHandler(deps.ProduceUC)
	protected.Post("/production", stockRole, productionHandler.Produce)

	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleRole, saleHandler.Create)
	salesGroup.Get("/:id", anyRole, saleHandler.GetByID)
	salesGroup.Put("/:id", saleRole, saleHandler.Update)
	salesGroup.Post("/:id/cancel", saleRole, saleHandler.Cancel)
}
