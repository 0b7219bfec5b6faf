package dto

import "github.com/shopspring/decimal"

// SetRecipeLineRequest body para PUT /api/recipes/:productId/lines.
type SetRecipeLineRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" validate:"required"`
}

// RecipeLineResponse línea con el costo vigente por unidad de producto.
type RecipeLineResponse struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	Cost           decimal.Decimal `json:"cost"`
}

// RecipeResponse receta completa de un producto.
type RecipeResponse struct {
	ProductID     string               `json:"product_id"`
	EffectiveCost decimal.Decimal      `json:"effective_cost"`
	Lines         []RecipeLineResponse `json:"lines"`
}
