package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia para las líneas de receta (ProductRecipe).
type RecipeRepository interface {
	// Upsert crea o reemplaza la línea (ProductID, IngredientID).
	Upsert(ctx context.Context, line *entity.RecipeLine) error
	Delete(ctx context.Context, productID, ingredientID string) (bool, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.RecipeLine, error)
}
