package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// IngredientRepository define el puerto de persistencia para Ingredient.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Ingredient, error)
	UpdateCost(ctx context.Context, ingredientID string, cost decimal.Decimal) error
	SetActive(ctx context.Context, ingredientID string, active bool) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Ingredient, error)
}
