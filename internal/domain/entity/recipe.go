package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLine línea de receta: cuánto de un ingrediente (en Unit) se consume por una unidad de producto.
// Única por (ProductID, IngredientID).
type RecipeLine struct {
	ID           string
	CompanyID    string
	ProductID    string
	IngredientID string
	Quantity     decimal.Decimal
	Unit         Unit
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
