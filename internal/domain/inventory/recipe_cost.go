package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// EffectiveCost costo de una unidad de producto a partir de su receta y los costos vigentes de los ingredientes.
// Retorna error si falta algún ingrediente referenciado por la receta.
func EffectiveCost(lines []*entity.RecipeLine, ingredients map[string]*entity.Ingredient) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range lines {
		ing, ok := ingredients[l.IngredientID]
		if !ok || ing == nil {
			return decimal.Zero, fmt.Errorf("ingrediente %s de la receta no encontrado", l.IngredientID)
		}
		total = total.Add(CalculateCost(l.Quantity, l.Unit, ing.Unit, ing.Cost))
	}
	return total, nil
}
