package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// UnitMismatchError conversión entre familias incompatibles (p. ej. masa → volumen).
// Es una falla defensiva: las recetas se validan al crearse con CheckCompatible.
type UnitMismatchError struct {
	From entity.Unit
	To   entity.Unit
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("unidades incompatibles: %s → %s", e.From, e.To)
}

var thousand = decimal.NewFromInt(1000)

// factorToBase devuelve cuántas unidades base (G, ML, UNIT) hay en una unidad u.
func factorToBase(u entity.Unit) decimal.Decimal {
	switch u {
	case entity.UnitKilogram, entity.UnitLiter:
		return thousand
	default:
		return decimal.NewFromInt(1)
	}
}

// CheckCompatible valida que from y to sean unidades conocidas de la misma familia.
func CheckCompatible(from, to entity.Unit) error {
	ff, ok := from.Family()
	if !ok {
		return fmt.Errorf("unidad desconocida %q", from)
	}
	tf, ok := to.Family()
	if !ok {
		return fmt.Errorf("unidad desconocida %q", to)
	}
	if ff != tf {
		return &UnitMismatchError{From: from, To: to}
	}
	return nil
}

// ConvertQuantity convierte quantity de from a to (KG↔G, L↔ML, UNIT↔UNIT).
// Hace panic si las familias no coinciden.
func ConvertQuantity(quantity decimal.Decimal, from, to entity.Unit) decimal.Decimal {
	if err := CheckCompatible(from, to); err != nil {
		panic(err)
	}
	if from == to {
		return quantity
	}
	// multiplicar antes de dividir: las divisiones por 1000 son exactas en decimal
	return quantity.Mul(factorToBase(from)).Div(factorToBase(to))
}

// CalculateCost convierte quantity a basisUnit y multiplica por el costo de una basisUnit.
func CalculateCost(quantity decimal.Decimal, quantityUnit, basisUnit entity.Unit, basisUnitCost decimal.Decimal) decimal.Decimal {
	return ConvertQuantity(quantity, quantityUnit, basisUnit).Mul(basisUnitCost)
}
