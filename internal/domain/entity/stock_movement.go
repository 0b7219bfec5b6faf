package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeSale       = "SALE"       // salida por venta
	MovementTypeCancel     = "CANCEL"     // reverso de venta (edición o anulación)
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste de inventario
	MovementTypeProduction = "PRODUCTION" // consumo de ingrediente o entrada de producto fabricado
	MovementTypeManual     = "MANUAL"     // carga manual
)

// QuantityScale decimales que guarda el almacenamiento para cantidades y costos (NUMERIC(20,6)).
const QuantityScale = 6

// FitsScale indica si d se guarda sin redondeo. Una cantidad con más decimales rompería
// la cadena StockBefore/StockAfter al persistirse redondeada.
func FitsScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(QuantityScale))
}

// IsValidMovementType valida el tipo contra las constantes MovementType*.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeSale, MovementTypeCancel, MovementTypeAdjustment, MovementTypeProduction, MovementTypeManual:
		return true
	}
	return false
}

// Tipos de entidad con stock.
const (
	EntityKindProduct    = "PRODUCT"
	EntityKindIngredient = "INGREDIENT"
)

// EntityRef referencia exactamente a un Product o a un Ingredient.
type EntityRef struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// ProductRef referencia a un producto.
func ProductRef(id string) EntityRef { return EntityRef{Kind: EntityKindProduct, ID: id} }

// IngredientRef referencia a un ingrediente.
func IngredientRef(id string) EntityRef { return EntityRef{Kind: EntityKindIngredient, ID: id} }

// Valid indica si la referencia apunta a un tipo conocido con ID.
func (r EntityRef) Valid() bool {
	return r.ID != "" && (r.Kind == EntityKindProduct || r.Kind == EntityKindIngredient)
}

func (r EntityRef) String() string { return r.Kind + ":" + r.ID }

// StockMovement fila del ledger (append-only). Quantity positivo = entrada, negativo = salida.
// Invariante: StockAfter = StockBefore + Quantity.
type StockMovement struct {
	ID           string
	CompanyID    string
	ProductID    *string
	IngredientID *string
	UserID       string
	Type         string
	Quantity     decimal.Decimal
	StockBefore  decimal.Decimal
	StockAfter   decimal.Decimal
	SaleID       *string
	Reason       string
	CreatedAt    time.Time
}

// Ref devuelve la entidad a la que apunta el movimiento.
func (m *StockMovement) Ref() EntityRef {
	if m.ProductID != nil {
		return ProductRef(*m.ProductID)
	}
	if m.IngredientID != nil {
		return IngredientRef(*m.IngredientID)
	}
	return EntityRef{}
}

// Consistent verifica StockAfter = StockBefore + Quantity.
func (m *StockMovement) Consistent() bool {
	return m.StockBefore.Add(m.Quantity).Equal(m.StockAfter)
}

// MustBeConsistent hace panic si la fila viola la invariante del ledger (bug de programación o datos corruptos).
func (m *StockMovement) MustBeConsistent() {
	if !m.Consistent() {
		panic(fmt.Sprintf("ledger: movimiento %s inconsistente: %s + %s != %s",
			m.ID, m.StockBefore, m.Quantity, m.StockAfter))
	}
	if (m.ProductID == nil) == (m.IngredientID == nil) {
		panic(fmt.Sprintf("ledger: movimiento %s debe referenciar exactamente un producto o un ingrediente", m.ID))
	}
}
