package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductKindResale   = "RESALE"   // se compra y se vende tal cual
	ProductKindProduced = "PRODUCED" // se fabrica a partir de una receta
)

// Product representa un producto vendible. Stock solo se modifica vía StockLedger.
// Cost es el costo unitario vigente; para productos con receta se recalcula al vender.
type Product struct {
	ID        string
	CompanyID string
	SKU       string
	Name      string
	Kind      string
	Price     decimal.Decimal // precio de venta
	Cost      decimal.Decimal
	Stock     decimal.Decimal
	MinStock  decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSelfProduced indica si el producto se fabrica con ProductionEngine.
func (p *Product) IsSelfProduced() bool {
	return p.Kind == ProductKindProduced
}
