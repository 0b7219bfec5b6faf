package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusActive   = "ACTIVE"
	SaleStatusCanceled = "CANCELED" // terminal
)

// Sale cabecera de venta. TotalAmount/TotalCost se recalculan como suma de Items en cada creación/edición.
type Sale struct {
	ID          string
	CompanyID   string
	UserID      string
	Date        time.Time
	Status      string
	TotalAmount decimal.Decimal
	TotalCost   decimal.Decimal
	Items       []*SaleItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCanceled indica si la venta está anulada.
func (s *Sale) IsCanceled() bool {
	return s.Status == SaleStatusCanceled
}

// SaleItem línea de venta. BaseCost queda congelado al momento de la venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	BaseCost  decimal.Decimal
	CreatedAt time.Time
}

// Subtotal cantidad × precio unitario.
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// TotalCost cantidad × costo congelado.
func (i *SaleItem) TotalCost() decimal.Decimal {
	return i.Quantity.Mul(i.BaseCost)
}
