package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionOrder registro inmutable de una corrida de producción exitosa.
type ProductionOrder struct {
	ID        string
	CompanyID string
	ProductID string
	Quantity  decimal.Decimal
	TotalCost decimal.Decimal
	CreatedBy string
	CreatedAt time.Time
}
