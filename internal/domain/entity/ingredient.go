package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa una materia prima. Stock y Cost se expresan en Unit (base de inventario).
type Ingredient struct {
	ID        string
	CompanyID string
	Name      string
	Unit      Unit
	Cost      decimal.Decimal // costo por una Unit
	Stock     decimal.Decimal
	MinStock  decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
