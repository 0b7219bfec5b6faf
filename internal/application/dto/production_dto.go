package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProduceRequest body para POST /api/production.
type ProduceRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// IngredientConsumptionResponse detalle por ingrediente de una corrida.
type IngredientConsumptionResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	Unit         string          `json:"unit"`
	Cost         decimal.Decimal `json:"cost"`
}

// ProductionResponse orden creada más el desglose de consumo.
type ProductionResponse struct {
	OrderID      string                          `json:"order_id"`
	ProductID    string                          `json:"product_id"`
	ProductName  string                          `json:"product_name"`
	Quantity     decimal.Decimal                 `json:"quantity"`
	TotalCost    decimal.Decimal                 `json:"total_cost"`
	UnitCost     decimal.Decimal                 `json:"unit_cost"`
	ProductStock decimal.Decimal                 `json:"product_stock"`
	CreatedAt    time.Time                       `json:"created_at"`
	Ingredients  []IngredientConsumptionResponse `json:"ingredients"`
}
