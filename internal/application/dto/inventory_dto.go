package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/inventory/movements (ajustes y cargas manuales).
type RecordMovementRequest struct {
	EntityKind string           `json:"entity_kind" validate:"required,oneof=PRODUCT INGREDIENT"`
	EntityID   string           `json:"entity_id" validate:"required,uuid"`
	Type       string           `json:"type" validate:"required,oneof=ADJUSTMENT MANUAL"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Reason     string           `json:"reason" validate:"max=500"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"` // solo entradas: recalcula costo promedio
}

// MovementResponse fila del ledger.
type MovementResponse struct {
	ID           string          `json:"id"`
	ProductID    *string         `json:"product_id,omitempty"`
	IngredientID *string         `json:"ingredient_id,omitempty"`
	UserID       string          `json:"user_id"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	StockBefore  decimal.Decimal `json:"stock_before"`
	StockAfter   decimal.Decimal `json:"stock_after"`
	SaleID       *string         `json:"sale_id,omitempty"`
	Reason       string          `json:"reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ReconciliationResponse resultado de GET /api/inventory/:kind/:id/reconcile.
type ReconciliationResponse struct {
	EntityKind     string          `json:"entity_kind"`
	EntityID       string          `json:"entity_id"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	LastStockAfter decimal.Decimal `json:"last_stock_after"`
	Movements      int             `json:"movements"`
	Consistent     bool            `json:"consistent"`
	Issues         []string        `json:"issues"`
}

// ReplenishmentSuggestionDTO entidad bajo stock mínimo con la cantidad sugerida de reposición.
type ReplenishmentSuggestionDTO struct {
	Priority           int             `json:"priority"` // 1 = más urgente
	EntityKind         string          `json:"entity_kind"`
	EntityID           string          `json:"entity_id"`
	SKU                string          `json:"sku,omitempty"`
	Name               string          `json:"name"`
	Unit               string          `json:"unit,omitempty"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinStock           decimal.Decimal `json:"min_stock"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	DeficitPct         decimal.Decimal `json:"deficit_pct"`
}
