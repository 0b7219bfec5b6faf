package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest ítem solicitado.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// UpsertSaleRequest body para POST /api/sales y PUT /api/sales/:id.
// Date vacío = ahora.
type UpsertSaleRequest struct {
	Date  *time.Time        `json:"date,omitempty"`
	Items []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse ítem con costo congelado.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	BaseCost  decimal.Decimal `json:"base_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta con ítems.
type SaleResponse struct {
	ID          string             `json:"id"`
	CompanyID   string             `json:"company_id"`
	UserID      string             `json:"user_id"`
	Date        time.Time          `json:"date"`
	Status      string             `json:"status"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalCost   decimal.Decimal    `json:"total_cost"`
	Items       []SaleItemResponse `json:"items"`
}
