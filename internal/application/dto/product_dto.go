package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock inicia en 0 (solo cambia vía movimientos).
type CreateProductRequest struct {
	SKU      string          `json:"sku" validate:"required,min=1,max=100"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Kind     string          `json:"kind" validate:"required,oneof=RESALE PRODUCED"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// SetActiveRequest activa o desactiva (soft) un producto o ingrediente.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"min_stock"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateIngredientRequest entrada para crear un ingrediente. Cost es por una Unit.
type CreateIngredientRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Unit     string          `json:"unit" validate:"required"`
	Cost     decimal.Decimal `json:"cost"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// IngredientResponse salida de un ingrediente.
type IngredientResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Cost      decimal.Decimal `json:"cost"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"min_stock"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IngredientListResponse lista paginada de ingredientes.
type IngredientListResponse struct {
	Items []IngredientResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
