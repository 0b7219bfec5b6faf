package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus ítems.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID devuelve la venta con sus ítems, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// Update persiste fecha, usuario, estado y totales de la cabecera.
	Update(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	DeleteItems(ctx context.Context, saleID string) error
}
