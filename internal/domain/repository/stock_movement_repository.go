package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger (solo inserción y lectura).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByEntity lista movimientos de la entidad en orden cronológico ascendente.
	ListByEntity(ctx context.Context, ref entity.EntityRef, companyID string, limit, offset int) ([]*entity.StockMovement, error)
	ListBySale(ctx context.Context, saleID string) ([]*entity.StockMovement, error)
}
