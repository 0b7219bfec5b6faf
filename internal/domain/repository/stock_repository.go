package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockRepository define el puerto de mutación del campo stock de productos e ingredientes.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Increment suma delta al stock de la entidad (de la empresa) de forma atómica y devuelve el valor resultante.
	// La fila queda bloqueada hasta el fin de la transacción. Retorna domain.ErrNotFound si no existe.
	Increment(ctx context.Context, ref entity.EntityRef, companyID string, delta decimal.Decimal) (decimal.Decimal, error)
	// Current lee el stock actual (sin bloqueo).
	Current(ctx context.Context, ref entity.EntityRef, companyID string) (decimal.Decimal, error)
}
