package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func stockTable(ref entity.EntityRef) (string, error) {
	switch ref.Kind {
	case entity.EntityKindProduct:
		return "products", nil
	case entity.EntityKindIngredient:
		return "ingredients", nil
	}
	return "", fmt.Errorf("tipo de entidad desconocido %q", ref.Kind)
}

// Increment suma delta al stock y devuelve el valor resultante (UPDATE ... RETURNING).
// El UPDATE toma el lock de fila hasta el fin de la transacción; bajo READ COMMITTED una transacción
// concurrente espera y re-evalúa sobre el valor ya confirmado, así que el valor leído es siempre el real.
func (r *StockRepo) Increment(ctx context.Context, ref entity.EntityRef, companyID string, delta decimal.Decimal) (decimal.Decimal, error) {
	table, err := stockTable(ref)
	if err != nil {
		return decimal.Zero, err
	}
	query := `UPDATE ` + table + ` SET stock = stock + $3, updated_at = now()
		WHERE id = $1 AND company_id = $2
		RETURNING stock`
	var after decimal.Decimal
	if err := r.q.QueryRow(ctx, query, ref.ID, companyID, delta).Scan(&after); err != nil {
		if isNoRows(err) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("increment stock: %w", err)
	}
	return after, nil
}

// Current lee el stock actual sin bloqueo.
func (r *StockRepo) Current(ctx context.Context, ref entity.EntityRef, companyID string) (decimal.Decimal, error) {
	table, err := stockTable(ref)
	if err != nil {
		return decimal.Zero, err
	}
	var cur decimal.Decimal
	err = r.q.QueryRow(ctx, `SELECT stock FROM `+table+` WHERE id = $1 AND company_id = $2`, ref.ID, companyID).Scan(&cur)
	if err != nil {
		if isNoRows(err) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("get stock: %w", err)
	}
	return cur, nil
}
