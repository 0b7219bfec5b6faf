package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, company_id, product_id, ingredient_id, user_id, type, quantity,
	stock_before, stock_after, sale_id, reason, created_at`

// StockMovementRepo implementación del ledger sobre PostgreSQL. Solo INSERT y SELECT:
// la tabla stock_movements no admite UPDATE ni DELETE desde la aplicación.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create agrega una fila al ledger. El orden cronológico lo da la columna seq.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.ProductID, m.IngredientID, m.UserID, m.Type, m.Quantity,
		m.StockBefore, m.StockAfter, m.SaleID, m.Reason, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByEntity lista los movimientos de la entidad en orden de inserción.
func (r *StockMovementRepo) ListByEntity(ctx context.Context, ref entity.EntityRef, companyID string, limit, offset int) ([]*entity.StockMovement, error) {
	column := "product_id"
	if ref.Kind == entity.EntityKindIngredient {
		column = "ingredient_id"
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE ` + column + ` = $1 AND company_id = $2
		ORDER BY seq LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, ref.ID, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return collectMovements(rows)
}

// ListBySale lista los movimientos asociados a una venta (ventas y reversiones) en orden de inserción.
func (r *StockMovementRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE sale_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale movements: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.ProductID, &m.IngredientID, &m.UserID, &m.Type, &m.Quantity,
			&m.StockBefore, &m.StockAfter, &m.SaleID, &m.Reason, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
