package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

const reconcilePageSize = 500

// Reconciliation resultado de reproducir el ledger de una entidad contra su stock actual.
type Reconciliation struct {
	Ref            entity.EntityRef
	CurrentStock   decimal.Decimal
	LastStockAfter decimal.Decimal
	Movements      int
	Consistent     bool
	Issues         []string
}

// Reconcile recorre los movimientos de la entidad en orden y verifica:
// cada fila cumple StockAfter = StockBefore + Quantity, la cadena es continua
// (StockBefore[n] = StockAfter[n-1]) y el último StockAfter coincide con el stock actual.
func (l *StockLedger) Reconcile(ctx context.Context, ref entity.EntityRef, companyID string) (*Reconciliation, error) {
	if !ref.Valid() || companyID == "" {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "referencia de entidad inválida")
	}
	current, err := l.reader.Stock().Current(ctx, ref, companyID)
	if err != nil {
		return nil, err
	}

	rec := &Reconciliation{Ref: ref, CurrentStock: current}
	var prev *entity.StockMovement
	for offset := 0; ; offset += reconcilePageSize {
		page, err := l.reader.Movements().ListByEntity(ctx, ref, companyID, reconcilePageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list movements: %w", err)
		}
		for _, m := range page {
			if !m.Consistent() {
				rec.Issues = append(rec.Issues, fmt.Sprintf("movimiento %s: %s + %s != %s",
					m.ID, m.StockBefore, m.Quantity, m.StockAfter))
			}
			if prev != nil && !prev.StockAfter.Equal(m.StockBefore) {
				rec.Issues = append(rec.Issues, fmt.Sprintf("movimiento %s: stock previo %s no continúa %s de %s",
					m.ID, m.StockBefore, prev.StockAfter, prev.ID))
			}
			prev = m
			rec.Movements++
		}
		if len(page) < reconcilePageSize {
			break
		}
	}

	if prev != nil {
		rec.LastStockAfter = prev.StockAfter
	}
	if !rec.LastStockAfter.Equal(current) {
		rec.Issues = append(rec.Issues, fmt.Sprintf("stock actual %s difiere del último saldo del ledger %s",
			current, rec.LastStockAfter))
	}
	rec.Consistent = len(rec.Issues) == 0
	return rec, nil
}

// History lista los movimientos de una entidad (orden cronológico).
func (l *StockLedger) History(ctx context.Context, ref entity.EntityRef, companyID string, limit, offset int) ([]*entity.StockMovement, error) {
	if !ref.Valid() || companyID == "" {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "referencia de entidad inválida")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return l.reader.Movements().ListByEntity(ctx, ref, companyID, limit, offset)
}
