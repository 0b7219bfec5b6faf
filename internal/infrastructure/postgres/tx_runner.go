package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var (
	_ repository.TxRunner   = (*TxRunner)(nil)
	_ repository.UnitOfWork = (*UnitOfWork)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// La atomicidad incremento+lectura del stock la da UPDATE ... RETURNING: la fila queda bloqueada hasta el commit
// y una transacción concurrente re-evalúa sobre el valor ya confirmado.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Si fn hace panic, el rollback diferido libera la transacción antes de propagarlo.
func (r *TxRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUnitOfWork(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// UnitOfWork repositorios atados a un mismo Querier (pool o tx).
type UnitOfWork struct {
	q Querier
}

// NewUnitOfWork construye los repositorios sobre q. Con el pool sirve para lecturas fuera de transacción.
func NewUnitOfWork(q Querier) *UnitOfWork {
	return &UnitOfWork{q: q}
}

func (u *UnitOfWork) Companies() repository.CompanyRepository { return NewCompanyRepository(u.q) }
func (u *UnitOfWork) Products() repository.ProductRepository { return NewProductRepository(u.q) }
func (u *UnitOfWork) Ingredients() repository.IngredientRepository {
	return NewIngredientRepository(u.q)
}
func (u *UnitOfWork) Recipes() repository.RecipeRepository { return NewRecipeRepository(u.q) }
func (u *UnitOfWork) Stock() repository.StockRepository { return NewStockRepository(u.q) }
func (u *UnitOfWork) Movements() repository.StockMovementRepository {
	return NewStockMovementRepository(u.q)
}
func (u *UnitOfWork) ProductionOrders() repository.ProductionOrderRepository {
	return NewProductionOrderRepository(u.q)
}
func (u *UnitOfWork) Sales() repository.SaleRepository { return NewSaleRepository(u.q) }
