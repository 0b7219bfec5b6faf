package repository

import "context"

// UnitOfWork agrupa los repositorios atados a una misma transacción (o al pool, fuera de ella).
type UnitOfWork interface {
	Companies() CompanyRepository
	Products() ProductRepository
	Ingredients() IngredientRepository
	Recipes() RecipeRepository
	Stock() StockRepository
	Movements() StockMovementRepository
	ProductionOrders() ProductionOrderRepository
	Sales() SaleRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error (o hace panic) la transacción se revierte completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow UnitOfWork) error) error
}
