package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// state contenido completo del store. Run trabaja sobre un clon y lo publica solo si fn termina sin error.
type state struct {
	companies   map[string]*entity.Company
	products    map[string]*entity.Product
	ingredients map[string]*entity.Ingredient
	recipes     map[recipeKey]*entity.RecipeLine
	movements   []*entity.StockMovement
	orders      map[string]*entity.ProductionOrder
	sales       map[string]*entity.Sale
	saleItems   map[string][]*entity.SaleItem
}

type recipeKey struct {
	productID    string
	ingredientID string
}

func newState() *state {
	return &state{
		companies:   map[string]*entity.Company{},
		products:    map[string]*entity.Product{},
		ingredients: map[string]*entity.Ingredient{},
		recipes:     map[recipeKey]*entity.RecipeLine{},
		orders:      map[string]*entity.ProductionOrder{},
		sales:       map[string]*entity.Sale{},
		saleItems:   map[string][]*entity.SaleItem{},
	}
}

// clone copia profunda de las entidades mutables. Los movimientos son inmutables: se comparten los punteros.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.companies {
		cp := *v
		c.companies[k] = &cp
	}
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.ingredients {
		cp := *v
		c.ingredients[k] = &cp
	}
	for k, v := range s.recipes {
		cp := *v
		c.recipes[k] = &cp
	}
	c.movements = append(make([]*entity.StockMovement, 0, len(s.movements)), s.movements...)
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.sales {
		cp := *v
		c.sales[k] = &cp
	}
	for k, v := range s.saleItems {
		c.saleItems[k] = append([]*entity.SaleItem(nil), v...)
	}
	return c
}

// Store implementación en memoria de repository.TxRunner y repository.UnitOfWork.
// Las transacciones se serializan con un mutex; cada una opera sobre un snapshot
// que se descarta si fn retorna error o hace panic.
// No usar el UnitOfWork del Store (lecturas) desde dentro de Run: el mutex no es reentrante.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre un snapshot y lo publica si no hay error.
func (s *Store) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	if err := fn(&unitOfWork{acc: &txAccess{st: tx}}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// accessor del UnitOfWork fuera de transacción: cada llamada toma el lock.
func (s *Store) access() access { return &storeAccess{s: s} }

func (s *Store) Companies() repository.CompanyRepository { return companyRepo{s.access()} }
func (s *Store) Products() repository.ProductRepository { return productRepo{s.access()} }
func (s *Store) Ingredients() repository.IngredientRepository { return ingredientRepo{s.access()} }
func (s *Store) Recipes() repository.RecipeRepository { return recipeRepo{s.access()} }
func (s *Store) Stock() repository.StockRepository { return stockRepo{s.access()} }
func (s *Store) Movements() repository.StockMovementRepository {
	return movementRepo{s.access()}
}
func (s *Store) ProductionOrders() repository.ProductionOrderRepository {
	return orderRepo{s.access()}
}
func (s *Store) Sales() repository.SaleRepository { return saleRepo{s.access()} }

// access abstrae cómo los repositorios llegan al estado: directo (dentro de Run) o con lock (fuera).
type access interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

type txAccess struct{ st *state }

func (a *txAccess) read(fn func(st *state) error) error  { return fn(a.st) }
func (a *txAccess) write(fn func(st *state) error) error { return fn(a.st) }

type storeAccess struct{ s *Store }

func (a *storeAccess) read(fn func(st *state) error) error {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return fn(a.s.st)
}

func (a *storeAccess) write(fn func(st *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.st)
}

type unitOfWork struct{ acc access }

func (u *unitOfWork) Companies() repository.CompanyRepository { return companyRepo{u.acc} }
func (u *unitOfWork) Products() repository.ProductRepository { return productRepo{u.acc} }
func (u *unitOfWork) Ingredients() repository.IngredientRepository { return ingredientRepo{u.acc} }
func (u *unitOfWork) Recipes() repository.RecipeRepository { return recipeRepo{u.acc} }
func (u *unitOfWork) Stock() repository.StockRepository { return stockRepo{u.acc} }
func (u *unitOfWork) Movements() repository.StockMovementRepository { return movementRepo{u.acc} }
func (u *unitOfWork) ProductionOrders() repository.ProductionOrderRepository {
	return orderRepo{u.acc}
}
func (u *unitOfWork) Sales() repository.SaleRepository { return saleRepo{u.acc} }

var (
	_ repository.TxRunner   = (*Store)(nil)
	_ repository.UnitOfWork = (*Store)(nil)
	_ repository.UnitOfWork = (*unitOfWork)(nil)
)
