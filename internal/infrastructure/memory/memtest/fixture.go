// Package memtest arma escenarios sobre el store en memoria para los tests de los casos de uso.
package memtest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

// Fixture empresa sobre un store en memoria. El stock inicial se carga con movimientos MANUAL
// para que el ledger quede consistente desde el primer movimiento.
type Fixture struct {
	t         *testing.T
	Store     *memory.Store
	Ledger    *inventory.StockLedger
	CompanyID string
	UserID    string
}

// New crea el store y una empresa. allowNegative fija AllowNegativeStock.
func New(t *testing.T, allowNegative bool) *Fixture {
	t.Helper()
	store := memory.NewStore()
	f := &Fixture{
		t:         t,
		Store:     store,
		Ledger:    inventory.NewStockLedger(store, store, nil),
		CompanyID: uuid.New().String(),
		UserID:    "user-1",
	}
	now := time.Now()
	require.NoError(t, store.Companies().Create(context.Background(), &entity.Company{
		ID:                 f.CompanyID,
		Name:               "Empresa de prueba",
		AllowNegativeStock: allowNegative,
		CreatedAt:          now,
		UpdatedAt:          now,
	}))
	return f
}

// D atajo para decimales literales.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Ingredient crea un ingrediente activo con costo por unit y stock inicial.
func (f *Fixture) Ingredient(name string, unit entity.Unit, cost, stock string) *entity.Ingredient {
	f.t.Helper()
	now := time.Now()
	ing := &entity.Ingredient{
		ID:        uuid.New().String(),
		CompanyID: f.CompanyID,
		Name:      name,
		Unit:      unit,
		Cost:      D(cost),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(f.t, f.Store.Ingredients().Create(context.Background(), ing))
	f.load(entity.IngredientRef(ing.ID), stock)
	ing.Stock = D(stock)
	return ing
}

// Product crea un producto activo (kind RESALE o PRODUCED) con stock inicial.
func (f *Fixture) Product(name, kind, price, cost, stock string) *entity.Product {
	f.t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: f.CompanyID,
		SKU:       "SKU-" + uuid.New().String()[:8],
		Name:      name,
		Kind:      kind,
		Price:     D(price),
		Cost:      D(cost),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(f.t, f.Store.Products().Create(context.Background(), p))
	f.load(entity.ProductRef(p.ID), stock)
	p.Stock = D(stock)
	return p
}

// RecipeLine agrega qty (en unit) del ingrediente por unidad del producto.
func (f *Fixture) RecipeLine(productID, ingredientID, qty string, unit entity.Unit) {
	f.t.Helper()
	now := time.Now()
	require.NoError(f.t, f.Store.Recipes().Upsert(context.Background(), &entity.RecipeLine{
		ID:           uuid.New().String(),
		CompanyID:    f.CompanyID,
		ProductID:    productID,
		IngredientID: ingredientID,
		Quantity:     D(qty),
		Unit:         unit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
}

func (f *Fixture) load(ref entity.EntityRef, stock string) {
	f.t.Helper()
	qty := D(stock)
	if qty.IsZero() {
		return
	}
	_, err := f.Ledger.RecordMovement(context.Background(), nil, inventory.MovementInput{
		Ref:       ref,
		CompanyID: f.CompanyID,
		UserID:    f.UserID,
		Type:      entity.MovementTypeManual,
		Quantity:  qty,
		Reason:    "stock inicial",
	})
	require.NoError(f.t, err)
}

// Stock stock actual de la entidad.
func (f *Fixture) Stock(ref entity.EntityRef) decimal.Decimal {
	f.t.Helper()
	s, err := f.Store.Stock().Current(context.Background(), ref, f.CompanyID)
	require.NoError(f.t, err)
	return s
}

// Movements historial completo de la entidad.
func (f *Fixture) Movements(ref entity.EntityRef) []*entity.StockMovement {
	f.t.Helper()
	movs, err := f.Store.Movements().ListByEntity(context.Background(), ref, f.CompanyID, 1000, 0)
	require.NoError(f.t, err)
	return movs
}

// RequireConsistent verifica la invariante de cada fila, la continuidad y que el stock coincida con el último saldo.
func (f *Fixture) RequireConsistent(ref entity.EntityRef) {
	f.t.Helper()
	rec, err := f.Ledger.Reconcile(context.Background(), ref, f.CompanyID)
	require.NoError(f.t, err)
	require.True(f.t, rec.Consistent, "ledger inconsistente para %s: %v", ref, rec.Issues)
}

// ── Telemetría ───────────────────────────────────────────────────────────────

// Report llamada registrada por SpyReporter.
type Report struct {
	Operation string
	Err       error
	Payload   any
}

// SpyReporter implementa ports.ErrorReporter guardando las llamadas.
type SpyReporter struct {
	mu    sync.Mutex
	calls []Report
}

// Report registra la llamada.
func (s *SpyReporter) Report(_ context.Context, operation string, err error, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Report{Operation: operation, Err: err, Payload: payload})
}

// Calls copia de las llamadas registradas.
func (s *SpyReporter) Calls() []Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Report(nil), s.calls...)
}

// ── Fallas de infraestructura ────────────────────────────────────────────────

// FaultyRunner envuelve un TxRunner e inyecta Err en la escritura indicada, simulando una caída de la BD.
type FaultyRunner struct {
	Inner repository.TxRunner
	Err   error
	// FailOn "movements", "orders" o "sales".
	FailOn string
}

// Run delega en Inner con un UnitOfWork que falla en FailOn.
func (r *FaultyRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return r.Inner.Run(ctx, func(uow repository.UnitOfWork) error {
		return fn(faultyUoW{UnitOfWork: uow, r: r})
	})
}

type faultyUoW struct {
	repository.UnitOfWork
	r *FaultyRunner
}

func (u faultyUoW) Movements() repository.StockMovementRepository {
	if u.r.FailOn != "movements" {
		return u.UnitOfWork.Movements()
	}
	return failingMovements{StockMovementRepository: u.UnitOfWork.Movements(), err: u.r.Err}
}

func (u faultyUoW) ProductionOrders() repository.ProductionOrderRepository {
	if u.r.FailOn != "orders" {
		return u.UnitOfWork.ProductionOrders()
	}
	return failingOrders{ProductionOrderRepository: u.UnitOfWork.ProductionOrders(), err: u.r.Err}
}

func (u faultyUoW) Sales() repository.SaleRepository {
	if u.r.FailOn != "sales" {
		return u.UnitOfWork.Sales()
	}
	return failingSales{SaleRepository: u.UnitOfWork.Sales(), err: u.r.Err}
}

type failingMovements struct {
	repository.StockMovementRepository
	err error
}

func (m failingMovements) Create(context.Context, *entity.StockMovement) error { return m.err }

type failingOrders struct {
	repository.ProductionOrderRepository
	err error
}

func (o failingOrders) Create(context.Context, *entity.ProductionOrder) error { return o.err }

type failingSales struct {
	repository.SaleRepository
	err error
}

func (s failingSales) Update(context.Context, *entity.Sale) error { return s.err }
