package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/sales"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory/memtest"
)

var D = memtest.D

func newUseCase(f *memtest.Fixture) *sales.SaleUseCase {
	return sales.NewSaleUseCase(f.Store, f.Store, f.Ledger, nil)
}

func saleOf(f *memtest.Fixture, saleID string, items ...sales.ItemInput) sales.UpsertInput {
	return sales.UpsertInput{SaleID: saleID, CompanyID: f.CompanyID, UserID: f.UserID, Items: items}
}

func item(productID, qty string) sales.ItemInput {
	return sales.ItemInput{ProductID: productID, Quantity: D(qty)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsertSale_Crea(t *testing.T) {
	f := memtest.New(t, false)
	soda := f.Product("Gaseosa", entity.ProductKindResale, "3000", "1500", "10")
	chips := f.Product("Papas", entity.ProductKindResale, "2500", "1000", "4")
	date := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	in := saleOf(f, "", item(soda.ID, "3"), item(chips.ID, "2"))
	in.Date = &date
	sale, err := newUseCase(f).UpsertSale(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusActive, sale.Status)
	assert.True(t, date.Equal(sale.Date))
	require.Len(t, sale.Items, 2)
	assert.True(t, D("14000").Equal(sale.TotalAmount), "3×3000 + 2×2500")
	assert.True(t, D("6500").Equal(sale.TotalCost), "3×1500 + 2×1000")
	assert.True(t, D("7").Equal(f.Stock(entity.ProductRef(soda.ID))))
	assert.True(t, D("2").Equal(f.Stock(entity.ProductRef(chips.ID))))

	movs, err := f.Store.Movements().ListBySale(context.Background(), sale.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeSale, m.Type)
		assert.True(t, m.Quantity.IsNegative())
	}
}

func TestUpsertSale_SinStockSuficiente(t *testing.T) {
	f := memtest.New(t, false)
	p := f.Product("Gaseosa", entity.ProductKindResale, "3000", "1500", "5")
	other := f.Product("Papas", entity.ProductKindResale, "2500", "1000", "10")

	_, err := newUseCase(f).UpsertSale(context.Background(), saleOf(f, "", item(other.ID, "1"), item(p.ID, "6")))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, D("5").Equal(f.Stock(entity.ProductRef(p.ID))))
	assert.True(t, D("10").Equal(f.Stock(entity.ProductRef(other.ID))), "el primer ítem se revierte")
	assert.Len(t, f.Movements(entity.ProductRef(p.ID)), 1)
	assert.Len(t, f.Movements(entity.ProductRef(other.ID)), 1)
}

func TestUpsertSale_StockNegativoPermitido(t *testing.T) {
	f := memtest.New(t, true)
	p := f.Product("Gaseosa", entity.ProductKindResale, "3000", "1500", "5")

	_, err := newUseCase(f).UpsertSale(context.Background(), saleOf(f, "", item(p.ID, "6")))
	require.NoError(t, err)
	assert.True(t, D("-1").Equal(f.Stock(entity.ProductRef(p.ID))))
	f.RequireConsistent(entity.ProductRef(p.ID))
}

func TestUpsertSale_CostoDeRecetaVigente(t *testing.T) {
	f := memtest.New(t, false)
	flour := f.Ingredient("Harina", entity.UnitKilogram, "2000", "10")
	bread := f.Product("Pan", entity.ProductKindProduced, "5000", "100", "5")
	f.RecipeLine(bread.ID, flour.ID, "200", entity.UnitGram)

	sale, err := newUseCase(f).UpsertSale(context.Background(), saleOf(f, "", item(bread.ID, "2")))
	require.NoError(t, err)
	// 0.2 kg × 2000, no el costo cacheado del producto
	assert.True(t, D("400").Equal(sale.Items[0].BaseCost))
	assert.True(t, D("800").Equal(sale.TotalCost))
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsertSale_EdicionRevierteYReaplica(t *testing.T) {
	f := memtest.New(t, false)
	p := f.Product("Gaseosa", entity.ProductKindResale, "3000", "1500", "10")
	uc := newUseCase(f)
	ref := entity.ProductRef(p.ID)

	sale, err := uc.UpsertSale(context.Background(), saleOf(f, "", item(p.ID, "3")))
	require.NoError(t, err)
	assert.True(t, D("7").Equal(f.Stock(ref)))

	edited, err := uc.UpsertSale(context.Background(), saleOf(f, sale.ID, item(p.ID, "5")))
	require.NoError(t, err)
	assert.Equal(t, sale.ID, edited.ID)
	require.Len(t, edited.Items, 1)
	assert.True(t, D("15000").Equal(edited.TotalAmount))
	assert.True(t, D("5").Equal(f.Stock(ref)))

	movs := f.Movements(ref)
	require.Len(t, movs, 4)
	assert.Equal(t, entity.MovementTypeSale, movs[1].Type)
	assert.True(t, D("-3").Equal(movs[1].Quantity))
	assert.Equal(t, entity.MovementTypeCancel, movs[2].Type)
	assert.True(t, D("3").Equal(movs[2].Quantity))
	assert.True(t, D("10").Equal(movs[2].StockAfter))
	assert.Equal(t, entity.MovementTypeSale, movs[3].Type)
	assert.True(t, D("-5").Equal(movs[3].Quantity))
	f.RequireConsistent(ref)

	stored, err := uc.GetSale(context.Background(), sale.ID, f.CompanyID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1, "los ítems previos se eliminan")
	assert.True(t, D("5").Equal(stored.Items[0].Quantity))
}

func TestUpsertSale_EdicionPuedeUsarElStockLiberado(t *testing.T) {
	f := memtest.New(t, false)
	p := f.Product("Gaseosa", entity.ProductKindResale, "3000", "1500", "4")
	uc := newUseCase(f)

	sale, err := uc.UpsertSale(context.Background(), saleOf(f, "", item(p.ID, "4")))
	require.NoError(t, err)
	// stock 0, pero la reversión devuelve 4 antes de reaplicar
	_, err = uc.UpsertSale(context.Background(), saleOf(f, sale.ID, item(p.ID, "3")))
	require.NoError(t, err)
	assert.True(t, D("1").Equal(f.Stock(entity.ProductRef(p.ID))))
}

func TestUpsertSale_EdicionFallidaNoDejaEstadoParcial(t *testing.T) {
	f := memtest.New(t, false)
	p := f.Product("Gaseosa", entity.ProductKindResale, "3000", "1500", "10")
	uc := newUseCase(f)

	sale, err := uc.UpsertSale(context.Background(), saleOf(f, "", item(p.ID, "3")))
	require.NoError(t, err)

	_, err = uc.UpsertSale(context.Background(), saleOf(f, sale.ID, item(p.ID, "11")))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, D("7").Equal(f.Stock(entity.ProductRef(p.ID))))
	stored, err := uc.GetSale(context.Background(), sale.ID, f.CompanyID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.True(t, D("3").Equal(stored.Items[0].Quantity))
}

func TestUpsertSale_CostoCongelado(t *testing.T) {
	f := memtest.New(t, false)
	flour := f.Ingredient("Harina", entity.UnitKilogram, "2000", "10")
	bread := f.Product("Pan", entity.ProductKindProduced, "5000", "0", "5")
	soda := f.Product("Gaseosa", entity.ProductKindResale, "3000", "1500", "10")
	f.RecipeLine(bread.ID, flour.ID, "200", entity.UnitGram)
	uc := newUseCase(f)

	sale, err := uc.UpsertSale(context.Background(), saleOf(f, "", item(bread.ID, "1"), item(soda.ID, "1")))
	require.NoError(t, err)

	require.NoError(t, f.Store.Ingredients().UpdateCost(context.Background(), flour.ID, D("9000")))
	require.NoError(t, f.Store.Products().UpdateCost(context.Background(), soda.ID, D("2800")))

	stored, err := uc.GetSale(context.Background(), sale.ID, f.CompanyID)
	require.NoError(t, err)
	for _, it := range stored.Items {
		switch it.ProductID {
		case bread.ID:
			assert.True(t, D("400").Equal(it.BaseCost), "pan: %s", it.BaseCost)
		case soda.ID:
			assert.True(t, D("1500").Equal(it.BaseCost), "gaseosa: %s", it.BaseCost)
		}
	}
	assert.True(t, D("1900").Equal(stored.TotalCost))
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelSale(t *testing.T) {
	f := memtest.New(t, false)
	p := f.Product("Gaseosa", entity.ProductKindResale, "3000", "1500", "10")
	uc := newUseCase(f)

	sale, err := uc.UpsertSale(context.Background(), saleOf(f, "", item(p.ID, "4")))
	require.NoError(t, err)

	canceled, err := uc.CancelSale(context.Background(), sale.ID, f.CompanyID, f.UserID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCanceled, canceled.Status)
	assert.True(t, D("10").Equal(f.Stock(entity.ProductRef(p.ID))))

	stored, err := uc.GetSale(context.Background(), sale.ID, f.CompanyID)
	require.NoError(t, err)
	assert.True(t, stored.IsCanceled())
	assert.Len(t, stored.Items, 1, "los ítems se conservan")

	_, err = uc.CancelSale(context.Background(), sale.ID, f.CompanyID, f.UserID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.UpsertSale(context.Background(), saleOf(f, sale.ID, item(p.ID, "1")))
	assert.ErrorIs(t, err, domain.ErrSaleCanceled)
	assert.True(t, D("10").Equal(f.Stock(entity.ProductRef(p.ID))))
	f.RequireConsistent(entity.ProductRef(p.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsertSale_ErroresDeNegocio(t *testing.T) {
	f := memtest.New(t, false)
	p := f.Product("Gaseosa", entity.ProductKindResale, "3000", "1500", "10")
	inactive := f.Product("Viejo", entity.ProductKindResale, "3000", "1500", "10")
	require.NoError(t, f.Store.Products().SetActive(context.Background(), inactive.ID, false))
	other := memtest.New(t, false)
	foreign := other.Product("Ajeno", entity.ProductKindResale, "1", "1", "1")

	spy := &memtest.SpyReporter{}
	uc := sales.NewSaleUseCase(f.Store, f.Store, f.Ledger, spy)

	tests := []struct {
		name string
		in   sales.UpsertInput
		kind domain.ErrorKind
	}{
		{"sin ítems", saleOf(f, ""), domain.KindInvalidInput},
		{"cantidad cero", saleOf(f, "", item(p.ID, "0")), domain.KindInvalidInput},
		{"cantidad con más de 6 decimales", saleOf(f, "", item(p.ID, "1.0000001")), domain.KindInvalidInput},
		{"producto inexistente", saleOf(f, "", item("nope", "1")), domain.KindNotFound},
		{"producto de otra empresa", saleOf(f, "", item(foreign.ID, "1")), domain.KindNotFound},
		{"producto inactivo", saleOf(f, "", item(inactive.ID, "1")), domain.KindInactiveEntity},
		{"venta inexistente", saleOf(f, "no-existe", item(p.ID, "1")), domain.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.UpsertSale(context.Background(), tt.in)
			kind, ok := domain.KindOf(err)
			require.True(t, ok, "error: %v", err)
			assert.Equal(t, tt.kind, kind)
		})
	}
	assert.Empty(t, spy.Calls())
	assert.True(t, D("10").Equal(f.Stock(entity.ProductRef(p.ID))))
}

func TestUpsertSale_FallaDeInfraestructuraReportaPayload(t *testing.T) {
	f := memtest.New(t, false)
	p := f.Product("Gaseosa", entity.ProductKindResale, "3000", "1500", "10")
	spy := &memtest.SpyReporter{}
	boom := errors.New("conexión reiniciada")
	runner := &memtest.FaultyRunner{Inner: f.Store, Err: boom, FailOn: "sales"}
	uc := sales.NewSaleUseCase(runner, f.Store, f.Ledger, spy)

	in := saleOf(f, "", item(p.ID, "2"))
	_, err := uc.UpsertSale(context.Background(), in)
	require.ErrorIs(t, err, boom)

	calls := spy.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "sales.upsert", calls[0].Operation)
	assert.Equal(t, in, calls[0].Payload)
	assert.True(t, D("10").Equal(f.Stock(entity.ProductRef(p.ID))))
}
