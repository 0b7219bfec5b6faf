package production_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/production"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory/memtest"
)

var D = memtest.D

func newUseCase(f *memtest.Fixture) *production.ProduceUseCase {
	return production.NewProduceUseCase(f.Store, f.Store, f.Ledger, nil)
}

func input(f *memtest.Fixture, productID, qty string) production.ProduceInput {
	return production.ProduceInput{ProductID: productID, Quantity: D(qty), CompanyID: f.CompanyID, UserID: f.UserID}
}

func TestProduce_CostoTotalYDesglose(t *testing.T) {
	f := memtest.New(t, false)
	a := f.Ingredient("A", entity.UnitPiece, "2", "10")
	b := f.Ingredient("B", entity.UnitPiece, "3", "10")
	p := f.Product("Combo", entity.ProductKindProduced, "20", "0", "0")
	f.RecipeLine(p.ID, a.ID, "2", entity.UnitPiece)
	f.RecipeLine(p.ID, b.ID, "1", entity.UnitPiece)

	res, err := newUseCase(f).Produce(context.Background(), input(f, p.ID, "1"))
	require.NoError(t, err)

	assert.True(t, D("7").Equal(res.Order.TotalCost), "2×2 + 1×3")
	assert.True(t, D("7").Equal(res.UnitCost()))
	assert.True(t, D("1").Equal(res.ProductStock))
	require.Len(t, res.Ingredients, 2)
	byID := map[string]production.IngredientConsumption{}
	for _, c := range res.Ingredients {
		byID[c.IngredientID] = c
	}
	assert.True(t, D("2").Equal(byID[a.ID].Amount))
	assert.True(t, D("4").Equal(byID[a.ID].Cost))
	assert.Equal(t, "B", byID[b.ID].Name)

	assert.True(t, D("8").Equal(f.Stock(entity.IngredientRef(a.ID))))
	assert.True(t, D("9").Equal(f.Stock(entity.IngredientRef(b.ID))))

	order, err := f.Store.ProductionOrders().GetByID(context.Background(), res.Order.ID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, f.UserID, order.CreatedBy)

	// el costo de la corrida alimenta el costo promedio del producto
	prod, err := f.Store.Products().GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, D("7").Equal(prod.Cost))

	for _, ref := range []entity.EntityRef{entity.IngredientRef(a.ID), entity.IngredientRef(b.ID), entity.ProductRef(p.ID)} {
		f.RequireConsistent(ref)
	}
}

func TestProduce_ConvierteUnidades(t *testing.T) {
	f := memtest.New(t, false)
	flour := f.Ingredient("Harina", entity.UnitKilogram, "2000", "1")
	milk := f.Ingredient("Leche", entity.UnitLiter, "4000", "2")
	p := f.Product("Pan", entity.ProductKindProduced, "5000", "0", "0")
	f.RecipeLine(p.ID, flour.ID, "250", entity.UnitGram)
	f.RecipeLine(p.ID, milk.ID, "100", entity.UnitMilliliter)

	res, err := newUseCase(f).Produce(context.Background(), input(f, p.ID, "2"))
	require.NoError(t, err)

	// 500 g = 0.5 kg → 1000; 200 ml = 0.2 l → 800
	assert.True(t, D("1800").Equal(res.Order.TotalCost))
	assert.True(t, D("0.5").Equal(f.Stock(entity.IngredientRef(flour.ID))))
	assert.True(t, D("1.8").Equal(f.Stock(entity.IngredientRef(milk.ID))))
	assert.True(t, D("900").Equal(res.UnitCost()))
}

func TestProduce_TodoONada(t *testing.T) {
	f := memtest.New(t, false)
	a := f.Ingredient("A", entity.UnitPiece, "2", "1")
	b := f.Ingredient("B", entity.UnitPiece, "3", "10")
	p := f.Product("Combo", entity.ProductKindProduced, "20", "0", "0")
	f.RecipeLine(p.ID, a.ID, "2", entity.UnitPiece)
	f.RecipeLine(p.ID, b.ID, "1", entity.UnitPiece)

	_, err := newUseCase(f).Produce(context.Background(), input(f, p.ID, "1"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "A")

	assert.True(t, D("1").Equal(f.Stock(entity.IngredientRef(a.ID))))
	assert.True(t, D("10").Equal(f.Stock(entity.IngredientRef(b.ID))))
	assert.True(t, D("0").Equal(f.Stock(entity.ProductRef(p.ID))))
	assert.Len(t, f.Movements(entity.IngredientRef(b.ID)), 1)
}

func TestProduce_FallaDeInfraestructuraRevierteYReporta(t *testing.T) {
	f := memtest.New(t, false)
	a := f.Ingredient("A", entity.UnitPiece, "2", "10")
	p := f.Product("Combo", entity.ProductKindProduced, "20", "0", "0")
	f.RecipeLine(p.ID, a.ID, "2", entity.UnitPiece)

	spy := &memtest.SpyReporter{}
	boom := errors.New("timeout de escritura")
	runner := &memtest.FaultyRunner{Inner: f.Store, Err: boom, FailOn: "orders"}
	uc := production.NewProduceUseCase(runner, f.Store, f.Ledger, spy)

	in := input(f, p.ID, "3")
	_, err := uc.Produce(context.Background(), in)
	require.ErrorIs(t, err, boom)

	calls := spy.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "production.produce", calls[0].Operation)
	assert.Equal(t, in, calls[0].Payload)

	assert.True(t, D("10").Equal(f.Stock(entity.IngredientRef(a.ID))), "los descuentos se revierten")
	assert.True(t, D("0").Equal(f.Stock(entity.ProductRef(p.ID))))
	assert.Len(t, f.Movements(entity.IngredientRef(a.ID)), 1)
}

func TestProduce_ErroresDeNegocio(t *testing.T) {
	f := memtest.New(t, false)
	a := f.Ingredient("A", entity.UnitPiece, "2", "10")
	produced := f.Product("Combo", entity.ProductKindProduced, "20", "0", "0")
	f.RecipeLine(produced.ID, a.ID, "1", entity.UnitPiece)
	noRecipe := f.Product("Sin receta", entity.ProductKindProduced, "20", "0", "0")
	resale := f.Product("Gaseosa", entity.ProductKindResale, "3000", "1500", "0")
	inactive := f.Product("Viejo", entity.ProductKindProduced, "20", "0", "0")
	f.RecipeLine(inactive.ID, a.ID, "1", entity.UnitPiece)
	require.NoError(t, f.Store.Products().SetActive(context.Background(), inactive.ID, false))

	spy := &memtest.SpyReporter{}
	uc := production.NewProduceUseCase(f.Store, f.Store, f.Ledger, spy)

	tests := []struct {
		name string
		in   production.ProduceInput
		kind domain.ErrorKind
	}{
		{"cantidad cero", input(f, produced.ID, "0"), domain.KindInvalidInput},
		{"cantidad negativa", input(f, produced.ID, "-1"), domain.KindInvalidInput},
		{"cantidad con más de 6 decimales", input(f, produced.ID, "0.0000005"), domain.KindInvalidInput},
		{"producto inexistente", input(f, "nope", "1"), domain.KindNotFound},
		{"producto de reventa", input(f, resale.ID, "1"), domain.KindInvalidInput},
		{"sin receta", input(f, noRecipe.ID, "1"), domain.KindInvalidInput},
		{"producto inactivo", input(f, inactive.ID, "1"), domain.KindInactiveEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Produce(context.Background(), tt.in)
			kind, ok := domain.KindOf(err)
			require.True(t, ok, "error: %v", err)
			assert.Equal(t, tt.kind, kind)
		})
	}
	assert.Empty(t, spy.Calls(), "los errores de negocio no se reportan")
}

func TestProduce_ConsumoConvertidoExcedeDecimales(t *testing.T) {
	f := memtest.New(t, false)
	sal := f.Ingredient("Sal", entity.UnitKilogram, "1000", "1")
	p := f.Product("Pizca", entity.ProductKindProduced, "10", "0", "0")
	// 0.0015 g = 0.0000015 kg
	f.RecipeLine(p.ID, sal.ID, "0.0015", entity.UnitGram)

	_, err := newUseCase(f).Produce(context.Background(), input(f, p.ID, "1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Sal")
	assert.True(t, D("1").Equal(f.Stock(entity.IngredientRef(sal.ID))))
	assert.Len(t, f.Movements(entity.IngredientRef(sal.ID)), 1)
}

func TestProduce_IngredienteInactivo(t *testing.T) {
	f := memtest.New(t, false)
	a := f.Ingredient("A", entity.UnitPiece, "2", "10")
	p := f.Product("Combo", entity.ProductKindProduced, "20", "0", "0")
	f.RecipeLine(p.ID, a.ID, "1", entity.UnitPiece)
	require.NoError(t, f.Store.Ingredients().SetActive(context.Background(), a.ID, false))

	_, err := newUseCase(f).Produce(context.Background(), input(f, p.ID, "1"))
	assert.ErrorIs(t, err, domain.ErrInactiveEntity)
}
