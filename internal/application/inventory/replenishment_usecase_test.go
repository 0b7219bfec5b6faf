package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory/memtest"
)

func catalogProduct(t *testing.T, f *memtest.Fixture, name, stock, minStock, cost string, active bool) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.Store.Products().Create(context.Background(), &entity.Product{
		ID: uuid.New().String(), CompanyID: f.CompanyID, SKU: "SKU-" + name, Name: name,
		Kind: entity.ProductKindProduced, Cost: D(cost), Stock: D(stock), MinStock: D(minStock),
		IsActive: active, CreatedAt: now, UpdatedAt: now,
	}))
}

func catalogIngredient(t *testing.T, f *memtest.Fixture, name, stock, minStock, cost string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.Store.Ingredients().Create(context.Background(), &entity.Ingredient{
		ID: uuid.New().String(), CompanyID: f.CompanyID, Name: name, Unit: entity.UnitKilogram,
		Cost: D(cost), Stock: D(stock), MinStock: D(minStock), IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestGenerateReplenishmentList_OrdenYCantidades(t *testing.T) {
	f := memtest.New(t, true)
	catalogProduct(t, f, "Pan", "2", "10", "400", true)
	catalogProduct(t, f, "Torta", "0", "5", "9000", false)
	catalogIngredient(t, f, "Harina", "1", "4", "2000")
	catalogIngredient(t, f, "Leche", "5", "5", "4000")
	catalogIngredient(t, f, "Sal", "-1", "0", "100")

	list, err := inventory.NewReplenishmentUseCase(f.Store).GenerateReplenishmentList(context.Background(), f.CompanyID)
	require.NoError(t, err)
	require.Len(t, list, 3, "inactivos y stock igual al mínimo quedan fuera")

	assert.Equal(t, "Sal", list[0].Name)
	assert.True(t, D("100").Equal(list[0].DeficitPct))
	assert.True(t, D("1").Equal(list[0].SuggestedOrderQty))

	pan := list[1]
	assert.Equal(t, "Pan", pan.Name)
	assert.Equal(t, entity.EntityKindProduct, pan.EntityKind)
	assert.Equal(t, "SKU-Pan", pan.SKU)
	assert.True(t, D("80").Equal(pan.DeficitPct), "obtenido %s", pan.DeficitPct)
	assert.True(t, D("15").Equal(pan.IdealStock))
	assert.True(t, D("13").Equal(pan.SuggestedOrderQty))
	assert.True(t, D("5200").Equal(pan.EstimatedOrderCost))

	harina := list[2]
	assert.Equal(t, entity.EntityKindIngredient, harina.EntityKind)
	assert.Equal(t, "KG", harina.Unit)
	assert.True(t, D("75").Equal(harina.DeficitPct))
	assert.True(t, D("10000").Equal(harina.EstimatedOrderCost))

	for i, s := range list {
		assert.Equal(t, i+1, s.Priority)
	}
}

func TestGenerateReplenishmentList_SinFaltantes(t *testing.T) {
	f := memtest.New(t, false)
	catalogIngredient(t, f, "Harina", "10", "4", "2000")

	list, err := inventory.NewReplenishmentUseCase(f.Store).GenerateReplenishmentList(context.Background(), f.CompanyID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = inventory.NewReplenishmentUseCase(f.Store).GenerateReplenishmentList(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
