package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

func newCompany(t *testing.T, store *memory.Store) string {
	t.Helper()
	res, err := usecase.NewCompanyUseCase(store.Companies()).Create(context.Background(), dto.CreateCompanyRequest{Name: "Panadería"})
	require.NoError(t, err)
	return res.ID
}

// ── Company ──────────────────────────────────────────────────────────────────

func TestCompanyUseCase(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCompanyUseCase(store.Companies())
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Tienda", AllowNegativeStock: true})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.AllowNegativeStock)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tienda", got.Name)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Product ──────────────────────────────────────────────────────────────────

func TestProductUseCase_CreateArrancaSinStock(t *testing.T) {
	store := memory.NewStore()
	companyID := newCompany(t, store)
	uc := usecase.NewProductUseCase(store.Products())

	res, err := uc.Create(context.Background(), companyID, dto.CreateProductRequest{
		SKU: "PAN-1", Name: "Pan", Kind: entity.ProductKindProduced,
		Price: decimal.NewFromInt(5000), MinStock: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, res.Stock.IsZero())
	assert.True(t, res.IsActive)
	assert.Equal(t, companyID, res.CompanyID)
}

func TestProductUseCase_SKUDuplicadoEsConflicto(t *testing.T) {
	store := memory.NewStore()
	companyID := newCompany(t, store)
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()
	in := dto.CreateProductRequest{SKU: "GAS-1", Name: "Gaseosa", Kind: entity.ProductKindResale, Price: decimal.NewFromInt(3000)}

	_, err := uc.Create(ctx, companyID, in)
	require.NoError(t, err)

	_, err = uc.Create(ctx, companyID, in)
	require.Error(t, err)
	kind, ok := domain.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindConflict, kind)

	// el SKU es único por empresa
	_, err = uc.Create(ctx, newCompany(t, store), in)
	assert.NoError(t, err)
}

func TestProductUseCase_EntradaInvalida(t *testing.T) {
	store := memory.NewStore()
	companyID := newCompany(t, store)
	uc := usecase.NewProductUseCase(store.Products())

	tests := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"tipo desconocido", dto.CreateProductRequest{SKU: "X", Name: "X", Kind: "SERVICE"}},
		{"precio negativo", dto.CreateProductRequest{SKU: "X", Name: "X", Kind: entity.ProductKindResale, Price: decimal.NewFromInt(-1)}},
		{"stock mínimo negativo", dto.CreateProductRequest{SKU: "X", Name: "X", Kind: entity.ProductKindResale, MinStock: decimal.NewFromInt(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), companyID, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductUseCase_SetActiveYAislamientoPorEmpresa(t *testing.T) {
	store := memory.NewStore()
	companyID := newCompany(t, store)
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	p, err := uc.Create(ctx, companyID, dto.CreateProductRequest{SKU: "A", Name: "A", Kind: entity.ProductKindResale})
	require.NoError(t, err)

	res, err := uc.SetActive(ctx, companyID, p.ID, false)
	require.NoError(t, err)
	assert.False(t, res.IsActive)

	got, err := uc.GetByID(ctx, companyID, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive, "inactivo pero no eliminado")

	_, err = uc.GetByID(ctx, "otra-empresa", p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.SetActive(ctx, "otra-empresa", p.ID, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_List(t *testing.T) {
	store := memory.NewStore()
	companyID := newCompany(t, store)
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()
	for _, sku := range []string{"C", "A", "B"} {
		_, err := uc.Create(ctx, companyID, dto.CreateProductRequest{SKU: sku, Name: sku, Kind: entity.ProductKindResale})
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, companyID, 2, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "A", list.Items[0].Name)

	list, err = uc.List(ctx, companyID, 2, 2)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "C", list.Items[0].Name)
}

// ── Ingredient ───────────────────────────────────────────────────────────────

func TestIngredientUseCase(t *testing.T) {
	store := memory.NewStore()
	companyID := newCompany(t, store)
	uc := usecase.NewIngredientUseCase(store.Ingredients())
	ctx := context.Background()

	ing, err := uc.Create(ctx, companyID, dto.CreateIngredientRequest{Name: "Harina", Unit: "KG", Cost: decimal.NewFromInt(2000)})
	require.NoError(t, err)
	assert.Equal(t, string(entity.UnitKilogram), ing.Unit)
	assert.True(t, ing.Stock.IsZero())

	_, err = uc.Create(ctx, companyID, dto.CreateIngredientRequest{Name: "Azúcar", Unit: "LB"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, companyID, dto.CreateIngredientRequest{Name: "Sal", Unit: "G", Cost: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	off, err := uc.SetActive(ctx, companyID, ing.ID, false)
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	list, err := uc.List(ctx, companyID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.False(t, list.Items[0].IsActive)

	_, err = uc.GetByID(ctx, "otra-empresa", ing.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
