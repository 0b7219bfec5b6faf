package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// RecipeUseCase administra las líneas de receta. Las unidades se validan aquí, al crear la línea,
// para que la conversión durante producción/venta nunca mezcle familias.
type RecipeUseCase struct {
	uow repository.UnitOfWork
	now func() time.Time
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(uow repository.UnitOfWork) *RecipeUseCase {
	return &RecipeUseCase{uow: uow, now: time.Now}
}

// SetLineInput entrada para crear o reemplazar una línea (ProductID, IngredientID).
type SetLineInput struct {
	CompanyID    string
	ProductID    string
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
}

// LineView línea con su ingrediente y el costo por unidad de producto.
type LineView struct {
	Line       *entity.RecipeLine
	Ingredient *entity.Ingredient
	Cost       decimal.Decimal
}

// RecipeView receta completa con costo efectivo vigente.
type RecipeView struct {
	Product       *entity.Product
	Lines         []LineView
	EffectiveCost decimal.Decimal
}

// SetRecipeLine crea o reemplaza una línea de receta.
func (uc *RecipeUseCase) SetRecipeLine(ctx context.Context, in SetLineInput) (*entity.RecipeLine, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "la cantidad de la receta debe ser mayor a cero")
	}
	if !entity.FitsScale(in.Quantity) {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "la cantidad de la receta admite como máximo %d decimales", entity.QuantityScale)
	}
	unit, ok := entity.ParseUnit(in.Unit)
	if !ok {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "unidad desconocida: %q", in.Unit)
	}
	product, err := uc.producedProduct(ctx, in.ProductID, in.CompanyID)
	if err != nil {
		return nil, err
	}
	ing, err := uc.uow.Ingredients().GetByID(ctx, in.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	if ing == nil || ing.CompanyID != in.CompanyID {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "ingrediente %s no encontrado", in.IngredientID)
	}
	if err := inventory.CheckCompatible(unit, ing.Unit); err != nil {
		var mismatch *inventory.UnitMismatchError
		if errors.As(err, &mismatch) {
			return nil, domain.NewBusinessError(domain.ErrInvalidInput,
				"la unidad %s no es compatible con la unidad de inventario de %s (%s)", unit, ing.Name, ing.Unit)
		}
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "%v", err)
	}

	now := uc.now()
	line := &entity.RecipeLine{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		ProductID:    product.ID,
		IngredientID: ing.ID,
		Quantity:     in.Quantity,
		Unit:         unit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.uow.Recipes().Upsert(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// RemoveRecipeLine elimina la línea (ProductID, IngredientID).
func (uc *RecipeUseCase) RemoveRecipeLine(ctx context.Context, companyID, productID, ingredientID string) error {
	if _, err := uc.producedProduct(ctx, productID, companyID); err != nil {
		return err
	}
	deleted, err := uc.uow.Recipes().Delete(ctx, productID, ingredientID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NewBusinessError(domain.ErrNotFound, "el ingrediente %s no está en la receta", ingredientID)
	}
	return nil
}

// GetRecipe devuelve la receta con el costo de cada línea y el costo efectivo por unidad.
func (uc *RecipeUseCase) GetRecipe(ctx context.Context, companyID, productID string) (*RecipeView, error) {
	product, err := uc.uow.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "producto %s no encontrado", productID)
	}
	lines, err := uc.uow.Recipes().ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.IngredientID)
	}
	ingredients, err := uc.uow.Ingredients().GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &RecipeView{Product: product, EffectiveCost: decimal.Zero}
	for _, l := range lines {
		ing := ingredients[l.IngredientID]
		if ing == nil {
			return nil, domain.NewBusinessError(domain.ErrNotFound, "ingrediente %s de la receta no encontrado", l.IngredientID)
		}
		cost := inventory.CalculateCost(l.Quantity, l.Unit, ing.Unit, ing.Cost)
		view.Lines = append(view.Lines, LineView{Line: l, Ingredient: ing, Cost: cost})
		view.EffectiveCost = view.EffectiveCost.Add(cost)
	}
	return view, nil
}

func (uc *RecipeUseCase) producedProduct(ctx context.Context, productID, companyID string) (*entity.Product, error) {
	product, err := uc.uow.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "producto %s no encontrado", productID)
	}
	if !product.IsSelfProduced() {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "el producto %s no es de fabricación propia", product.Name)
	}
	return product, nil
}
