package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

const catalogPageSize = 500

// idealStockFactor stock objetivo al reponer = MinStock × 1.5.
var idealStockFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase genera la lista de reposición de productos e ingredientes activos bajo su stock mínimo.
type ReplenishmentUseCase struct {
	reader repository.UnitOfWork
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(reader repository.UnitOfWork) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{reader: reader}
}

// GenerateReplenishmentList devuelve las entidades con Stock < MinStock, la cantidad sugerida
// para llegar al stock ideal y su costo estimado. Orden: mayor déficit relativo primero.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, companyID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	if companyID == "" {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "empresa obligatoria")
	}
	suggestions := []dto.ReplenishmentSuggestionDTO{}

	for offset := 0; ; offset += catalogPageSize {
		page, err := uc.reader.Products().ListByCompany(ctx, companyID, catalogPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		for _, p := range page {
			if !p.IsActive || !p.Stock.LessThan(p.MinStock) {
				continue
			}
			s := suggestion(entity.ProductRef(p.ID), p.Name, "", p.Stock, p.MinStock, p.Cost)
			s.SKU = p.SKU
			suggestions = append(suggestions, s)
		}
		if len(page) < catalogPageSize {
			break
		}
	}

	for offset := 0; ; offset += catalogPageSize {
		page, err := uc.reader.Ingredients().ListByCompany(ctx, companyID, catalogPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list ingredients: %w", err)
		}
		for _, i := range page {
			if !i.IsActive || !i.Stock.LessThan(i.MinStock) {
				continue
			}
			suggestions = append(suggestions, suggestion(entity.IngredientRef(i.ID), i.Name, string(i.Unit), i.Stock, i.MinStock, i.Cost))
		}
		if len(page) < catalogPageSize {
			break
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.DeficitPct.Equal(b.DeficitPct) {
			return a.DeficitPct.GreaterThan(b.DeficitPct)
		}
		return a.EstimatedOrderCost.GreaterThan(b.EstimatedOrderCost)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func suggestion(ref entity.EntityRef, name, unit string, stock, minStock, unitCost decimal.Decimal) dto.ReplenishmentSuggestionDTO {
	ideal := minStock.Mul(idealStockFactor)
	qty := ideal.Sub(stock)
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	// déficit relativo: (MinStock - Stock) / MinStock en %; con MinStock 0 solo llega aquí stock negativo
	deficit := decimal.NewFromInt(100)
	if minStock.IsPositive() {
		deficit = minStock.Sub(stock).Div(minStock).Mul(deficit).Round(2)
	}
	return dto.ReplenishmentSuggestionDTO{
		EntityKind:         ref.Kind,
		EntityID:           ref.ID,
		Name:               name,
		Unit:               unit,
		CurrentStock:       stock,
		MinStock:           minStock,
		IdealStock:         ideal,
		SuggestedOrderQty:  qty,
		UnitCost:           unitCost,
		EstimatedOrderCost: qty.Mul(unitCost),
		DeficitPct:         deficit,
	}
}
