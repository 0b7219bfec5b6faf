package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// RecordMovementFromRequest adapta el request HTTP de ajuste manual a RecordMovement en transacción propia.
// Solo admite ADJUSTMENT y MANUAL: los demás tipos los generan producción y ventas.
func (l *StockLedger) RecordMovementFromRequest(ctx context.Context, companyID, userID string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	if in.Type != entity.MovementTypeAdjustment && in.Type != entity.MovementTypeManual {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "tipo de movimiento no permitido: %q", in.Type)
	}
	input := MovementInput{
		Ref:       entity.EntityRef{Kind: in.EntityKind, ID: in.EntityID},
		CompanyID: companyID,
		UserID:    userID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UnitCost:  in.UnitCost,
	}
	mov, err := l.RecordMovement(ctx, nil, input)
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// ToMovementResponse convierte una fila del ledger en DTO.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		IngredientID: m.IngredientID,
		UserID:       m.UserID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		StockBefore:  m.StockBefore,
		StockAfter:   m.StockAfter,
		SaleID:       m.SaleID,
		Reason:       m.Reason,
		CreatedAt:    m.CreatedAt,
	}
}
