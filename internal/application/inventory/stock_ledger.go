package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// StockLedger es el único camino de mutación del stock de productos e ingredientes.
// Cada movimiento incrementa el stock de forma atómica (UPDATE ... RETURNING, fila bloqueada hasta el commit),
// valida la invariante de stock no negativo y agrega una fila inmutable al ledger.
type StockLedger struct {
	txRunner repository.TxRunner
	reader   repository.UnitOfWork
	reporter ports.ErrorReporter
	now      func() time.Time
}

// NewStockLedger construye el ledger. reader son repositorios fuera de transacción (consultas).
func NewStockLedger(txRunner repository.TxRunner, reader repository.UnitOfWork, reporter ports.ErrorReporter) *StockLedger {
	if reporter == nil {
		reporter = ports.NopErrorReporter{}
	}
	return &StockLedger{
		txRunner: txRunner,
		reader:   reader,
		reporter: reporter,
		now:      time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
// UnitCost (opcional, solo entradas) actualiza el costo promedio ponderado de la entidad.
type MovementInput struct {
	Ref       entity.EntityRef `json:"ref"`
	CompanyID string           `json:"company_id"`
	UserID    string           `json:"user_id"`
	Type      string           `json:"type"`
	Quantity  decimal.Decimal  `json:"quantity"`
	SaleID    *string          `json:"sale_id,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// RecordMovement registra un movimiento dentro de la transacción del caller (uow != nil)
// o en una transacción propia (uow == nil). En el segundo caso el ledger es el punto de entrada
// y reporta a telemetría las fallas de infraestructura.
func (l *StockLedger) RecordMovement(ctx context.Context, uow repository.UnitOfWork, in MovementInput) (*entity.StockMovement, error) {
	if uow != nil {
		return l.record(ctx, uow, in)
	}
	var mov *entity.StockMovement
	err := l.txRunner.Run(ctx, func(tx repository.UnitOfWork) error {
		var err error
		mov, err = l.record(ctx, tx, in)
		return err
	})
	if err != nil {
		if !domain.IsBusinessError(err) {
			l.reporter.Report(ctx, "ledger.record_movement", err, in)
		}
		return nil, err
	}
	return mov, nil
}

func (l *StockLedger) record(ctx context.Context, uow repository.UnitOfWork, in MovementInput) (*entity.StockMovement, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}
	company, err := uow.Companies().GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	if company == nil {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "empresa %s no encontrada", in.CompanyID)
	}

	// 1) incremento atómico + lectura del valor resultante
	after, err := uow.Stock().Increment(ctx, in.Ref, in.CompanyID, in.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewBusinessError(domain.ErrNotFound, "%s no encontrado", describeRef(in.Ref))
		}
		return nil, fmt.Errorf("increment stock %s: %w", in.Ref, err)
	}
	// 2) snapshot previo
	before := after.Sub(in.Quantity)

	// 3) invariante de stock no negativo; el caller revierte la transacción
	if after.IsNegative() && !company.AllowNegativeStock {
		name, unit, err := l.describe(ctx, uow, in.Ref)
		if err != nil {
			return nil, err
		}
		return nil, domain.InsufficientStockError(name, in.Quantity.Neg(), before, unit)
	}

	// 4) fila del ledger
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		CompanyID:   in.CompanyID,
		UserID:      in.UserID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		StockBefore: before,
		StockAfter:  after,
		SaleID:      in.SaleID,
		Reason:      in.Reason,
		CreatedAt:   l.now(),
	}
	id := in.Ref.ID
	if in.Ref.Kind == entity.EntityKindProduct {
		mov.ProductID = &id
	} else {
		mov.IngredientID = &id
	}
	mov.MustBeConsistent()
	if err := uow.Movements().Create(ctx, mov); err != nil {
		return nil, err
	}

	if in.UnitCost != nil && in.Quantity.IsPositive() {
		if err := l.applyReceiptCost(ctx, uow, in, before); err != nil {
			return nil, err
		}
	}
	return mov, nil
}

func validateMovement(in MovementInput) error {
	switch {
	case !in.Ref.Valid():
		return domain.NewBusinessError(domain.ErrInvalidInput, "referencia de entidad inválida")
	case in.CompanyID == "" || in.UserID == "":
		return domain.NewBusinessError(domain.ErrInvalidInput, "empresa y usuario son obligatorios")
	case !entity.IsValidMovementType(in.Type):
		return domain.NewBusinessError(domain.ErrInvalidInput, "tipo de movimiento inválido: %q", in.Type)
	case in.Quantity.IsZero():
		return domain.NewBusinessError(domain.ErrInvalidInput, "la cantidad no puede ser cero")
	case !entity.FitsScale(in.Quantity):
		return domain.NewBusinessError(domain.ErrInvalidInput, "la cantidad %s admite como máximo %d decimales", in.Quantity, entity.QuantityScale)
	case in.UnitCost != nil && in.UnitCost.IsNegative():
		return domain.NewBusinessError(domain.ErrInvalidInput, "el costo unitario no puede ser negativo")
	case in.UnitCost != nil && !entity.FitsScale(*in.UnitCost):
		return domain.NewBusinessError(domain.ErrInvalidInput, "el costo unitario %s admite como máximo %d decimales", in.UnitCost, entity.QuantityScale)
	}
	return nil
}

// applyReceiptCost recalcula el costo promedio ponderado con el stock previo a la entrada.
func (l *StockLedger) applyReceiptCost(ctx context.Context, uow repository.UnitOfWork, in MovementInput, before decimal.Decimal) error {
	switch in.Ref.Kind {
	case entity.EntityKindProduct:
		p, err := uow.Products().GetByID(ctx, in.Ref.ID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if p == nil {
			return domain.NewBusinessError(domain.ErrNotFound, "%s no encontrado", describeRef(in.Ref))
		}
		return uow.Products().UpdateCost(ctx, p.ID, inventory.CostCalculator(before, p.Cost, in.Quantity, *in.UnitCost))
	default:
		ing, err := uow.Ingredients().GetByID(ctx, in.Ref.ID)
		if err != nil {
			return fmt.Errorf("get ingredient: %w", err)
		}
		if ing == nil {
			return domain.NewBusinessError(domain.ErrNotFound, "%s no encontrado", describeRef(in.Ref))
		}
		return uow.Ingredients().UpdateCost(ctx, ing.ID, inventory.CostCalculator(before, ing.Cost, in.Quantity, *in.UnitCost))
	}
}

// describe devuelve nombre y unidad de la entidad para los mensajes de error.
func (l *StockLedger) describe(ctx context.Context, uow repository.UnitOfWork, ref entity.EntityRef) (string, string, error) {
	if ref.Kind == entity.EntityKindProduct {
		p, err := uow.Products().GetByID(ctx, ref.ID)
		if err != nil {
			return "", "", fmt.Errorf("get product: %w", err)
		}
		if p == nil {
			return describeRef(ref), "", nil
		}
		return p.Name, "", nil
	}
	ing, err := uow.Ingredients().GetByID(ctx, ref.ID)
	if err != nil {
		return "", "", fmt.Errorf("get ingredient: %w", err)
	}
	if ing == nil {
		return describeRef(ref), "", nil
	}
	return ing.Name, string(ing.Unit), nil
}

func describeRef(ref entity.EntityRef) string {
	if ref.Kind == entity.EntityKindProduct {
		return "producto " + ref.ID
	}
	return "ingrediente " + ref.ID
}
