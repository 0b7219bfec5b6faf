package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinv "github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Ledger subconjunto de StockLedger que usa producción.
type Ledger interface {
	RecordMovement(ctx context.Context, uow repository.UnitOfWork, in appinv.MovementInput) (*entity.StockMovement, error)
}

// ProduceUseCase convierte stock de ingredientes en stock de producto según su receta, en una sola transacción.
type ProduceUseCase struct {
	txRunner repository.TxRunner
	reader   repository.UnitOfWork
	ledger   Ledger
	reporter ports.ErrorReporter
	now      func() time.Time
}

// NewProduceUseCase construye el caso de uso.
func NewProduceUseCase(txRunner repository.TxRunner, reader repository.UnitOfWork, ledger Ledger, reporter ports.ErrorReporter) *ProduceUseCase {
	if reporter == nil {
		reporter = ports.NopErrorReporter{}
	}
	return &ProduceUseCase{
		txRunner: txRunner,
		reader:   reader,
		ledger:   ledger,
		reporter: reporter,
		now:      time.Now,
	}
}

// ProduceInput entrada de una corrida de producción.
type ProduceInput struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	CompanyID string          `json:"company_id"`
	UserID    string          `json:"user_id"`
}

// IngredientConsumption consumo de un ingrediente, expresado en su unidad de stock.
type IngredientConsumption struct {
	IngredientID string
	Name         string
	Amount       decimal.Decimal
	Unit         entity.Unit
	Cost         decimal.Decimal
}

// ProductionResult orden creada, desglose por ingrediente y stock resultante del producto.
type ProductionResult struct {
	Order        *entity.ProductionOrder
	Product      *entity.Product
	ProductStock decimal.Decimal
	Ingredients  []IngredientConsumption
}

// UnitCost costo total / cantidad producida.
func (r *ProductionResult) UnitCost() decimal.Decimal {
	if r.Order == nil || r.Order.Quantity.IsZero() {
		return decimal.Zero
	}
	return r.Order.TotalCost.Div(r.Order.Quantity)
}

// plan resultado de la prevalidación (fuera de la transacción).
type plan struct {
	product     *entity.Product
	consumption []IngredientConsumption
	totalCost   decimal.Decimal
}

// Produce valida (sin abrir transacción) y luego, en una sola transacción, descuenta cada ingrediente,
// acredita el producto y registra la ProductionOrder. Cualquier falla revierte todo.
func (uc *ProduceUseCase) Produce(ctx context.Context, in ProduceInput) (*ProductionResult, error) {
	res, err := uc.produce(ctx, in)
	if err != nil && !domain.IsBusinessError(err) {
		uc.reporter.Report(ctx, "production.produce", err, in)
	}
	return res, err
}

func (uc *ProduceUseCase) produce(ctx context.Context, in ProduceInput) (*ProductionResult, error) {
	p, err := uc.prevalidate(ctx, in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	reason := fmt.Sprintf("Producción de %s x %s", in.Quantity.String(), p.product.Name)
	var result *ProductionResult

	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		// 1) descuento de ingredientes (la validación definitiva es la del ledger)
		for _, c := range p.consumption {
			if _, err := uc.ledger.RecordMovement(ctx, uow, appinv.MovementInput{
				Ref:       entity.IngredientRef(c.IngredientID),
				CompanyID: in.CompanyID,
				UserID:    in.UserID,
				Type:      entity.MovementTypeProduction,
				Quantity:  c.Amount.Neg(),
				Reason:    reason,
			}); err != nil {
				return err
			}
		}
		// 2) entrada del producto terminado; el costo unitario de la corrida alimenta el promedio ponderado
		unitCost := p.totalCost.Div(in.Quantity)
		mov, err := uc.ledger.RecordMovement(ctx, uow, appinv.MovementInput{
			Ref:       entity.ProductRef(p.product.ID),
			CompanyID: in.CompanyID,
			UserID:    in.UserID,
			Type:      entity.MovementTypeProduction,
			Quantity:  in.Quantity,
			Reason:    reason,
			UnitCost:  &unitCost,
		})
		if err != nil {
			return err
		}
		// 3) orden de producción
		order := &entity.ProductionOrder{
			ID:        uuid.New().String(),
			CompanyID: in.CompanyID,
			ProductID: p.product.ID,
			Quantity:  in.Quantity,
			TotalCost: p.totalCost,
			CreatedBy: in.UserID,
			CreatedAt: now,
		}
		if err := uow.ProductionOrders().Create(ctx, order); err != nil {
			return fmt.Errorf("create production order: %w", err)
		}
		result = &ProductionResult{
			Order:        order,
			Product:      p.product,
			ProductStock: mov.StockAfter,
			Ingredients:  p.consumption,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// prevalidate falla rápido sin tomar bloqueos. La verificación de stock es orientativa:
// la garantía real es el chequeo dentro de la transacción en StockLedger.
func (uc *ProduceUseCase) prevalidate(ctx context.Context, in ProduceInput) (*plan, error) {
	if in.ProductID == "" || in.CompanyID == "" || in.UserID == "" {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "producto, empresa y usuario son obligatorios")
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "la cantidad a producir debe ser mayor a cero")
	}
	if !entity.FitsScale(in.Quantity) {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "la cantidad a producir admite como máximo %d decimales", entity.QuantityScale)
	}

	company, err := uc.reader.Companies().GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}
	if company == nil {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "empresa %s no encontrada", in.CompanyID)
	}

	product, err := uc.reader.Products().GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil || product.CompanyID != in.CompanyID {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "producto %s no encontrado", in.ProductID)
	}
	if !product.IsActive {
		return nil, domain.NewBusinessError(domain.ErrInactiveEntity, "el producto %s está inactivo", product.Name)
	}
	if !product.IsSelfProduced() {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "el producto %s no es de fabricación propia", product.Name)
	}

	lines, err := uc.reader.Recipes().ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("list recipe: %w", err)
	}
	if len(lines) == 0 {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "el producto %s no tiene receta", product.Name)
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.IngredientID)
	}
	ingredients, err := uc.reader.Ingredients().GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get ingredients: %w", err)
	}

	p := &plan{product: product, totalCost: decimal.Zero}
	for _, l := range lines {
		ing := ingredients[l.IngredientID]
		if ing == nil {
			return nil, domain.NewBusinessError(domain.ErrNotFound, "ingrediente %s de la receta no encontrado", l.IngredientID)
		}
		if !ing.IsActive {
			return nil, domain.NewBusinessError(domain.ErrInactiveEntity, "el ingrediente %s está inactivo", ing.Name)
		}
		needed := l.Quantity.Mul(in.Quantity)
		amount := inventory.ConvertQuantity(needed, l.Unit, ing.Unit)
		if !entity.FitsScale(amount) {
			return nil, domain.NewBusinessError(domain.ErrInvalidInput,
				"el consumo de %s (%s %s) excede %d decimales", ing.Name, amount, ing.Unit, entity.QuantityScale)
		}
		cost := inventory.CalculateCost(needed, l.Unit, ing.Unit, ing.Cost)
		if ing.Stock.LessThan(amount) && !company.AllowNegativeStock {
			return nil, domain.InsufficientStockError(ing.Name, amount, ing.Stock, string(ing.Unit))
		}
		p.consumption = append(p.consumption, IngredientConsumption{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Amount:       amount,
			Unit:         ing.Unit,
			Cost:         cost,
		})
		p.totalCost = p.totalCost.Add(cost)
	}
	return p, nil
}
