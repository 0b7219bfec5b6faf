package sales

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

// Ledger subconjunto de StockLedger que usan las ventas.
type Ledger interface {
	RecordMovement(ctx context.Context, uow repository.UnitOfWork, in appinv.MovementInput) (*entity.StockMovement, error)
}

// SaleUseCase crea, edita y anula ventas como una sola unidad atómica, congelando el costo de cada ítem.
type SaleUseCase struct {
	txRunner repository.TxRunner
	reader   repository.UnitOfWork
	ledger   Ledger
	reporter ports.ErrorReporter
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner repository.TxRunner, reader repository.UnitOfWork, ledger Ledger, reporter ports.ErrorReporter) *SaleUseCase {
	if reporter == nil {
		reporter = ports.NopErrorReporter{}
	}
	return &SaleUseCase{
		txRunner: txRunner,
		reader:   reader,
		ledger:   ledger,
		reporter: reporter,
		now:      time.Now,
	}
}

// ItemInput producto y cantidad solicitados.
type ItemInput struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// UpsertInput entrada de creación (SaleID vacío) o edición de una venta.
// Date nil usa la fecha actual al crear y conserva la existente al editar.
type UpsertInput struct {
	SaleID    string      `json:"sale_id,omitempty"`
	Date      *time.Time  `json:"date,omitempty"`
	CompanyID string      `json:"company_id"`
	UserID    string      `json:"user_id"`
	Items     []ItemInput `json:"items"`
}

// UpsertSale crea una venta o edita una existente. La edición revierte todos los ítems previos
// (movimientos CANCEL) y vuelve a aplicar los nuevos (movimientos SALE) en la misma transacción.
func (uc *SaleUseCase) UpsertSale(ctx context.Context, in UpsertInput) (*entity.Sale, error) {
	sale, err := uc.upsert(ctx, in)
	if err != nil && !domain.IsBusinessError(err) {
		uc.reporter.Report(ctx, "sales.upsert", err, in)
	}
	return sale, err
}

func (uc *SaleUseCase) upsert(ctx context.Context, in UpsertInput) (*entity.Sale, error) {
	if err := validateUpsert(in); err != nil {
		return nil, err
	}
	var result *entity.Sale
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		company, err := uow.Companies().GetByID(ctx, in.CompanyID)
		if err != nil {
			return fmt.Errorf("get company: %w", err)
		}
		if company == nil {
			return domain.NewBusinessError(domain.ErrNotFound, "empresa %s no encontrada", in.CompanyID)
		}

		now := uc.now()
		var sale *entity.Sale
		if in.SaleID != "" {
			sale, err = uc.revert(ctx, uow, in.SaleID, in.CompanyID, in.UserID)
			if err != nil {
				return err
			}
			if err := uow.Sales().DeleteItems(ctx, sale.ID); err != nil {
				return fmt.Errorf("delete sale items: %w", err)
			}
			if in.Date != nil {
				sale.Date = *in.Date
			}
			sale.UserID = in.UserID
			sale.Items = nil
		} else {
			date := now
			if in.Date != nil {
				date = *in.Date
			}
			sale = &entity.Sale{
				ID:          uuid.New().String(),
				CompanyID:   in.CompanyID,
				UserID:      in.UserID,
				Date:        date,
				Status:      entity.SaleStatusActive,
				TotalAmount: decimal.Zero,
				TotalCost:   decimal.Zero,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := uow.Sales().Create(ctx, sale); err != nil {
				return fmt.Errorf("create sale: %w", err)
			}
		}

		totalAmount, totalCost := decimal.Zero, decimal.Zero
		for _, it := range in.Items {
			item, err := uc.applyItem(ctx, uow, company, sale, it, now)
			if err != nil {
				return err
			}
			sale.Items = append(sale.Items, item)
			totalAmount = totalAmount.Add(item.Subtotal())
			totalCost = totalCost.Add(item.TotalCost())
		}

		sale.TotalAmount = totalAmount
		sale.TotalCost = totalCost
		sale.UpdatedAt = now
		if err := uow.Sales().Update(ctx, sale); err != nil {
			return fmt.Errorf("update sale: %w", err)
		}
		result = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyItem valida el producto, congela su costo efectivo, descuenta el stock y crea el SaleItem.
func (uc *SaleUseCase) applyItem(ctx context.Context, uow repository.UnitOfWork, company *entity.Company, sale *entity.Sale, it ItemInput, now time.Time) (*entity.SaleItem, error) {
	product, err := uow.Products().GetByID(ctx, it.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil || product.CompanyID != sale.CompanyID {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "producto %s no encontrado", it.ProductID)
	}
	if !product.IsActive {
		return nil, domain.NewBusinessError(domain.ErrInactiveEntity, "el producto %s está inactivo", product.Name)
	}

	baseCost, err := uc.effectiveCost(ctx, uow, product)
	if err != nil {
		return nil, err
	}

	// chequeo temprano con mensaje claro; la garantía definitiva es la del ledger
	if product.Stock.LessThan(it.Quantity) && !company.AllowNegativeStock {
		return nil, domain.InsufficientStockError(product.Name, it.Quantity, product.Stock, "")
	}

	saleID := sale.ID
	if _, err := uc.ledger.RecordMovement(ctx, uow, appinv.MovementInput{
		Ref:       entity.ProductRef(product.ID),
		CompanyID: sale.CompanyID,
		UserID:    sale.UserID,
		Type:      entity.MovementTypeSale,
		Quantity:  it.Quantity.Neg(),
		SaleID:    &saleID,
		Reason:    "Venta " + sale.ID,
	}); err != nil {
		return nil, err
	}

	item := &entity.SaleItem{
		ID:        uuid.New().String(),
		SaleID:    sale.ID,
		ProductID: product.ID,
		Quantity:  it.Quantity,
		UnitPrice: product.Price,
		BaseCost:  baseCost,
		CreatedAt: now,
	}
	if err := uow.Sales().CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create sale item: %w", err)
	}
	return item, nil
}

// effectiveCost costo vigente: suma de la receta con precios actuales de ingredientes, o el costo del producto si no tiene receta.
func (uc *SaleUseCase) effectiveCost(ctx context.Context, uow repository.UnitOfWork, product *entity.Product) (decimal.Decimal, error) {
	lines, err := uow.Recipes().ListByProduct(ctx, product.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list recipe: %w", err)
	}
	if len(lines) == 0 {
		return product.Cost, nil
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.IngredientID)
	}
	ingredients, err := uow.Ingredients().GetByIDs(ctx, ids)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get ingredients: %w", err)
	}
	cost, err := inventory.EffectiveCost(lines, ingredients)
	if err != nil {
		return decimal.Zero, domain.NewBusinessError(domain.ErrNotFound, "receta de %s: %v", product.Name, err)
	}
	return cost, nil
}

// revert carga la venta y devuelve al stock la cantidad de cada ítem. Rechaza ventas anuladas o de otra empresa.
func (uc *SaleUseCase) revert(ctx context.Context, uow repository.UnitOfWork, saleID, companyID, userID string) (*entity.Sale, error) {
	sale, err := uow.Sales().GetByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if sale == nil || sale.CompanyID != companyID {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "venta %s no encontrada", saleID)
	}
	if sale.IsCanceled() {
		return nil, domain.NewBusinessError(domain.ErrSaleCanceled, "la venta %s está anulada y no se puede modificar", saleID)
	}
	for _, item := range sale.Items {
		id := sale.ID
		if _, err := uc.ledger.RecordMovement(ctx, uow, appinv.MovementInput{
			Ref:       entity.ProductRef(item.ProductID),
			CompanyID: companyID,
			UserID:    userID,
			Type:      entity.MovementTypeCancel,
			Quantity:  item.Quantity,
			SaleID:    &id,
			Reason:    "Reversión venta " + sale.ID,
		}); err != nil {
			return nil, err
		}
	}
	return sale, nil
}

// CancelSale anula una venta activa: devuelve el stock de todos sus ítems y la deja en CANCELED (terminal).
// Los ítems se conservan como registro histórico.
func (uc *SaleUseCase) CancelSale(ctx context.Context, saleID, companyID, userID string) (*entity.Sale, error) {
	sale, err := uc.cancel(ctx, saleID, companyID, userID)
	if err != nil && !domain.IsBusinessError(err) {
		uc.reporter.Report(ctx, "sales.cancel", err, map[string]string{
			"sale_id":    saleID,
			"company_id": companyID,
			"user_id":    userID,
		})
	}
	return sale, err
}

func (uc *SaleUseCase) cancel(ctx context.Context, saleID, companyID, userID string) (*entity.Sale, error) {
	if saleID == "" || companyID == "" || userID == "" {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "venta, empresa y usuario son obligatorios")
	}
	var result *entity.Sale
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		sale, err := uc.revert(ctx, uow, saleID, companyID, userID)
		if err != nil {
			return err
		}
		sale.Status = entity.SaleStatusCanceled
		sale.UpdatedAt = uc.now()
		if err := uow.Sales().Update(ctx, sale); err != nil {
			return fmt.Errorf("update sale: %w", err)
		}
		result = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetSale devuelve la venta con sus ítems y costos congelados.
func (uc *SaleUseCase) GetSale(ctx context.Context, saleID, companyID string) (*entity.Sale, error) {
	sale, err := uc.reader.Sales().GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.CompanyID != companyID {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "venta %s no encontrada", saleID)
	}
	return sale, nil
}

func validateUpsert(in UpsertInput) error {
	if in.CompanyID == "" || in.UserID == "" {
		return domain.NewBusinessError(domain.ErrInvalidInput, "empresa y usuario son obligatorios")
	}
	if len(in.Items) == 0 {
		return domain.NewBusinessError(domain.ErrInvalidInput, "la venta debe tener al menos un ítem")
	}
	for i, it := range in.Items {
		if it.ProductID == "" {
			return domain.NewBusinessError(domain.ErrInvalidInput, "ítem %d: producto obligatorio", i+1)
		}
		if !it.Quantity.IsPositive() {
			return domain.NewBusinessError(domain.ErrInvalidInput, "ítem %d: la cantidad debe ser mayor a cero", i+1)
		}
		if !entity.FitsScale(it.Quantity) {
			return domain.NewBusinessError(domain.ErrInvalidInput, "ítem %d: la cantidad admite como máximo %d decimales", i+1, entity.QuantityScale)
		}
	}
	return nil
}
