package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/sales"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// SaleHandler maneja creación, edición, anulación y consulta de ventas (protegido).
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertSaleRequest  true  "items (product_id, quantity), date opcional"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	return h.upsert(c, "", fiber.StatusCreated)
}

// Update godoc
// @Summary      Editar venta (revierte los ítems anteriores y aplica los nuevos)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.UpsertSaleRequest  true  "items completos de la venta"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	saleID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	return h.upsert(c, saleID, fiber.StatusOK)
}

func (h *SaleHandler) upsert(c *fiber.Ctx, saleID string, status int) error {
	companyID, userID, ok, err := tenant(c)
	if !ok {
		return err
	}
	var in dto.UpsertSaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	items := make([]sales.ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	sale, err := h.uc.UpsertSale(c.Context(), sales.UpsertInput{
		SaleID:    saleID,
		Date:      in.Date,
		CompanyID: companyID,
		UserID:    userID,
		Items:     items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(status).JSON(toSaleResponse(sale))
}

// Cancel godoc
// @Summary      Anular venta (restituye el stock de todos los ítems)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	companyID, userID, ok, err := tenant(c)
	if !ok {
		return err
	}
	saleID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	sale, err := h.uc.CancelSale(c.Context(), saleID, companyID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// GetByID godoc
// @Summary      Obtener venta con ítems y costos congelados
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	companyID, _, ok, err := tenant(c)
	if !ok {
		return err
	}
	saleID, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	sale, err := h.uc.GetSale(c.Context(), saleID, companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		UserID:      s.UserID,
		Date:        s.Date,
		Status:      s.Status,
		TotalAmount: s.TotalAmount,
		TotalCost:   s.TotalCost,
		Items:       make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			BaseCost:  it.BaseCost,
			Subtotal:  it.Subtotal(),
		})
	}
	return out
}
