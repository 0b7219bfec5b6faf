package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// InventoryHandler maneja movimientos manuales y consultas del ledger (protegido).
type InventoryHandler struct {
	ledger        *inventory.StockLedger
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.StockLedger, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, replenishment: replenishment}
}

// RecordMovement godoc
// @Summary      Registrar ajuste o carga manual de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "entity_kind, entity_id, type (ADJUSTMENT|MANUAL), quantity con signo, unit_cost (entradas)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	companyID, userID, ok, err := tenant(c)
	if !ok {
		return err
	}
	var in dto.RecordMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.ledger.RecordMovementFromRequest(c.Context(), companyID, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de movimientos de un producto o ingrediente
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        kind    path   string  true   "products | ingredients"
// @Param        id      path   string  true   "ID de la entidad"
// @Param        limit   query  int     false  "Límite (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/{kind}/{id}/movements [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	companyID, _, ok, err := tenant(c)
	if !ok {
		return err
	}
	ref, ok := refFromPath(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_KIND", Message: "kind debe ser products o ingredients"})
	}
	if _, ok, err := pathID(c, "id"); !ok {
		return err
	}
	page := pageFromQuery(c)
	movs, err := h.ledger.History(c.Context(), ref, companyID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, inventory.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Verificar la consistencia del ledger contra el stock actual
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "products | ingredients"
// @Param        id    path  string  true  "ID de la entidad"
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{kind}/{id}/reconcile [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	companyID, _, ok, err := tenant(c)
	if !ok {
		return err
	}
	ref, ok := refFromPath(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_KIND", Message: "kind debe ser products o ingredients"})
	}
	if _, ok, err := pathID(c, "id"); !ok {
		return err
	}
	rec, err := h.ledger.Reconcile(c.Context(), ref, companyID)
	if err != nil {
		return writeError(c, err)
	}
	issues := rec.Issues
	if issues == nil {
		issues = []string{}
	}
	return c.JSON(dto.ReconciliationResponse{
		EntityKind:     rec.Ref.Kind,
		EntityID:       rec.Ref.ID,
		CurrentStock:   rec.CurrentStock,
		LastStockAfter: rec.LastStockAfter,
		Movements:      rec.Movements,
		Consistent:     rec.Consistent,
		Issues:         issues,
	})
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos e ingredientes activos bajo su stock mínimo, con la cantidad sugerida
//
//	para llegar a 1.5 × stock mínimo. Ordenados por déficit relativo.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	companyID, _, ok, err := tenant(c)
	if !ok {
		return err
	}
	list, err := h.replenishment.GenerateReplenishmentList(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": list,
		"total": len(list),
	})
}

func refFromPath(c *fiber.Ctx) (entity.EntityRef, bool) {
	id := c.Params("id")
	switch strings.ToLower(c.Params("kind")) {
	case "products":
		return entity.ProductRef(id), true
	case "ingredients":
		return entity.IngredientRef(id), true
	}
	return entity.EntityRef{}, false
}
