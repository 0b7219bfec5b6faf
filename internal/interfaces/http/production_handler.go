package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/production"
)

// ProductionHandler expone las corridas de producción (protegido).
type ProductionHandler struct {
	uc *production.ProduceUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.ProduceUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Produce godoc
// @Summary      Fabricar un producto consumiendo los ingredientes de su receta
// @Description  Todo o nada: si un ingrediente no alcanza no se registra ningún movimiento.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProduceRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.ProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Produce(c *fiber.Ctx) error {
	companyID, userID, ok, err := tenant(c)
	if !ok {
		return err
	}
	var in dto.ProduceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	res, err := h.uc.Produce(c.Context(), production.ProduceInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		CompanyID: companyID,
		UserID:    userID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductionResponse(res))
}

func toProductionResponse(res *production.ProductionResult) dto.ProductionResponse {
	out := dto.ProductionResponse{
		OrderID:      res.Order.ID,
		ProductID:    res.Product.ID,
		ProductName:  res.Product.Name,
		Quantity:     res.Order.Quantity,
		TotalCost:    res.Order.TotalCost,
		UnitCost:     res.UnitCost(),
		ProductStock: res.ProductStock,
		CreatedAt:    res.Order.CreatedAt,
		Ingredients:  make([]dto.IngredientConsumptionResponse, 0, len(res.Ingredients)),
	}
	for _, ic := range res.Ingredients {
		out.Ingredients = append(out.Ingredients, dto.IngredientConsumptionResponse{
			IngredientID: ic.IngredientID,
			Name:         ic.Name,
			Amount:       ic.Amount,
			Unit:         string(ic.Unit),
			Cost:         ic.Cost,
		})
	}
	return out
}
