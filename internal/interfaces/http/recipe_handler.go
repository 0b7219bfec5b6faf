package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/recipe"
)

// RecipeHandler administra las recetas de productos fabricados (protegido).
type RecipeHandler struct {
	uc *recipe.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *recipe.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// SetLine godoc
// @Summary      Crear o reemplazar una línea de receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                    true  "ID del producto fabricado"
// @Param        body       body  dto.SetRecipeLineRequest  true  "ingredient_id, quantity por unidad de producto, unit"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{productId}/lines [put]
func (h *RecipeHandler) SetLine(c *fiber.Ctx) error {
	companyID, _, ok, err := tenant(c)
	if !ok {
		return err
	}
	productID, ok, err := pathID(c, "productId")
	if !ok {
		return err
	}
	var in dto.SetRecipeLineRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	_, err = h.uc.SetRecipeLine(c.Context(), recipe.SetLineInput{
		CompanyID:    companyID,
		ProductID:    productID,
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, companyID, productID)
}

// RemoveLine godoc
// @Summary      Eliminar una línea de receta
// @Tags         recipes
// @Security     Bearer
// @Param        productId     path  string  true  "ID del producto"
// @Param        ingredientId  path  string  true  "ID del ingrediente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{productId}/lines/{ingredientId} [delete]
func (h *RecipeHandler) RemoveLine(c *fiber.Ctx) error {
	companyID, _, ok, err := tenant(c)
	if !ok {
		return err
	}
	productID, ok, err := pathID(c, "productId")
	if !ok {
		return err
	}
	ingredientID, ok, err := pathID(c, "ingredientId")
	if !ok {
		return err
	}
	if err := h.uc.RemoveRecipeLine(c.Context(), companyID, productID, ingredientID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Get godoc
// @Summary      Receta de un producto con su costo efectivo vigente
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{productId} [get]
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	companyID, _, ok, err := tenant(c)
	if !ok {
		return err
	}
	productID, ok, err := pathID(c, "productId")
	if !ok {
		return err
	}
	return h.respond(c, companyID, productID)
}

func (h *RecipeHandler) respond(c *fiber.Ctx, companyID, productID string) error {
	view, err := h.uc.GetRecipe(c.Context(), companyID, productID)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.RecipeResponse{
		ProductID:     view.Product.ID,
		EffectiveCost: view.EffectiveCost,
		Lines:         make([]dto.RecipeLineResponse, 0, len(view.Lines)),
	}
	for _, l := range view.Lines {
		out.Lines = append(out.Lines, dto.RecipeLineResponse{
			IngredientID:   l.Line.IngredientID,
			IngredientName: l.Ingredient.Name,
			Quantity:       l.Line.Quantity,
			Unit:           string(l.Line.Unit),
			Cost:           l.Cost,
		})
	}
	return c.JSON(out)
}
