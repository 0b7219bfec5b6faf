package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

var validate = validator.New()

// kindStatus código HTTP por tipo de error de negocio.
var kindStatus = map[domain.ErrorKind]int{
	domain.KindInvalidInput:      fiber.StatusBadRequest,
	domain.KindNotFound:          fiber.StatusNotFound,
	domain.KindInactiveEntity:    fiber.StatusUnprocessableEntity,
	domain.KindInsufficientStock: fiber.StatusConflict,
	domain.KindConflict:          fiber.StatusConflict,
	domain.KindForbidden:         fiber.StatusForbidden,
}

// writeError traduce errores de negocio a su código; cualquier otro error es 500 sin detalle interno.
func writeError(c *fiber.Ctx, err error) error {
	kind, ok := domain.KindOf(err)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	status, ok := kindStatus[kind]
	if !ok {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: string(kind), Message: err.Error()})
}

// parseBody decodifica y valida el body. Devuelve false si ya respondió con 400.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return true, nil
}

// tenant lee empresa y usuario del token. Devuelve false si ya respondió con 401.
func tenant(c *fiber.Ctx) (companyID, userID string, ok bool, err error) {
	companyID = GetCompanyID(c)
	userID = GetUserID(c)
	if companyID == "" || userID == "" {
		return "", "", false, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	return companyID, userID, true, nil
}

// pathID lee un ID de la ruta. Un valor que no es UUID no puede existir: responde 404 sin llegar al repositorio.
func pathID(c *fiber.Ctx, name string) (string, bool, error) {
	id := c.Params(name)
	if err := validate.Var(id, "required,uuid"); err != nil {
		return "", false, writeError(c, domain.NewBusinessError(domain.ErrNotFound, "%s %q no encontrado", name, id))
	}
	return id, true, nil
}

// pageFromQuery un query no numérico se ignora y cae en el default.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	var p dto.PageRequest
	_ = c.QueryParser(&p)
	return p.Normalize()
}
