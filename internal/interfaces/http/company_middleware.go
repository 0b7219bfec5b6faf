package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// companyChecker es el contrato mínimo que necesita el middleware para verificar la empresa.
// Lo implementa repository.CompanyRepository.
type companyChecker interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}

// RequireCompany verifica que la empresa del token JWT exista. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay company_id en el contexto.
//   - 403 si la empresa no existe.
//   - 503 si falla la consulta.
func RequireCompany(checker companyChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		company, err := checker.GetByID(c.Context(), companyID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "COMPANY_CHECK_FAILED",
				Message: "no se pudo verificar la empresa, intente más tarde",
			})
		}
		if company == nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "UNKNOWN_COMPANY",
				Message: "la empresa del token no existe",
			})
		}

		return c.Next()
	}
}
