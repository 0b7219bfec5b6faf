package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// IngredientUseCase casos de uso de catálogo para materias primas.
type IngredientUseCase struct {
	repo repository.IngredientRepository
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(repo repository.IngredientRepository) *IngredientUseCase {
	return &IngredientUseCase{repo: repo}
}

// Create crea un ingrediente con stock 0. La unidad fija la base de inventario y de costo.
func (uc *IngredientUseCase) Create(ctx context.Context, companyID string, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	unit, ok := entity.ParseUnit(in.Unit)
	if !ok {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "unidad desconocida: %q", in.Unit)
	}
	if in.Cost.IsNegative() || in.MinStock.IsNegative() {
		return nil, domain.NewBusinessError(domain.ErrInvalidInput, "costo y stock mínimo no pueden ser negativos")
	}
	now := time.Now()
	ing := &entity.Ingredient{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Unit:      unit,
		Cost:      in.Cost,
		Stock:     decimal.Zero,
		MinStock:  in.MinStock,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return toIngredientResponse(ing), nil
}

// GetByID obtiene un ingrediente de la empresa.
func (uc *IngredientUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.IngredientResponse, error) {
	ing, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toIngredientResponse(ing), nil
}

// SetActive activa o desactiva un ingrediente.
func (uc *IngredientUseCase) SetActive(ctx context.Context, companyID, id string, active bool) (*dto.IngredientResponse, error) {
	ing, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	ing.IsActive = active
	return toIngredientResponse(ing), nil
}

// List lista ingredientes por empresa con paginación.
func (uc *IngredientUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.IngredientListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngredientResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toIngredientResponse(i))
	}
	return &dto.IngredientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *IngredientUseCase) get(ctx context.Context, companyID, id string) (*entity.Ingredient, error) {
	ing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil || ing.CompanyID != companyID {
		return nil, domain.NewBusinessError(domain.ErrNotFound, "ingrediente %s no encontrado", id)
	}
	return ing, nil
}

func toIngredientResponse(i *entity.Ingredient) *dto.IngredientResponse {
	if i == nil {
		return nil
	}
	return &dto.IngredientResponse{
		ID:        i.ID,
		CompanyID: i.CompanyID,
		Name:      i.Name,
		Unit:      string(i.Unit),
		Cost:      i.Cost,
		Stock:     i.Stock,
		MinStock:  i.MinStock,
		IsActive:  i.IsActive,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
