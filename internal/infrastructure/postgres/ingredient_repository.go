package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

const ingredientColumns = `id, company_id, name, unit, cost, stock, min_stock, is_active, created_at, updated_at`

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// Create persiste un nuevo ingrediente.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (` + ingredientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		ing.ID, ing.CompanyID, ing.Name, string(ing.Unit), ing.Cost, ing.Stock,
		ing.MinStock, ing.IsActive, ing.CreatedAt, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.NewBusinessError(domain.ErrNotFound, "empresa %s no encontrada", ing.CompanyID)
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por ID.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	ing, err := scanIngredient(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// GetByIDs obtiene varios ingredientes en una sola consulta. Los IDs inexistentes no aparecen en el mapa.
func (r *IngredientRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Ingredient, error) {
	out := make(map[string]*entity.Ingredient, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = ANY($1::uuid[])`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out[ing.ID] = ing
	}
	return out, rows.Err()
}

// UpdateCost actualiza el costo por unidad de inventario.
func (r *IngredientRepo) UpdateCost(ctx context.Context, ingredientID string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE ingredients SET cost = $2, updated_at = now() WHERE id = $1`, ingredientID, cost)
	if err != nil {
		return fmt.Errorf("update ingredient cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetActive activa o desactiva el ingrediente.
func (r *IngredientRepo) SetActive(ctx context.Context, ingredientID string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE ingredients SET is_active = $2, updated_at = now() WHERE id = $1`, ingredientID, active)
	if err != nil {
		return fmt.Errorf("set ingredient active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista ingredientes de la empresa ordenados por nombre.
func (r *IngredientRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var (
		i    entity.Ingredient
		unit string
	)
	err := row.Scan(
		&i.ID, &i.CompanyID, &i.Name, &unit, &i.Cost, &i.Stock, &i.MinStock,
		&i.IsActive, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	i.Unit = entity.Unit(unit)
	return &i, nil
}
