package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL (tabla product_recipes).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Upsert inserta la línea o reemplaza cantidad/unidad si ya existe (product_id, ingredient_id).
// Actualiza line.ID y line.CreatedAt con los valores persistidos.
func (r *RecipeRepo) Upsert(ctx context.Context, line *entity.RecipeLine) error {
	query := `
		INSERT INTO product_recipes (id, company_id, product_id, ingredient_id, quantity, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id, ingredient_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, unit = EXCLUDED.unit, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		line.ID, line.CompanyID, line.ProductID, line.IngredientID, line.Quantity, string(line.Unit),
		line.CreatedAt, line.UpdatedAt,
	).Scan(&line.ID, &line.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewBusinessError(domain.ErrNotFound, "producto o ingrediente no encontrado")
		}
		return fmt.Errorf("upsert recipe line: %w", err)
	}
	return nil
}

// Delete elimina la línea; false si no existía.
func (r *RecipeRepo) Delete(ctx context.Context, productID, ingredientID string) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM product_recipes WHERE product_id = $1 AND ingredient_id = $2`, productID, ingredientID)
	if err != nil {
		return false, fmt.Errorf("delete recipe line: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByProduct lista las líneas de la receta en orden de creación.
func (r *RecipeRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.RecipeLine, error) {
	query := `
		SELECT id, company_id, product_id, ingredient_id, quantity, unit, created_at, updated_at
		FROM product_recipes WHERE product_id = $1
		ORDER BY created_at, ingredient_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipeLine
	for rows.Next() {
		var (
			l    entity.RecipeLine
			unit string
		)
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.ProductID, &l.IngredientID, &l.Quantity, &unit,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		l.Unit = entity.Unit(unit)
		list = append(list, &l)
	}
	return list, rows.Err()
}
