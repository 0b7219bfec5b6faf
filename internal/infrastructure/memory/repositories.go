package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ── Company ──────────────────────────────────────────────────────────────────

type companyRepo struct{ acc access }

func (r companyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.companies[c.ID]; ok {
			return domain.ErrDuplicate
		}
		cp := *c
		st.companies[c.ID] = &cp
		return nil
	})
}

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.acc.read(func(st *state) error {
		if c, ok := st.companies[id]; ok {
			cp := *c
			out = &cp
		}
		return nil
	})
	return out, err
}

// ── Product ──────────────────────────────────────────────────────────────────

type productRepo struct{ acc access }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.products {
			if other.CompanyID == p.CompanyID && other.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		cp := *p
		st.products[p.ID] = &cp
		return nil
	})
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.acc.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			cp := *p
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r productRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	return r.acc.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Cost = cost
		return nil
	})
}

func (r productRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.acc.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.IsActive = active
		return nil
	})
}

func (r productRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.acc.read(func(st *state) error {
		for _, p := range st.products {
			if p.CompanyID == companyID {
				cp := *p
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), err
}

// ── Ingredient ───────────────────────────────────────────────────────────────

type ingredientRepo struct{ acc access }

func (r ingredientRepo) Create(_ context.Context, i *entity.Ingredient) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.ingredients[i.ID]; ok {
			return domain.ErrDuplicate
		}
		cp := *i
		st.ingredients[i.ID] = &cp
		return nil
	})
}

func (r ingredientRepo) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	var out *entity.Ingredient
	err := r.acc.read(func(st *state) error {
		if i, ok := st.ingredients[id]; ok {
			cp := *i
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r ingredientRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Ingredient, error) {
	out := make(map[string]*entity.Ingredient, len(ids))
	err := r.acc.read(func(st *state) error {
		for _, id := range ids {
			if i, ok := st.ingredients[id]; ok {
				cp := *i
				out[id] = &cp
			}
		}
		return nil
	})
	return out, err
}

func (r ingredientRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	return r.acc.write(func(st *state) error {
		i, ok := st.ingredients[id]
		if !ok {
			return domain.ErrNotFound
		}
		i.Cost = cost
		return nil
	})
}

func (r ingredientRepo) SetActive(_ context.Context, id string, active bool) error {
	return r.acc.write(func(st *state) error {
		i, ok := st.ingredients[id]
		if !ok {
			return domain.ErrNotFound
		}
		i.IsActive = active
		return nil
	})
}

func (r ingredientRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	err := r.acc.read(func(st *state) error {
		for _, i := range st.ingredients {
			if i.CompanyID == companyID {
				cp := *i
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), err
}

// ── Recipe ───────────────────────────────────────────────────────────────────

type recipeRepo struct{ acc access }

func (r recipeRepo) Upsert(_ context.Context, l *entity.RecipeLine) error {
	return r.acc.write(func(st *state) error {
		key := recipeKey{productID: l.ProductID, ingredientID: l.IngredientID}
		cp := *l
		if existing, ok := st.recipes[key]; ok {
			cp.ID = existing.ID
			cp.CreatedAt = existing.CreatedAt
			l.ID = existing.ID
			l.CreatedAt = existing.CreatedAt
		}
		st.recipes[key] = &cp
		return nil
	})
}

func (r recipeRepo) Delete(_ context.Context, productID, ingredientID string) (bool, error) {
	var deleted bool
	err := r.acc.write(func(st *state) error {
		key := recipeKey{productID: productID, ingredientID: ingredientID}
		if _, ok := st.recipes[key]; ok {
			delete(st.recipes, key)
			deleted = true
		}
		return nil
	})
	return deleted, err
}

func (r recipeRepo) ListByProduct(_ context.Context, productID string) ([]*entity.RecipeLine, error) {
	var out []*entity.RecipeLine
	err := r.acc.read(func(st *state) error {
		for k, l := range st.recipes {
			if k.productID == productID {
				cp := *l
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].IngredientID < out[j].IngredientID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

// ── Stock ────────────────────────────────────────────────────────────────────

type stockRepo struct{ acc access }

func (r stockRepo) Increment(_ context.Context, ref entity.EntityRef, companyID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var after decimal.Decimal
	err := r.acc.write(func(st *state) error {
		switch ref.Kind {
		case entity.EntityKindProduct:
			p, ok := st.products[ref.ID]
			if !ok || p.CompanyID != companyID {
				return domain.ErrNotFound
			}
			p.Stock = p.Stock.Add(delta)
			after = p.Stock
		case entity.EntityKindIngredient:
			i, ok := st.ingredients[ref.ID]
			if !ok || i.CompanyID != companyID {
				return domain.ErrNotFound
			}
			i.Stock = i.Stock.Add(delta)
			after = i.Stock
		default:
			return domain.ErrInvalidInput
		}
		return nil
	})
	return after, err
}

func (r stockRepo) Current(_ context.Context, ref entity.EntityRef, companyID string) (decimal.Decimal, error) {
	var cur decimal.Decimal
	err := r.acc.read(func(st *state) error {
		switch ref.Kind {
		case entity.EntityKindProduct:
			p, ok := st.products[ref.ID]
			if !ok || p.CompanyID != companyID {
				return domain.ErrNotFound
			}
			cur = p.Stock
		case entity.EntityKindIngredient:
			i, ok := st.ingredients[ref.ID]
			if !ok || i.CompanyID != companyID {
				return domain.ErrNotFound
			}
			cur = i.Stock
		default:
			return domain.ErrInvalidInput
		}
		return nil
	})
	return cur, err
}

// ── StockMovement ────────────────────────────────────────────────────────────

type movementRepo struct{ acc access }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.acc.write(func(st *state) error {
		cp := *m
		st.movements = append(st.movements, &cp)
		return nil
	})
}

func (r movementRepo) ListByEntity(_ context.Context, ref entity.EntityRef, companyID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.acc.read(func(st *state) error {
		for _, m := range st.movements {
			if m.CompanyID == companyID && m.Ref() == ref {
				cp := *m
				out = append(out, &cp)
			}
		}
		return nil
	})
	return page(out, limit, offset), err
}

func (r movementRepo) ListBySale(_ context.Context, saleID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.acc.read(func(st *state) error {
		for _, m := range st.movements {
			if m.SaleID != nil && *m.SaleID == saleID {
				cp := *m
				out = append(out, &cp)
			}
		}
		return nil
	})
	return out, err
}

// ── ProductionOrder ──────────────────────────────────────────────────────────

type orderRepo struct{ acc access }

func (r orderRepo) Create(_ context.Context, o *entity.ProductionOrder) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		cp := *o
		st.orders[o.ID] = &cp
		return nil
	})
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.ProductionOrder, error) {
	var out *entity.ProductionOrder
	err := r.acc.read(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			cp := *o
			out = &cp
		}
		return nil
	})
	return out, err
}

// ── Sale ─────────────────────────────────────────────────────────────────────

type saleRepo struct{ acc access }

func (r saleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		cp := *s
		cp.Items = nil
		st.sales[s.ID] = &cp
		return nil
	})
}

func (r saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.acc.read(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return nil
		}
		cp := *s
		cp.Items = make([]*entity.SaleItem, 0, len(st.saleItems[id]))
		for _, it := range st.saleItems[id] {
			ic := *it
			cp.Items = append(cp.Items, &ic)
		}
		out = &cp
		return nil
	})
	return out, err
}

func (r saleRepo) Update(_ context.Context, s *entity.Sale) error {
	return r.acc.write(func(st *state) error {
		cur, ok := st.sales[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Date = s.Date
		cur.UserID = s.UserID
		cur.Status = s.Status
		cur.TotalAmount = s.TotalAmount
		cur.TotalCost = s.TotalCost
		cur.UpdatedAt = s.UpdatedAt
		return nil
	})
}

func (r saleRepo) CreateItem(_ context.Context, it *entity.SaleItem) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.sales[it.SaleID]; !ok {
			return domain.ErrNotFound
		}
		cp := *it
		st.saleItems[it.SaleID] = append(st.saleItems[it.SaleID], &cp)
		return nil
	})
}

func (r saleRepo) DeleteItems(_ context.Context, saleID string) error {
	return r.acc.write(func(st *state) error {
		delete(st.saleItems, saleID)
		return nil
	})
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
