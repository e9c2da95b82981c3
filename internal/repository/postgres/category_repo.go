package postgres

import (
	"context"
	"errors"

	"stylefeed-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type categoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context, gender *domain.Gender) ([]domain.Category, error) {
	query := "SELECT id, name, gender FROM categories"
	args := []any{}
	if gender != nil {
		if *gender == domain.GenderUnisex {
			query += " WHERE (gender IS NULL OR gender = '' OR gender = 'Unisex')"
		} else {
			query += " WHERE (gender = $1 OR gender IS NULL OR gender = '' OR gender = 'Unisex')"
			args = append(args, string(*gender))
		}
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	index := map[int64]int{}
	for rows.Next() {
		var c domain.Category
		var g pgtype.Text
		if err := rows.Scan(&c.ID, &c.Name, &g); err != nil {
			return nil, err
		}
		c.Gender = genderFromText(g)
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return categories, nil
	}

	subs, err := r.ListSubCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, sc := range subs {
		if i, ok := index[sc.CategoryID]; ok {
			categories[i].SubCategories = append(categories[i].SubCategories, sc)
		}
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	var g pgtype.Text
	err := r.db.QueryRow(ctx, "SELECT id, name, gender FROM categories WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &g)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.Gender = genderFromText(g)

	c.SubCategories, err = r.SubCategories(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) SubCategories(ctx context.Context, categoryID int64) ([]domain.SubCategory, error) {
	return r.collectSubs(ctx,
		"SELECT id, name, category_id FROM subcategories WHERE category_id = $1 ORDER BY name ASC", categoryID)
}

func (r *categoryRepository) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	return r.collectSubs(ctx, "SELECT id, name, category_id FROM subcategories ORDER BY name ASC")
}

func (r *categoryRepository) collectSubs(ctx context.Context, query string, args ...any) ([]domain.SubCategory, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []domain.SubCategory{}
	for rows.Next() {
		var sc domain.SubCategory
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.CategoryID); err != nil {
			return nil, err
		}
		subs = append(subs, sc)
	}
	return subs, rows.Err()
}
