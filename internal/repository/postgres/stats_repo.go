package postgres

import (
	"context"
	"fmt"
	"strings"

	"stylefeed-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type statsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) domain.StatsRepository {
	return &statsRepository{db: db}
}

func genderCondition(alias string, g domain.Gender) (string, []any) {
	col := alias + ".gender"
	if g == domain.GenderUnisex {
		return fmt.Sprintf("(%s IS NULL OR %s = '' OR %s = 'Unisex')", col, col, col), nil
	}
	return fmt.Sprintf("(%s = $1 OR %s IS NULL OR %s = '' OR %s = 'Unisex')", col, col, col, col),
		[]any{string(g)}
}

func (r *statsRepository) TrendingCategories(ctx context.Context, gender *domain.Gender, limit int) ([]domain.CategoryTrend, error) {
	query := `SELECT c.id, c.name, c.gender, COUNT(p.id), COALESCE(SUM(p.click_count), 0) AS total_clicks
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id`
	args := []any{}
	if gender != nil {
		cond, condArgs := genderCondition("c", *gender)
		query += " WHERE " + cond
		args = condArgs
	}
	args = append(args, limit)
	query += fmt.Sprintf(" GROUP BY c.id ORDER BY total_clicks DESC, c.id ASC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trends := []domain.CategoryTrend{}
	for rows.Next() {
		var t domain.CategoryTrend
		var g pgtype.Text
		if err := rows.Scan(&t.CategoryID, &t.CategoryName, &g, &t.ProductCount, &t.TotalClicks); err != nil {
			return nil, err
		}
		t.Gender = genderFromText(g)
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// attributeTrends groups non-empty values of one product column and ranks
// them by summed clicks. column is always a literal, never user input.
func (r *statsRepository) attributeTrends(ctx context.Context, column string, filter domain.AttributeFilter, limit int) ([]domain.AttributeTrend, error) {
	conds := []string{fmt.Sprintf("p.%s IS NOT NULL AND p.%s <> ''", column, column)}
	args := []any{}
	if filter.Gender != nil {
		cond, condArgs := genderCondition("c", *filter.Gender)
		conds = append(conds, cond)
		args = append(args, condArgs...)
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT p.%s, COUNT(*), COALESCE(SUM(p.click_count), 0) AS total_clicks
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE %s
		GROUP BY p.%s
		ORDER BY total_clicks DESC, p.%s ASC`, column, strings.Join(conds, " AND "), column, column)
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trends := []domain.AttributeTrend{}
	for rows.Next() {
		var t domain.AttributeTrend
		if err := rows.Scan(&t.Value, &t.ProductCount, &t.TotalClicks); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

func (r *statsRepository) TrendingColors(ctx context.Context, filter domain.AttributeFilter, limit int) ([]domain.AttributeTrend, error) {
	return r.attributeTrends(ctx, "color", filter, limit)
}

func (r *statsRepository) TrendingSizes(ctx context.Context, filter domain.AttributeFilter, limit int) ([]domain.AttributeTrend, error) {
	return r.attributeTrends(ctx, "size", filter, limit)
}

func (r *statsRepository) Summary(ctx context.Context) (*domain.CatalogSummary, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM products),
		(SELECT COUNT(*) FROM brands),
		(SELECT COUNT(*) FROM categories),
		(SELECT COUNT(*) FROM users),
		(SELECT COALESCE(SUM(click_count), 0) FROM products),
		(SELECT COUNT(*) FROM likes)`

	var s domain.CatalogSummary
	err := r.db.QueryRow(ctx, query).Scan(
		&s.TotalProducts, &s.TotalBrands, &s.TotalCategories,
		&s.TotalUsers, &s.TotalClicks, &s.TotalLikes)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
