package postgres

import (
	"context"

	"stylefeed-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) domain.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) BrandSummaries(ctx context.Context) ([]domain.BrandReportRow, error) {
	query := `SELECT b.id, b.name, COUNT(p.id),
		COALESCE(SUM(p.click_count), 0) AS total_clicks,
		COALESCE(AVG(p.price), 0),
		COALESCE((SELECT name FROM products WHERE brand_id = b.id ORDER BY click_count DESC, id ASC LIMIT 1), '')
		FROM brands b
		LEFT JOIN products p ON p.brand_id = b.id
		GROUP BY b.id
		ORDER BY total_clicks DESC, b.id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := []domain.BrandReportRow{}
	for rows.Next() {
		var row domain.BrandReportRow
		var avgPrice pgtype.Numeric
		if err := rows.Scan(&row.BrandID, &row.BrandName, &row.ProductCount, &row.TotalClicks, &avgPrice, &row.TopProductName); err != nil {
			return nil, err
		}
		row.AveragePrice = numericToFloat64(avgPrice)
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *reportRepository) BrandProducts(ctx context.Context, brandID int64) ([]domain.ProductSummary, error) {
	query := "SELECT " + productColumns + productJoins +
		" WHERE p.brand_id = $1 ORDER BY p.click_count DESC, p.id ASC"

	rows, err := r.db.Query(ctx, query, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.ProductSummary{}
	for rows.Next() {
		s, err := scanProductSummary(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
