package postgres

import (
	"context"
	"errors"
	"fmt"

	"stylefeed-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type brandRepository struct {
	db *pgxpool.Pool
}

func NewBrandRepository(db *pgxpool.Pool) domain.BrandRepository {
	return &brandRepository{db: db}
}

const brandSummaryColumns = `b.id, b.name, b.logo_url, b.website_url,
	COUNT(p.id) AS product_count,
	COALESCE(SUM(p.click_count), 0) AS total_clicks,
	COALESCE(AVG(p.price), 0) AS average_price`

const brandSummaryJoins = ` FROM brands b
	LEFT JOIN products p ON p.brand_id = b.id`

func scanBrandSummary(row pgx.Row) (domain.BrandSummary, error) {
	var (
		s          domain.BrandSummary
		logoURL    pgtype.Text
		websiteURL pgtype.Text
		avgPrice   pgtype.Numeric
	)
	err := row.Scan(&s.ID, &s.Name, &logoURL, &websiteURL, &s.ProductCount, &s.TotalClicks, &avgPrice)
	if err != nil {
		return s, err
	}
	s.LogoURL = textToStrPtr(logoURL)
	s.WebsiteURL = textToStrPtr(websiteURL)
	s.AveragePrice = numericToFloat64(avgPrice)
	return s, nil
}

func (r *brandRepository) collect(ctx context.Context, query string, args ...any) ([]domain.BrandSummary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := []domain.BrandSummary{}
	for rows.Next() {
		s, err := scanBrandSummary(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, s)
	}
	return brands, rows.Err()
}

func (r *brandRepository) List(ctx context.Context) ([]domain.BrandSummary, error) {
	query := "SELECT " + brandSummaryColumns + brandSummaryJoins +
		" GROUP BY b.id ORDER BY b.name ASC"
	return r.collect(ctx, query)
}

func (r *brandRepository) GetByID(ctx context.Context, id int64) (*domain.BrandSummary, error) {
	query := "SELECT " + brandSummaryColumns + brandSummaryJoins +
		" WHERE b.id = $1 GROUP BY b.id"
	s, err := scanBrandSummary(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *brandRepository) Trending(ctx context.Context, limit int) ([]domain.BrandSummary, error) {
	query := "SELECT " + brandSummaryColumns + brandSummaryJoins +
		" GROUP BY b.id ORDER BY total_clicks DESC, b.id ASC LIMIT $1"
	return r.collect(ctx, query, limit)
}

func (r *brandRepository) Search(ctx context.Context, q string, limit, offset int) ([]domain.BrandSummary, int64, error) {
	pattern := "%" + q + "%"

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM brands WHERE name ILIKE $1", pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count brands: %w", err)
	}
	if total == 0 {
		return []domain.BrandSummary{}, 0, nil
	}

	query := "SELECT " + brandSummaryColumns + brandSummaryJoins +
		" WHERE b.name ILIKE $1 GROUP BY b.id ORDER BY b.name ASC, b.id ASC LIMIT $2 OFFSET $3"
	brands, err := r.collect(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

func (r *brandRepository) GetOrCreateByName(ctx context.Context, name string, websiteURL *string) (*domain.Brand, error) {
	ex := exec(ctx, r.db)
	b := &domain.Brand{Name: name, WebsiteURL: websiteURL}

	var logoURL, website pgtype.Text
	err := ex.QueryRow(ctx,
		"SELECT id, name, logo_url, website_url FROM brands WHERE LOWER(name) = LOWER($1)", name,
	).Scan(&b.ID, &b.Name, &logoURL, &website)
	if err == nil {
		b.LogoURL = textToStrPtr(logoURL)
		b.WebsiteURL = textToStrPtr(website)
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	err = ex.QueryRow(ctx,
		"INSERT INTO brands (name, website_url) VALUES ($1, $2) RETURNING id", name, websiteURL,
	).Scan(&b.ID)
	if err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}
	return b, nil
}
