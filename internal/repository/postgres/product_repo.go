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

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &productRepository{db: db}
}

func scanProductSummary(row pgx.Row) (domain.ProductSummary, error) {
	var (
		s               domain.ProductSummary
		description     pgtype.Text
		price           pgtype.Numeric
		discountedPrice pgtype.Numeric
		imageURL        pgtype.Text
		color           pgtype.Text
		size            pgtype.Text
		material        pgtype.Text
		brandName       pgtype.Text
		categoryName    pgtype.Text
		categoryGender  pgtype.Text
		subCategoryName pgtype.Text
		categoryID      pgtype.Int8
		addedAt         pgtype.Timestamptz
	)
	err := row.Scan(
		&s.ID, &s.Name, &description, &price, &discountedPrice, &imageURL,
		&color, &size, &material, &s.ProductURL, &s.ClickCount, &s.IsEditorsPick,
		&brandName, &categoryName, &categoryGender, &subCategoryName, &categoryID, &addedAt,
	)
	if err != nil {
		return s, err
	}
	s.Description = textToStrPtr(description)
	s.Price = numericToFloat64(price)
	s.DiscountedPrice = numericToFloat64Ptr(discountedPrice)
	s.ImageURL = textToStrPtr(imageURL)
	s.Color = textToStrPtr(color)
	s.Size = textToStrPtr(size)
	s.Material = textToStrPtr(material)
	s.BrandName = textToStrPtr(brandName)
	s.CategoryName = textToStrPtr(categoryName)
	s.CategoryGender = genderFromText(categoryGender)
	s.SubCategoryName = textToStrPtr(subCategoryName)
	s.CategoryID = pgInt8ToInt64Ptr(categoryID)
	s.AddedAt = pgtimeToTime(addedAt)
	return s, nil
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter, sort domain.ProductSort, limit, offset int) ([]domain.ProductSummary, int64, error) {
	countSQL, countArgs := buildProductCountQuery(filter)

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	if total == 0 {
		return []domain.ProductSummary{}, 0, nil
	}

	listSQL, listArgs := buildProductQuery(filter, sort, limit, offset)
	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := []domain.ProductSummary{}
	for rows.Next() {
		s, err := scanProductSummary(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.ProductSummary, error) {
	query := "SELECT " + productColumns + productJoins + " WHERE p.id = $1"
	s, err := scanProductSummary(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *productRepository) GetByURL(ctx context.Context, url string) (*domain.Product, error) {
	query := `SELECT id, name, description, price, discounted_price, image_url, product_url,
		color, size, material, click_count, is_editors_pick, brand_id, category_id, subcategory_id, added_at, updated_at
		FROM products WHERE product_url = $1`

	var (
		p               domain.Product
		description     pgtype.Text
		price           pgtype.Numeric
		discountedPrice pgtype.Numeric
		imageURL        pgtype.Text
		color           pgtype.Text
		size            pgtype.Text
		material        pgtype.Text
		brandID         pgtype.Int8
		categoryID      pgtype.Int8
		subCategoryID   pgtype.Int8
		addedAt         pgtype.Timestamptz
		updatedAt       pgtype.Timestamptz
	)
	err := exec(ctx, r.db).QueryRow(ctx, query, url).Scan(
		&p.ID, &p.Name, &description, &price, &discountedPrice, &imageURL, &p.ProductURL,
		&color, &size, &material, &p.ClickCount, &p.IsEditorsPick, &brandID, &categoryID, &subCategoryID,
		&addedAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Description = textToStrPtr(description)
	p.Price = numericToFloat64(price)
	p.DiscountedPrice = numericToFloat64Ptr(discountedPrice)
	p.ImageURL = textToStrPtr(imageURL)
	p.Color = textToStrPtr(color)
	p.Size = textToStrPtr(size)
	p.Material = textToStrPtr(material)
	p.BrandID = pgInt8ToInt64Ptr(brandID)
	p.CategoryID = pgInt8ToInt64Ptr(categoryID)
	p.SubCategoryID = pgInt8ToInt64Ptr(subCategoryID)
	p.AddedAt = pgtimeToTime(addedAt)
	p.UpdatedAt = pgtimeToTimePtr(updatedAt)
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products
		(name, description, price, discounted_price, image_url, product_url, color, size, material, is_editors_pick, brand_id, category_id, subcategory_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, click_count, added_at`

	var addedAt pgtype.Timestamptz
	err := exec(ctx, r.db).QueryRow(ctx, query,
		p.Name, p.Description, float64ToNumeric(p.Price), float64PtrToNumeric(p.DiscountedPrice),
		p.ImageURL, p.ProductURL, p.Color, p.Size, p.Material, p.IsEditorsPick,
		int64ToPgInt8(p.BrandID), int64ToPgInt8(p.CategoryID), int64ToPgInt8(p.SubCategoryID),
	).Scan(&p.ID, &p.ClickCount, &addedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	p.AddedAt = pgtimeToTime(addedAt)
	return nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET
		name = $1, description = $2, price = $3, discounted_price = $4, image_url = $5,
		color = $6, size = $7, material = $8, is_editors_pick = $9, brand_id = $10,
		category_id = $11, subcategory_id = $12, updated_at = now()
		WHERE id = $13`

	tag, err := exec(ctx, r.db).Exec(ctx, query,
		p.Name, p.Description, float64ToNumeric(p.Price), float64PtrToNumeric(p.DiscountedPrice),
		p.ImageURL, p.Color, p.Size, p.Material, p.IsEditorsPick,
		int64ToPgInt8(p.BrandID), int64ToPgInt8(p.CategoryID), int64ToPgInt8(p.SubCategoryID),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementClick bumps the counter in a single statement so concurrent
// clicks never lose updates.
func (r *productRepository) IncrementClick(ctx context.Context, id int64) (string, error) {
	var url string
	err := r.db.QueryRow(ctx,
		"UPDATE products SET click_count = click_count + 1 WHERE id = $1 RETURNING product_url", id,
	).Scan(&url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return url, nil
}
