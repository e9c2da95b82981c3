package postgres

import (
	"context"
	"fmt"

	"stylefeed-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type likeRepository struct {
	db *pgxpool.Pool
}

func NewLikeRepository(db *pgxpool.Pool) domain.LikeRepository {
	return &likeRepository{db: db}
}

// Insert relies on the (user_id, product_id) unique constraint: a concurrent
// duplicate becomes a no-op instead of a second row.
func (r *likeRepository) Insert(ctx context.Context, userID, productID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"INSERT INTO likes (user_id, product_id) VALUES ($1, $2) ON CONFLICT (user_id, product_id) DO NOTHING",
		userID, productID)
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, productID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM likes WHERE user_id = $1 AND product_id = $2", userID, productID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND product_id = $2)",
		userID, productID).Scan(&exists)
	return exists, err
}

func (r *likeRepository) CountForProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM likes WHERE product_id = $1", productID).Scan(&count)
	return count, err
}

func (r *likeRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ProductSummary, error) {
	query := "SELECT " + productColumns + productJoins +
		` JOIN likes l ON l.product_id = p.id
		WHERE l.user_id = $1
		ORDER BY l.liked_at DESC, p.id ASC`

	rows, err := r.db.Query(ctx, query, userID)
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
