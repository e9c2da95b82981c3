package domain

import (
	"context"
	"time"
)

type Like struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	LikedAt   time.Time `json:"likedAt"`
}

// LikeResult reports the outcome of a toggle.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

type LikeRepository interface {
	// Insert records a like. It is a no-op returning false when the pair
	// already exists.
	Insert(ctx context.Context, userID, productID int64) (bool, error)
	// Delete removes a like, reporting whether a row existed.
	Delete(ctx context.Context, userID, productID int64) (bool, error)
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	CountForProduct(ctx context.Context, productID int64) (int64, error)
	// ListByUser returns the user's liked products in the standard
	// projection, most recently liked first.
	ListByUser(ctx context.Context, userID int64) ([]ProductSummary, error)
}
