package usecase

import (
	"context"

	"stylefeed-backend/internal/domain"

	"github.com/rs/zerolog/log"
)

type EngagementUsecase struct {
	products domain.ProductRepository
	likes    domain.LikeRepository
}

func NewEngagementUsecase(products domain.ProductRepository, likes domain.LikeRepository) *EngagementUsecase {
	return &EngagementUsecase{
		products: products,
		likes:    likes,
	}
}

// TrackClick records an outbound click and returns the URL to redirect to.
// The increment happens in a single statement, so concurrent clicks all
// count.
func (uc *EngagementUsecase) TrackClick(ctx context.Context, productID int64) (string, error) {
	url, err := uc.products.IncrementClick(ctx, productID)
	if err != nil {
		return "", err
	}
	log.Debug().Int64("product_id", productID).Msg("click tracked")
	return url, nil
}

// ToggleLike flips the like state for one (user, product) pair and reports
// the resulting state. Delete-first makes the toggle race-safe: of two
// concurrent toggles one wins the delete, the other the insert.
func (uc *EngagementUsecase) ToggleLike(ctx context.Context, userID, productID int64) (*domain.LikeResult, error) {
	if _, err := uc.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	removed, err := uc.likes.Delete(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	liked := false
	if !removed {
		// Nothing to remove: the toggle means "like". A concurrent
		// duplicate insert is absorbed by the unique constraint.
		if _, err := uc.likes.Insert(ctx, userID, productID); err != nil {
			return nil, err
		}
		liked = true
	}

	count, err := uc.likes.CountForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &domain.LikeResult{Liked: liked, LikeCount: count}, nil
}

func (uc *EngagementUsecase) CheckLiked(ctx context.Context, userID, productID int64) (bool, error) {
	return uc.likes.Exists(ctx, userID, productID)
}

func (uc *EngagementUsecase) ListLiked(ctx context.Context, userID int64) ([]domain.ProductSummary, error) {
	return uc.likes.ListByUser(ctx, userID)
}
