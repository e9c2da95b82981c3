package usecase

import (
	"context"
	"fmt"
	"time"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/pkg/cache"
)

const (
	defaultTrendLimit = 10
	trendCacheTTL     = 15 * time.Minute
	summaryCacheTTL   = 30 * time.Minute
)

// StatsUsecase serves the aggregation endpoints. Results are cached briefly
// since every call recomputes over the full products table.
type StatsUsecase struct {
	stats    domain.StatsRepository
	products domain.ProductRepository
	cache    cache.CacheService
}

func NewStatsUsecase(stats domain.StatsRepository, products domain.ProductRepository, cache cache.CacheService) *StatsUsecase {
	return &StatsUsecase{
		stats:    stats,
		products: products,
		cache:    cache,
	}
}

func genderKey(g *domain.Gender) string {
	if g == nil {
		return "all"
	}
	return string(*g)
}

func attrKey(f domain.AttributeFilter) string {
	key := genderKey(f.Gender)
	if f.CategoryID != nil {
		key += fmt.Sprintf(":%d", *f.CategoryID)
	}
	return key
}

func (uc *StatsUsecase) TrendingCategories(ctx context.Context, gender *domain.Gender, limit int) ([]domain.CategoryTrend, error) {
	if limit < 1 {
		limit = defaultTrendLimit
	}
	cacheKey := fmt.Sprintf("stats:trending_categories:%s:%d", genderKey(gender), limit)
	if val, found := uc.cache.Get(cacheKey); found {
		return val.([]domain.CategoryTrend), nil
	}

	trends, err := uc.stats.TrendingCategories(ctx, gender, limit)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(cacheKey, trends, trendCacheTTL)
	return trends, nil
}

// TrendingProducts is the stats view of the most clicked products.
func (uc *StatsUsecase) TrendingProducts(ctx context.Context, limit int) ([]domain.ProductSummary, error) {
	if limit < 1 {
		limit = defaultTrendLimit
	}
	cacheKey := fmt.Sprintf("stats:trending_products:%d", limit)
	if val, found := uc.cache.Get(cacheKey); found {
		return val.([]domain.ProductSummary), nil
	}

	items, _, err := uc.products.List(ctx, domain.ProductFilter{},
		domain.ProductSort{Key: domain.SortByPopularity, Order: domain.SortDesc},
		limit, 0)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(cacheKey, items, trendCacheTTL)
	return items, nil
}

func (uc *StatsUsecase) TrendingColors(ctx context.Context, filter domain.AttributeFilter, limit int) ([]domain.AttributeTrend, error) {
	if limit < 1 {
		limit = defaultTrendLimit
	}
	cacheKey := fmt.Sprintf("stats:trending_colors:%s:%d", attrKey(filter), limit)
	if val, found := uc.cache.Get(cacheKey); found {
		return val.([]domain.AttributeTrend), nil
	}

	trends, err := uc.stats.TrendingColors(ctx, filter, limit)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(cacheKey, trends, trendCacheTTL)
	return trends, nil
}

func (uc *StatsUsecase) TrendingSizes(ctx context.Context, filter domain.AttributeFilter, limit int) ([]domain.AttributeTrend, error) {
	if limit < 1 {
		limit = defaultTrendLimit
	}
	cacheKey := fmt.Sprintf("stats:trending_sizes:%s:%d", attrKey(filter), limit)
	if val, found := uc.cache.Get(cacheKey); found {
		return val.([]domain.AttributeTrend), nil
	}

	trends, err := uc.stats.TrendingSizes(ctx, filter, limit)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(cacheKey, trends, trendCacheTTL)
	return trends, nil
}

func (uc *StatsUsecase) Summary(ctx context.Context) (*domain.CatalogSummary, error) {
	const cacheKey = "stats:summary"
	if val, found := uc.cache.Get(cacheKey); found {
		summary := val.(domain.CatalogSummary)
		return &summary, nil
	}

	summary, err := uc.stats.Summary(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(cacheKey, *summary, summaryCacheTTL)
	return summary, nil
}
