package domain

import "context"

// CategoryTrend is an aggregation row: products grouped by category and
// ranked by accumulated clicks.
type CategoryTrend struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Gender       Gender `json:"gender"`
	ProductCount int64  `json:"productCount"`
	TotalClicks  int64  `json:"totalClicks"`
}

// AttributeTrend ranks a product attribute value (color, size) by clicks.
type AttributeTrend struct {
	Value        string `json:"value"`
	ProductCount int64  `json:"productCount"`
	TotalClicks  int64  `json:"totalClicks"`
}

// CatalogSummary is the headline counters for the whole store.
type CatalogSummary struct {
	TotalProducts   int64 `json:"totalProducts"`
	TotalBrands     int64 `json:"totalBrands"`
	TotalCategories int64 `json:"totalCategories"`
	TotalUsers      int64 `json:"totalUsers"`
	TotalClicks     int64 `json:"totalClicks"`
	TotalLikes      int64 `json:"totalLikes"`
}

// AttributeFilter narrows color/size trend aggregations.
type AttributeFilter struct {
	Gender     *Gender
	CategoryID *int64
}

type StatsRepository interface {
	TrendingCategories(ctx context.Context, gender *Gender, limit int) ([]CategoryTrend, error)
	TrendingColors(ctx context.Context, filter AttributeFilter, limit int) ([]AttributeTrend, error)
	TrendingSizes(ctx context.Context, filter AttributeFilter, limit int) ([]AttributeTrend, error)
	Summary(ctx context.Context) (*CatalogSummary, error)
}

// BrandReportRow is one line of the brand summary export.
type BrandReportRow struct {
	BrandID        int64
	BrandName      string
	ProductCount   int64
	TotalClicks    int64
	AveragePrice   float64
	TopProductName string
}

type ReportRepository interface {
	BrandSummaries(ctx context.Context) ([]BrandReportRow, error)
	BrandProducts(ctx context.Context, brandID int64) ([]ProductSummary, error)
}
