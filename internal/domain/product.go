package domain

import (
	"context"
	"time"
)

// Product is the catalog entity as stored. Price fields are in the store's
// display currency; DiscountedPrice is nil when the product is not on sale.
type Product struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description,omitempty"`
	Price           float64    `json:"price"`
	DiscountedPrice *float64   `json:"discountedPrice,omitempty"`
	ImageURL        *string    `json:"imageUrl,omitempty"`
	ProductURL      string     `json:"productUrl"`
	Color           *string    `json:"color,omitempty"`
	Size            *string    `json:"size,omitempty"`
	Material        *string    `json:"material,omitempty"`
	ClickCount      int64      `json:"clickCount"`
	IsEditorsPick   bool       `json:"isEditorsPick"`
	BrandID         *int64     `json:"brandId,omitempty"`
	CategoryID      *int64     `json:"categoryId,omitempty"`
	SubCategoryID   *int64     `json:"subCategoryId,omitempty"`
	AddedAt         time.Time  `json:"addedAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// ProductSummary is the flattened projection returned by every listing
// endpoint: brand, category and subcategory names are joined in so clients
// never chase references.
type ProductSummary struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	Price           float64   `json:"price"`
	DiscountedPrice *float64  `json:"discountedPrice"`
	ImageURL        *string   `json:"imageUrl"`
	Color           *string   `json:"color"`
	Size            *string   `json:"size"`
	Material        *string   `json:"material"`
	ProductURL      string    `json:"productUrl"`
	ClickCount      int64     `json:"clickCount"`
	IsEditorsPick   bool      `json:"isEditorsPick"`
	BrandName       *string   `json:"brandName"`
	CategoryName    *string   `json:"categoryName"`
	CategoryGender  Gender    `json:"categoryGender"`
	SubCategoryName *string   `json:"subCategoryName"`
	CategoryID      *int64    `json:"-"`
	AddedAt         time.Time `json:"-"`
}

// ProductPage is the envelope shared by all paginated listings.
type ProductPage struct {
	TotalItems  int64            `json:"totalItems"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	PageSize    int              `json:"pageSize"`
	Items       []ProductSummary `json:"items"`
}

// Category groups products by kind for one audience. Gender is canonical,
// never empty.
type Category struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Gender        Gender        `json:"gender"`
	SubCategories []SubCategory `json:"subCategories,omitempty"`
}

type SubCategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"categoryId"`
}

type Brand struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	LogoURL    *string `json:"logoUrl,omitempty"`
	WebsiteURL *string `json:"websiteUrl,omitempty"`
}

// BrandSummary carries a brand plus its live catalog stats.
type BrandSummary struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	LogoURL      *string `json:"logoUrl"`
	WebsiteURL   *string `json:"websiteUrl"`
	ProductCount int64   `json:"productCount"`
	TotalClicks  int64   `json:"totalClicks"`
	AveragePrice float64 `json:"averagePrice"`
}

// SortKey is the canonical sort vocabulary. Transport-level aliases such as
// "price_asc" or "trending" are resolved into a SortKey plus direction
// before they reach the repository layer.
type SortKey string

const (
	SortByPrice      SortKey = "price"
	SortByPopularity SortKey = "popularity"
	SortByNewest     SortKey = "newest"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ProductSort pairs a canonical key with a direction. The zero value means
// "no explicit sort"; repositories then fall back to newest-first.
type ProductSort struct {
	Key   SortKey
	Order SortOrder
}

// ProductFilter is the conjunction of optional predicates applied to a
// listing. Nil pointer fields are not filtered on.
type ProductFilter struct {
	Gender        *Gender // matches the category's gender; Men/Women also match unisex categories
	CategoryID    *int64
	SubCategoryID *int64
	BrandID       *int64
	Color         *string
	Size          *string
	Material      *string
	MinPrice      *float64
	MaxPrice      *float64
	OnSale        *bool // discounted_price set and below price
	Query         *string
	EditorsPick   *bool // manually flagged picks only
	ExcludeID     *int64
	AddedFrom     *time.Time
	AddedTo       *time.Time
}

// PageRequest is a 1-indexed page selection.
type PageRequest struct {
	Page     int
	PageSize int
}

const DefaultPageSize = 20

// Normalize clamps a request to sane bounds without touching out-of-range
// pages: asking for page 900 of 3 stays page 900 and yields no items.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

func (p PageRequest) Offset() int { return (p.Page - 1) * p.PageSize }

// TotalPages computes the page count for an item total, never below zero.
func TotalPages(totalItems int64, pageSize int) int {
	if totalItems <= 0 || pageSize < 1 {
		return 0
	}
	return int((totalItems + int64(pageSize) - 1) / int64(pageSize))
}

type ProductRepository interface {
	// List returns one page of the flattened projection plus the total
	// match count before paging. A non-positive limit disables paging.
	List(ctx context.Context, filter ProductFilter, sort ProductSort, limit, offset int) ([]ProductSummary, int64, error)
	GetByID(ctx context.Context, id int64) (*ProductSummary, error)
	GetByURL(ctx context.Context, url string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
	// IncrementClick atomically bumps the click counter and returns the
	// product URL to redirect to.
	IncrementClick(ctx context.Context, id int64) (string, error)
}

type CategoryRepository interface {
	List(ctx context.Context, gender *Gender) ([]Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	SubCategories(ctx context.Context, categoryID int64) ([]SubCategory, error)
	ListSubCategories(ctx context.Context) ([]SubCategory, error)
}

type BrandRepository interface {
	List(ctx context.Context) ([]BrandSummary, error)
	GetByID(ctx context.Context, id int64) (*BrandSummary, error)
	Trending(ctx context.Context, limit int) ([]BrandSummary, error)
	Search(ctx context.Context, query string, limit, offset int) ([]BrandSummary, int64, error)
	// GetOrCreateByName finds a brand case-insensitively, creating it on
	// first sight. Used by the scraper import path.
	GetOrCreateByName(ctx context.Context, name string, websiteURL *string) (*Brand, error)
}
