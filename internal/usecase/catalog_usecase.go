package usecase

import (
	"context"
	"fmt"
	"strings"

	"stylefeed-backend/internal/domain"
)

const (
	defaultEditorsPickLimit = 10
	trendingListPageSize    = 15
	homeTrendingLimit       = 5
	defaultRecommendations  = 4
	recommendationPriceBand = 0.2
)

type CatalogUsecase struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	brands     domain.BrandRepository
}

func NewCatalogUsecase(products domain.ProductRepository, categories domain.CategoryRepository, brands domain.BrandRepository) *CatalogUsecase {
	return &CatalogUsecase{
		products:   products,
		categories: categories,
		brands:     brands,
	}
}

// ListProducts runs a filtered, sorted, paginated listing. A page past the
// end yields an empty items array with the counts intact.
func (uc *CatalogUsecase) ListProducts(ctx context.Context, filter domain.ProductFilter, sort domain.ProductSort, page domain.PageRequest) (*domain.ProductPage, error) {
	page = page.Normalize()
	items, total, err := uc.products.List(ctx, filter, sort, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return &domain.ProductPage{
		TotalItems:  total,
		TotalPages:  domain.TotalPages(total, page.PageSize),
		CurrentPage: page.Page,
		PageSize:    page.PageSize,
		Items:       items,
	}, nil
}

// SearchProducts is ListProducts with a mandatory query term.
func (uc *CatalogUsecase) SearchProducts(ctx context.Context, query string, filter domain.ProductFilter, sort domain.ProductSort, page domain.PageRequest) (*domain.ProductPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required: %w", domain.ErrInvalidInput)
	}
	filter.Query = &query
	return uc.ListProducts(ctx, filter, sort, page)
}

func (uc *CatalogUsecase) GetProduct(ctx context.Context, id int64) (*domain.ProductSummary, error) {
	return uc.products.GetByID(ctx, id)
}

// EditorsPick returns the manually flagged picks, most clicked first.
func (uc *CatalogUsecase) EditorsPick(ctx context.Context, limit int) ([]domain.ProductSummary, error) {
	if limit < 1 {
		limit = defaultEditorsPickLimit
	}
	pick := true
	items, _, err := uc.products.List(ctx,
		domain.ProductFilter{EditorsPick: &pick},
		domain.ProductSort{Key: domain.SortByPopularity, Order: domain.SortDesc},
		limit, 0)
	return items, err
}

// HomeTrending returns the flat top-clicked strip for the home page.
func (uc *CatalogUsecase) HomeTrending(ctx context.Context, limit int) ([]domain.ProductSummary, error) {
	if limit < 1 {
		limit = homeTrendingLimit
	}
	items, _, err := uc.products.List(ctx,
		domain.ProductFilter{},
		domain.ProductSort{Key: domain.SortByPopularity, Order: domain.SortDesc},
		limit, 0)
	return items, err
}

// TrendingPage is the paginated trending listing. Unlike other listings its
// page size is fixed and an out-of-range page is clamped into the valid
// window instead of returning empty.
func (uc *CatalogUsecase) TrendingPage(ctx context.Context, page int) (*domain.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	sort := domain.ProductSort{Key: domain.SortByPopularity, Order: domain.SortDesc}

	items, total, err := uc.products.List(ctx, domain.ProductFilter{}, sort,
		trendingListPageSize, (page-1)*trendingListPageSize)
	if err != nil {
		return nil, err
	}

	totalPages := domain.TotalPages(total, trendingListPageSize)
	if totalPages > 0 && page > totalPages {
		page = totalPages
		items, _, err = uc.products.List(ctx, domain.ProductFilter{}, sort,
			trendingListPageSize, (page-1)*trendingListPageSize)
		if err != nil {
			return nil, err
		}
	}

	return &domain.ProductPage{
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    trendingListPageSize,
		Items:       items,
	}, nil
}

// Recommendations suggests products from the same category within ±20% of
// the product's price, most clicked first.
func (uc *CatalogUsecase) Recommendations(ctx context.Context, productID int64, limit int) ([]domain.ProductSummary, error) {
	if limit < 1 {
		limit = defaultRecommendations
	}

	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	minPrice := product.Price * (1 - recommendationPriceBand)
	maxPrice := product.Price * (1 + recommendationPriceBand)
	filter := domain.ProductFilter{
		CategoryID: product.CategoryID,
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		ExcludeID:  &productID,
	}

	items, _, err := uc.products.List(ctx, filter,
		domain.ProductSort{Key: domain.SortByPopularity, Order: domain.SortDesc},
		limit, 0)
	return items, err
}

const (
	maxProductNameLen = 100
	maxDescriptionLen = 500
)

// validateProduct enforces the write-side invariants shared by create and
// update. Violations wrap ErrInvalidInput so handlers map them to 400.
func validateProduct(product *domain.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("product name is required: %w", domain.ErrInvalidInput)
	}
	if len(product.Name) > maxProductNameLen {
		return fmt.Errorf("product name exceeds %d characters: %w", maxProductNameLen, domain.ErrInvalidInput)
	}
	if product.Description != nil && len(*product.Description) > maxDescriptionLen {
		return fmt.Errorf("description exceeds %d characters: %w", maxDescriptionLen, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(product.ProductURL) == "" {
		return fmt.Errorf("product URL is required: %w", domain.ErrInvalidInput)
	}
	if product.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *CatalogUsecase) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return uc.products.Create(ctx, product)
}

func (uc *CatalogUsecase) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == 0 {
		return fmt.Errorf("product id is required: %w", domain.ErrInvalidInput)
	}
	if err := validateProduct(product); err != nil {
		return err
	}
	return uc.products.Update(ctx, product)
}

func (uc *CatalogUsecase) DeleteProduct(ctx context.Context, id int64) error {
	return uc.products.Delete(ctx, id)
}

func (uc *CatalogUsecase) ListCategories(ctx context.Context, gender *domain.Gender) ([]domain.Category, error) {
	return uc.categories.List(ctx, gender)
}

func (uc *CatalogUsecase) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return uc.categories.GetByID(ctx, id)
}

func (uc *CatalogUsecase) CategorySubCategories(ctx context.Context, categoryID int64) ([]domain.SubCategory, error) {
	if _, err := uc.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return uc.categories.SubCategories(ctx, categoryID)
}

func (uc *CatalogUsecase) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	return uc.categories.ListSubCategories(ctx)
}

func (uc *CatalogUsecase) ListBrands(ctx context.Context) ([]domain.BrandSummary, error) {
	return uc.brands.List(ctx)
}

func (uc *CatalogUsecase) GetBrand(ctx context.Context, id int64) (*domain.BrandSummary, error) {
	return uc.brands.GetByID(ctx, id)
}

// BrandProducts lists one brand's products through the standard engine so
// all listing filters and sorts apply.
func (uc *CatalogUsecase) BrandProducts(ctx context.Context, brandID int64, filter domain.ProductFilter, sort domain.ProductSort, page domain.PageRequest) (*domain.ProductPage, error) {
	if _, err := uc.brands.GetByID(ctx, brandID); err != nil {
		return nil, err
	}
	filter.BrandID = &brandID
	return uc.ListProducts(ctx, filter, sort, page)
}

func (uc *CatalogUsecase) TrendingBrands(ctx context.Context, limit int) ([]domain.BrandSummary, error) {
	if limit < 1 {
		limit = 10
	}
	return uc.brands.Trending(ctx, limit)
}

func (uc *CatalogUsecase) SearchBrands(ctx context.Context, query string, page domain.PageRequest) ([]domain.BrandSummary, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, fmt.Errorf("search query is required: %w", domain.ErrInvalidInput)
	}
	page = page.Normalize()
	return uc.brands.Search(ctx, query, page.PageSize, page.Offset())
}
