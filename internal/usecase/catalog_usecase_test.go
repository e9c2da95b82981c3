package usecase

import (
	"context"
	"strings"
	"testing"

	"stylefeed-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaries(ids ...int64) []domain.ProductSummary {
	out := make([]domain.ProductSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.ProductSummary{ID: id})
	}
	return out
}

func TestListProducts_Pagination(t *testing.T) {
	repo := &fakeProductRepo{
		listFn: func(call listCall) ([]domain.ProductSummary, int64, error) {
			return summaries(1, 2, 3), 45, nil
		},
	}
	uc := NewCatalogUsecase(repo, &fakeCategoryRepo{}, newFakeBrandRepo())

	page, err := uc.ListProducts(context.Background(), domain.ProductFilter{}, domain.ProductSort{}, domain.PageRequest{Page: 2, PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(45), page.TotalItems)
	assert.Equal(t, 5, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 10, page.PageSize)
	assert.Len(t, page.Items, 3)

	require.Len(t, repo.listCalls, 1)
	assert.Equal(t, 10, repo.listCalls[0].limit)
	assert.Equal(t, 10, repo.listCalls[0].offset)
}

func TestListProducts_DefaultsAndOutOfRangePage(t *testing.T) {
	repo := &fakeProductRepo{
		listFn: func(call listCall) ([]domain.ProductSummary, int64, error) {
			if call.offset >= 45 {
				return []domain.ProductSummary{}, 45, nil
			}
			return summaries(1), 45, nil
		},
	}
	uc := NewCatalogUsecase(repo, &fakeCategoryRepo{}, newFakeBrandRepo())

	// Zero values normalize to page 1, default size.
	page, err := uc.ListProducts(context.Background(), domain.ProductFilter{}, domain.ProductSort{}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, domain.DefaultPageSize, page.PageSize)

	// A page past the end stays where it was asked for, with no items.
	page, err = uc.ListProducts(context.Background(), domain.ProductFilter{}, domain.ProductSort{}, domain.PageRequest{Page: 99, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 99, page.CurrentPage)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(45), page.TotalItems)
}

func TestSearchProducts_RequiresQuery(t *testing.T) {
	uc := NewCatalogUsecase(&fakeProductRepo{}, &fakeCategoryRepo{}, newFakeBrandRepo())

	_, err := uc.SearchProducts(context.Background(), "   ", domain.ProductFilter{}, domain.ProductSort{}, domain.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "search query is required")
}

func TestSearchProducts_SetsFilterQuery(t *testing.T) {
	repo := &fakeProductRepo{}
	uc := NewCatalogUsecase(repo, &fakeCategoryRepo{}, newFakeBrandRepo())

	_, err := uc.SearchProducts(context.Background(), " dress ", domain.ProductFilter{}, domain.ProductSort{}, domain.PageRequest{})
	require.NoError(t, err)
	require.Len(t, repo.listCalls, 1)
	require.NotNil(t, repo.listCalls[0].filter.Query)
	assert.Equal(t, "dress", *repo.listCalls[0].filter.Query)
}

func TestEditorsPick_FilterAndDefaultLimit(t *testing.T) {
	repo := &fakeProductRepo{}
	uc := NewCatalogUsecase(repo, &fakeCategoryRepo{}, newFakeBrandRepo())

	_, err := uc.EditorsPick(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, repo.listCalls, 1)

	call := repo.listCalls[0]
	require.NotNil(t, call.filter.EditorsPick)
	assert.True(t, *call.filter.EditorsPick)
	assert.Equal(t, domain.SortByPopularity, call.sort.Key)
	assert.Equal(t, domain.SortDesc, call.sort.Order)
	assert.Equal(t, 10, call.limit)
}

func TestHomeTrending_TopFive(t *testing.T) {
	repo := &fakeProductRepo{
		listFn: func(call listCall) ([]domain.ProductSummary, int64, error) {
			return summaries(9, 8, 7, 6, 5), 100, nil
		},
	}
	uc := NewCatalogUsecase(repo, &fakeCategoryRepo{}, newFakeBrandRepo())

	items, err := uc.HomeTrending(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, items, 5)

	call := repo.listCalls[0]
	assert.Equal(t, domain.SortByPopularity, call.sort.Key)
	assert.Equal(t, 5, call.limit)
	assert.Equal(t, 0, call.offset)
}

func TestTrendingPage_ClampsPastLastPage(t *testing.T) {
	// 32 items at 15 per page -> 3 pages.
	repo := &fakeProductRepo{
		listFn: func(call listCall) ([]domain.ProductSummary, int64, error) {
			if call.offset >= 32 {
				return []domain.ProductSummary{}, 32, nil
			}
			return summaries(1, 2), 32, nil
		},
	}
	uc := NewCatalogUsecase(repo, &fakeCategoryRepo{}, newFakeBrandRepo())

	page, err := uc.TrendingPage(context.Background(), 50)
	require.NoError(t, err)

	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 15, page.PageSize)
	assert.NotEmpty(t, page.Items)

	// First fetch at the requested page, then the refetch at the clamp.
	require.Len(t, repo.listCalls, 2)
	assert.Equal(t, 49*15, repo.listCalls[0].offset)
	assert.Equal(t, 2*15, repo.listCalls[1].offset)
}

func TestTrendingPage_EmptyCatalog(t *testing.T) {
	repo := &fakeProductRepo{}
	uc := NewCatalogUsecase(repo, &fakeCategoryRepo{}, newFakeBrandRepo())

	page, err := uc.TrendingPage(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Items)
	assert.Len(t, repo.listCalls, 1)
}

func TestRecommendations_PriceBandAndExclusion(t *testing.T) {
	catID := int64(7)
	repo := &fakeProductRepo{
		getByIDFn: func(id int64) (*domain.ProductSummary, error) {
			return &domain.ProductSummary{ID: id, Price: 100, CategoryID: &catID}, nil
		},
	}
	uc := NewCatalogUsecase(repo, &fakeCategoryRepo{}, newFakeBrandRepo())

	_, err := uc.Recommendations(context.Background(), 42, 0)
	require.NoError(t, err)
	require.Len(t, repo.listCalls, 1)

	call := repo.listCalls[0]
	require.NotNil(t, call.filter.MinPrice)
	require.NotNil(t, call.filter.MaxPrice)
	assert.InDelta(t, 80, *call.filter.MinPrice, 0.001)
	assert.InDelta(t, 120, *call.filter.MaxPrice, 0.001)
	assert.Equal(t, &catID, call.filter.CategoryID)
	require.NotNil(t, call.filter.ExcludeID)
	assert.Equal(t, int64(42), *call.filter.ExcludeID)
	assert.Equal(t, 4, call.limit)
}

func TestRecommendations_UnknownProduct(t *testing.T) {
	uc := NewCatalogUsecase(&fakeProductRepo{}, &fakeCategoryRepo{}, newFakeBrandRepo())

	_, err := uc.Recommendations(context.Background(), 42, 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateProduct_Validation(t *testing.T) {
	uc := NewCatalogUsecase(&fakeProductRepo{}, &fakeCategoryRepo{}, newFakeBrandRepo())

	longName := strings.Repeat("a", 101)
	longDesc := strings.Repeat("b", 501)
	tests := []struct {
		name    string
		product domain.Product
		wantErr string
	}{
		{"missing name", domain.Product{ProductURL: "https://x.test/p", Price: 10}, "product name is required"},
		{"missing url", domain.Product{Name: "Shirt", Price: 10}, "product URL is required"},
		{"zero price", domain.Product{Name: "Shirt", ProductURL: "https://x.test/p"}, "price must be positive"},
		{"name too long", domain.Product{Name: longName, ProductURL: "https://x.test/p", Price: 10}, "product name exceeds 100 characters"},
		{"description too long", domain.Product{Name: "Shirt", Description: &longDesc, ProductURL: "https://x.test/p", Price: 10}, "description exceeds 500 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.CreateProduct(context.Background(), &tt.product)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	err := uc.CreateProduct(context.Background(), &domain.Product{Name: "Shirt", ProductURL: "https://x.test/p", Price: 19.99})
	assert.NoError(t, err)
}

func TestUpdateProduct_Validation(t *testing.T) {
	uc := NewCatalogUsecase(&fakeProductRepo{}, &fakeCategoryRepo{}, newFakeBrandRepo())

	err := uc.UpdateProduct(context.Background(), &domain.Product{ID: 1, Name: "Shirt", ProductURL: "https://x.test/p", Price: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "price must be positive")

	err = uc.UpdateProduct(context.Background(), &domain.Product{Name: "Shirt", ProductURL: "https://x.test/p", Price: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "product id is required")
}

func TestBrandProducts_UnknownBrand(t *testing.T) {
	uc := NewCatalogUsecase(&fakeProductRepo{}, &fakeCategoryRepo{}, newFakeBrandRepo())

	_, err := uc.BrandProducts(context.Background(), 5, domain.ProductFilter{}, domain.ProductSort{}, domain.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBrandProducts_ForcesBrandFilter(t *testing.T) {
	repo := &fakeProductRepo{}
	brands := newFakeBrandRepo(domain.BrandSummary{ID: 5, Name: "Acme"})
	uc := NewCatalogUsecase(repo, &fakeCategoryRepo{}, brands)

	other := int64(99)
	_, err := uc.BrandProducts(context.Background(), 5, domain.ProductFilter{BrandID: &other}, domain.ProductSort{}, domain.PageRequest{})
	require.NoError(t, err)
	require.Len(t, repo.listCalls, 1)
	require.NotNil(t, repo.listCalls[0].filter.BrandID)
	assert.Equal(t, int64(5), *repo.listCalls[0].filter.BrandID)
}

func TestCategorySubCategories_UnknownCategory(t *testing.T) {
	cats := &fakeCategoryRepo{categories: map[int64]domain.Category{}}
	uc := NewCatalogUsecase(&fakeProductRepo{}, cats, newFakeBrandRepo())

	_, err := uc.CategorySubCategories(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
