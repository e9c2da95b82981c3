package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"stylefeed-backend/internal/domain"
	memcache "stylefeed-backend/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScraperUC(fetcher ShopifyFetcher, products domain.ProductRepository, brands domain.BrandRepository, tx TxRunner) *ScraperUsecase {
	return NewScraperUsecase(fetcher, products, brands, tx, memcache.NewMemoryCache(time.Minute, time.Minute))
}

func scraped(name, url string, price float64) domain.ScrapedProduct {
	return domain.ScrapedProduct{Name: name, ProductURL: url, Price: price}
}

func TestScrapeDirect_RequiresStoreURL(t *testing.T) {
	uc := newScraperUC(&fakeFetcher{}, &fakeProductRepo{}, newFakeBrandRepo(), &fakeTx{})

	_, err := uc.ScrapeDirect(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "store URL is required")
}

func TestScrapeAdminAPI_RequiresCredentials(t *testing.T) {
	uc := newScraperUC(&fakeFetcher{}, &fakeProductRepo{}, newFakeBrandRepo(), &fakeTx{})

	_, err := uc.ScrapeAdminAPI(context.Background(), "", "token")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "store URL is required")

	_, err = uc.ScrapeAdminAPI(context.Background(), "shop.example.com", " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "access token is required")
}

func TestSave_CreatesUpdatesSkips(t *testing.T) {
	existing := &domain.Product{ID: 10, Name: "Old Name", ProductURL: "https://store.test/known", Price: 20}
	repo := &fakeProductRepo{
		getByURLFn: func(url string) (*domain.Product, error) {
			if url == existing.ProductURL {
				clone := *existing
				return &clone, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	brands := newFakeBrandRepo()
	tx := &fakeTx{}
	uc := newScraperUC(&fakeFetcher{}, repo, brands, tx)

	items := []domain.ScrapedProduct{
		{Name: "Fresh Jacket", ProductURL: "https://store.test/new", Price: 80, Vendor: "Acme"},
		{Name: "Known Item", ProductURL: "https://store.test/known", Price: 25, BrandName: "Acme"},
		scraped("", "https://store.test/unnamed", 10), // no name
		scraped("Free Thing", "https://store.test/free", 0),
		scraped("No URL", "", 15),
	}

	report, err := uc.Save(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, 1, tx.calls)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "Fresh Jacket", repo.created[0].Name)
	require.NotNil(t, repo.created[0].BrandID)

	require.Len(t, repo.updated, 1)
	assert.Equal(t, int64(10), repo.updated[0].ID)
	assert.Equal(t, "Known Item", repo.updated[0].Name)
	assert.Equal(t, 25.0, repo.updated[0].Price)

	// Both rows resolved to the same brand, created once.
	assert.Equal(t, []string{"Acme"}, brands.created)
}

func TestSave_BrandFallsBackToLeadingWord(t *testing.T) {
	repo := &fakeProductRepo{}
	brands := newFakeBrandRepo()
	uc := newScraperUC(&fakeFetcher{}, repo, brands, &fakeTx{})

	_, err := uc.Save(context.Background(), []domain.ScrapedProduct{
		scraped("Zara Linen Shirt", "https://store.test/shirt", 30),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Zara"}, brands.created)
}

func TestSave_CarriesFlagAndCategory(t *testing.T) {
	repo := &fakeProductRepo{}
	uc := newScraperUC(&fakeFetcher{}, repo, newFakeBrandRepo(), &fakeTx{})

	catID := int64(7)
	item := scraped("Acme Scarf", "https://store.test/scarf", 18)
	item.IsEditorsPick = true
	item.CategoryID = &catID

	_, err := uc.Save(context.Background(), []domain.ScrapedProduct{item})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].IsEditorsPick)
	require.NotNil(t, repo.created[0].CategoryID)
	assert.Equal(t, catID, *repo.created[0].CategoryID)
}

func TestSave_KeepsExistingImageWhenScrapeHasNone(t *testing.T) {
	img := "https://cdn.test/coat.jpg"
	existing := &domain.Product{ID: 3, Name: "Coat", ProductURL: "https://store.test/coat", Price: 50, ImageURL: &img}
	repo := &fakeProductRepo{
		getByURLFn: func(url string) (*domain.Product, error) {
			clone := *existing
			return &clone, nil
		},
	}
	uc := newScraperUC(&fakeFetcher{}, repo, newFakeBrandRepo(), &fakeTx{})

	_, err := uc.Save(context.Background(), []domain.ScrapedProduct{
		scraped("Coat v2", "https://store.test/coat", 55),
	})
	require.NoError(t, err)
	require.Len(t, repo.updated, 1)
	require.NotNil(t, repo.updated[0].ImageURL)
	assert.Equal(t, img, *repo.updated[0].ImageURL)
}

func TestSave_EmptyBatch(t *testing.T) {
	uc := newScraperUC(&fakeFetcher{}, &fakeProductRepo{}, newFakeBrandRepo(), &fakeTx{})

	_, err := uc.Save(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "no products to save")
}

func TestSave_AbortsBatchOnError(t *testing.T) {
	boom := errors.New("insert failed")
	repo := &fakeProductRepo{
		createFn: func(p *domain.Product) error { return boom },
	}
	uc := newScraperUC(&fakeFetcher{}, repo, newFakeBrandRepo(), &fakeTx{})

	_, err := uc.Save(context.Background(), []domain.ScrapedProduct{
		scraped("Acme Hat", "https://store.test/hat", 12),
	})
	assert.ErrorIs(t, err, boom)
}
