package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/pkg/cache"

	"github.com/rs/zerolog/log"
)

// ShopifyFetcher pulls a store's catalog, either from the public products
// endpoint or the authenticated Admin API.
type ShopifyFetcher interface {
	FetchPublic(ctx context.Context, storeURL string) ([]domain.ScrapedProduct, error)
	FetchAdmin(ctx context.Context, storeURL, accessToken string) ([]domain.ScrapedProduct, error)
}

// TxRunner runs fn inside one database transaction.
type TxRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type ScraperUsecase struct {
	fetcher  ShopifyFetcher
	products domain.ProductRepository
	brands   domain.BrandRepository
	tx       TxRunner
	cache    cache.CacheService
}

func NewScraperUsecase(fetcher ShopifyFetcher, products domain.ProductRepository, brands domain.BrandRepository, tx TxRunner, cache cache.CacheService) *ScraperUsecase {
	return &ScraperUsecase{
		fetcher:  fetcher,
		products: products,
		brands:   brands,
		tx:       tx,
		cache:    cache,
	}
}

func (uc *ScraperUsecase) ScrapeDirect(ctx context.Context, storeURL string) ([]domain.ScrapedProduct, error) {
	if strings.TrimSpace(storeURL) == "" {
		return nil, fmt.Errorf("store URL is required: %w", domain.ErrInvalidInput)
	}
	return uc.fetcher.FetchPublic(ctx, storeURL)
}

func (uc *ScraperUsecase) ScrapeAdminAPI(ctx context.Context, storeURL, accessToken string) ([]domain.ScrapedProduct, error) {
	if strings.TrimSpace(storeURL) == "" {
		return nil, fmt.Errorf("store URL is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(accessToken) == "" {
		return nil, fmt.Errorf("access token is required: %w", domain.ErrInvalidInput)
	}
	return uc.fetcher.FetchAdmin(ctx, storeURL, accessToken)
}

// Save upserts scraped products into the catalog, keyed by product URL.
// Each product's brand is resolved by name, created on first sight. The
// whole batch commits or rolls back as one transaction.
func (uc *ScraperUsecase) Save(ctx context.Context, items []domain.ScrapedProduct) (*domain.ImportReport, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no products to save: %w", domain.ErrInvalidInput)
	}

	report := &domain.ImportReport{}
	err := uc.tx.Do(ctx, func(txCtx context.Context) error {
		for _, item := range items {
			if err := uc.saveOne(txCtx, item, report); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Imports move the stats aggregations; cached trends are stale now.
	uc.cache.Flush()

	log.Info().
		Int("created", report.Created).
		Int("updated", report.Updated).
		Int("skipped", report.Skipped).
		Msg("scraper import finished")
	return report, nil
}

func (uc *ScraperUsecase) saveOne(ctx context.Context, item domain.ScrapedProduct, report *domain.ImportReport) error {
	if strings.TrimSpace(item.ProductURL) == "" || strings.TrimSpace(item.Name) == "" || item.Price <= 0 {
		report.Skipped++
		return nil
	}

	brandName := item.BrandName
	if brandName == "" {
		brandName = item.Vendor
	}
	if brandName == "" {
		// Fall back to the leading word of the product name.
		brandName = strings.Fields(item.Name)[0]
	}

	brand, err := uc.brands.GetOrCreateByName(ctx, brandName, nil)
	if err != nil {
		return err
	}

	existing, err := uc.products.GetByURL(ctx, item.ProductURL)
	switch {
	case err == nil:
		existing.Name = item.Name
		existing.Description = item.Description
		existing.Price = item.Price
		existing.DiscountedPrice = item.DiscountedPrice
		if item.ImageURL != nil {
			existing.ImageURL = item.ImageURL
		}
		existing.Color = item.Color
		existing.Size = item.Size
		existing.Material = item.Material
		existing.IsEditorsPick = item.IsEditorsPick
		existing.BrandID = &brand.ID
		if item.CategoryID != nil {
			existing.CategoryID = item.CategoryID
		}
		if item.SubCategoryID != nil {
			existing.SubCategoryID = item.SubCategoryID
		}
		if err := uc.products.Update(ctx, existing); err != nil {
			return err
		}
		report.Updated++
	case errors.Is(err, domain.ErrNotFound):
		product := &domain.Product{
			Name:            item.Name,
			Description:     item.Description,
			Price:           item.Price,
			DiscountedPrice: item.DiscountedPrice,
			ImageURL:        item.ImageURL,
			ProductURL:      item.ProductURL,
			Color:           item.Color,
			Size:            item.Size,
			Material:        item.Material,
			IsEditorsPick:   item.IsEditorsPick,
			BrandID:         &brand.ID,
			CategoryID:      item.CategoryID,
			SubCategoryID:   item.SubCategoryID,
		}
		if err := uc.products.Create(ctx, product); err != nil {
			return err
		}
		report.Created++
	default:
		return err
	}
	return nil
}
