package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"stylefeed-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportProducts(t *testing.T) {
	brand := "Acme"
	discounted := 39.99
	added := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	repo := &fakeProductRepo{
		listFn: func(call listCall) ([]domain.ProductSummary, int64, error) {
			return []domain.ProductSummary{
				{ID: 1, Name: "Wool Coat", BrandName: &brand, Price: 59.9, DiscountedPrice: &discounted, ProductURL: "https://store.test/coat", ClickCount: 12, AddedAt: added},
				{ID: 2, Name: "Plain Tee", Price: 9.5, ProductURL: "https://store.test/tee", AddedAt: added},
			}, 2, nil
		},
	}
	uc := NewExportUsecase(repo, &fakeReportRepo{})

	var buf bytes.Buffer
	require.NoError(t, uc.ExportProducts(context.Background(), &buf, domain.ProductFilter{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, productCSVHeader, records[0])
	assert.Equal(t, []string{"1", "Wool Coat", "Acme", "", "", "12", "59.90", "39.99", "", "", "", "https://store.test/coat", "2026-03-14"}, records[1])
	assert.Equal(t, "Plain Tee", records[2][1])
	assert.Equal(t, "", records[2][7]) // no discount, empty cell

	// Export always pulls the full set, most clicked first.
	require.Len(t, repo.listCalls, 1)
	assert.Equal(t, 0, repo.listCalls[0].limit)
	assert.Equal(t, domain.SortByPopularity, repo.listCalls[0].sort.Key)
}

func TestExportProducts_NoRows(t *testing.T) {
	uc := NewExportUsecase(&fakeProductRepo{}, &fakeReportRepo{})

	var buf bytes.Buffer
	err := uc.ExportProducts(context.Background(), &buf, domain.ProductFilter{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, buf.Len())
}

func TestExportBrandSummary(t *testing.T) {
	reports := &fakeReportRepo{
		summaries: []domain.BrandReportRow{
			{BrandID: 3, BrandName: "Acme", ProductCount: 14, TotalClicks: 220, AveragePrice: 45.5, TopProductName: "Wool Coat"},
		},
	}
	uc := NewExportUsecase(&fakeProductRepo{}, reports)

	var buf bytes.Buffer
	require.NoError(t, uc.ExportBrandSummary(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"BrandID", "Brand", "ProductCount", "TotalClicks", "AveragePrice", "TopProduct"}, records[0])
	assert.Equal(t, []string{"3", "Acme", "14", "220", "45.50", "Wool Coat"}, records[1])
}

func TestExportBrandProducts_UnknownBrand(t *testing.T) {
	uc := NewExportUsecase(&fakeProductRepo{}, &fakeReportRepo{products: map[int64][]domain.ProductSummary{}})

	var buf bytes.Buffer
	err := uc.ExportBrandProducts(context.Background(), &buf, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
