package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"stylefeed-backend/internal/domain"
)

// ExportUsecase renders catalog reports as CSV. Exports with zero matching
// rows fail with ErrNotFound instead of producing an empty file.
type ExportUsecase struct {
	products domain.ProductRepository
	reports  domain.ReportRepository
}

func NewExportUsecase(products domain.ProductRepository, reports domain.ReportRepository) *ExportUsecase {
	return &ExportUsecase{
		products: products,
		reports:  reports,
	}
}

var productCSVHeader = []string{
	"ID", "Name", "Brand", "Category", "SubCategory", "Clicks",
	"Price", "DiscountedPrice", "Color", "Size", "Material", "URL", "AddedDate",
}

func csvStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func csvFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

func productCSVRow(p domain.ProductSummary) []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		csvStr(p.BrandName),
		csvStr(p.CategoryName),
		csvStr(p.SubCategoryName),
		strconv.FormatInt(p.ClickCount, 10),
		strconv.FormatFloat(p.Price, 'f', 2, 64),
		csvFloat(p.DiscountedPrice),
		csvStr(p.Color),
		csvStr(p.Size),
		csvStr(p.Material),
		p.ProductURL,
		p.AddedAt.Format("2006-01-02"),
	}
}

// ExportProducts writes the filtered catalog as CSV, most clicked first.
func (uc *ExportUsecase) ExportProducts(ctx context.Context, w io.Writer, filter domain.ProductFilter) error {
	rows, _, err := uc.products.List(ctx, filter,
		domain.ProductSort{Key: domain.SortByPopularity, Order: domain.SortDesc}, 0, 0)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrNotFound
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(productCSVHeader); err != nil {
		return err
	}
	for _, p := range rows {
		if err := cw.Write(productCSVRow(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportBrandSummary writes the per-brand aggregate report.
func (uc *ExportUsecase) ExportBrandSummary(ctx context.Context, w io.Writer) error {
	rows, err := uc.reports.BrandSummaries(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrNotFound
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"BrandID", "Brand", "ProductCount", "TotalClicks", "AveragePrice", "TopProduct"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.BrandID, 10),
			r.BrandName,
			strconv.FormatInt(r.ProductCount, 10),
			strconv.FormatInt(r.TotalClicks, 10),
			strconv.FormatFloat(r.AveragePrice, 'f', 2, 64),
			r.TopProductName,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportBrandProducts writes one brand's full product list.
func (uc *ExportUsecase) ExportBrandProducts(ctx context.Context, w io.Writer, brandID int64) error {
	rows, err := uc.reports.BrandProducts(ctx, brandID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("brand %d: %w", brandID, domain.ErrNotFound)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(productCSVHeader); err != nil {
		return err
	}
	for _, p := range rows {
		if err := cw.Write(productCSVRow(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
