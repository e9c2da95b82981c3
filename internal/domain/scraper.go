package domain

// ScrapedProduct is a normalized product pulled from a third-party store,
// ready to be upserted into the catalog keyed by ProductURL.
type ScrapedProduct struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice"`
	ImageURL        *string  `json:"imageUrl"`
	ProductURL      string   `json:"productUrl"`
	Color           *string  `json:"color"`
	Size            *string  `json:"size"`
	Material        *string  `json:"material"`
	IsEditorsPick   bool     `json:"isEditorsPick"`
	CategoryID      *int64   `json:"categoryId"`
	SubCategoryID   *int64   `json:"subCategoryId"`
	BrandName       string   `json:"brandName"`
	Vendor          string   `json:"vendor"`
}

// ImportReport summarizes a scraper save run.
type ImportReport struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
