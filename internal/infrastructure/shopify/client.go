package shopify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stylefeed-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const (
	pageSize        = 250
	adminAPIVersion = "2024-01"
)

// Client pulls product catalogs from Shopify stores, either through the
// public /products.json endpoint or the authenticated Admin API.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// --- Shopify wire types ---

type shopifyVariant struct {
	Price          string `json:"price"`
	CompareAtPrice string `json:"compare_at_price"`
	Option1        string `json:"option1"`
	Option2        string `json:"option2"`
	Option3        string `json:"option3"`
}

type shopifyOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type shopifyImage struct {
	Src string `json:"src"`
}

type shopifyProduct struct {
	Title    string           `json:"title"`
	Handle   string           `json:"handle"`
	BodyHTML string           `json:"body_html"`
	Vendor   string           `json:"vendor"`
	Variants []shopifyVariant `json:"variants"`
	Options  []shopifyOption  `json:"options"`
	Images   []shopifyImage   `json:"images"`
}

type productsResponse struct {
	Products []shopifyProduct `json:"products"`
}

type countResponse struct {
	Count int `json:"count"`
}

// FetchPublic walks the store's public products.json pages.
func (c *Client) FetchPublic(ctx context.Context, storeURL string) ([]domain.ScrapedProduct, error) {
	base, err := normalizeStoreURL(storeURL)
	if err != nil {
		return nil, err
	}

	var count countResponse
	if err := c.getJSON(ctx, base+"/products/count.json", nil, &count); err != nil {
		// Some stores hide the count endpoint; walk pages until empty.
		log.Debug().Err(err).Str("store", base).Msg("product count unavailable, paging blind")
		count.Count = -1
	}

	var out []domain.ScrapedProduct
	for page := 1; ; page++ {
		var resp productsResponse
		url := fmt.Sprintf("%s/products.json?limit=%d&page=%d", base, pageSize, page)
		if err := c.getJSON(ctx, url, nil, &resp); err != nil {
			return nil, fmt.Errorf("fetch products page %d: %w", page, err)
		}
		if len(resp.Products) == 0 {
			break
		}
		for _, p := range resp.Products {
			out = append(out, mapProduct(base, p))
		}
		if count.Count >= 0 && len(out) >= count.Count {
			break
		}
	}
	return out, nil
}

// FetchAdmin uses the Admin API with an access token, which also surfaces
// unpublished products.
func (c *Client) FetchAdmin(ctx context.Context, storeURL, accessToken string) ([]domain.ScrapedProduct, error) {
	base, err := normalizeStoreURL(storeURL)
	if err != nil {
		return nil, err
	}
	headers := map[string]string{"X-Shopify-Access-Token": accessToken}

	var out []domain.ScrapedProduct
	for page := 1; ; page++ {
		var resp productsResponse
		url := fmt.Sprintf("%s/admin/api/%s/products.json?limit=%d&page=%d", base, adminAPIVersion, pageSize, page)
		if err := c.getJSON(ctx, url, headers, &resp); err != nil {
			return nil, fmt.Errorf("fetch admin products page %d: %w", page, err)
		}
		if len(resp.Products) == 0 {
			break
		}
		for _, p := range resp.Products {
			out = append(out, mapProduct(base, p))
		}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, headers map[string]string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("shopify returned status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func normalizeStoreURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("store URL is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid store URL %q", raw)
	}
	scheme := "https"
	if u.Scheme == "http" {
		scheme = "http"
	}
	return scheme + "://" + u.Host, nil
}

// mapProduct flattens a Shopify product to the catalog shape: first variant
// carries the price, compare_at_price above it becomes the original price.
func mapProduct(base string, p shopifyProduct) domain.ScrapedProduct {
	sp := domain.ScrapedProduct{
		Name:       strings.TrimSpace(p.Title),
		Vendor:     strings.TrimSpace(p.Vendor),
		BrandName:  strings.TrimSpace(p.Vendor),
		ProductURL: fmt.Sprintf("%s/products/%s", base, p.Handle),
	}

	if desc := stripHTML(p.BodyHTML); desc != "" {
		sp.Description = &desc
	}
	if len(p.Images) > 0 && p.Images[0].Src != "" {
		src := p.Images[0].Src
		sp.ImageURL = &src
	}

	if len(p.Variants) > 0 {
		v := p.Variants[0]
		price, _ := strconv.ParseFloat(v.Price, 64)
		sp.Price = price
		if v.CompareAtPrice != "" {
			if compareAt, err := strconv.ParseFloat(v.CompareAtPrice, 64); err == nil && compareAt > price {
				// Shopify's "compare at" is the pre-sale price.
				sp.Price = compareAt
				sp.DiscountedPrice = &price
			}
		}
		applyOptions(&sp, p.Options, v)
	}
	return sp
}

// applyOptions maps named option values (Color, Size, Material) from the
// first variant onto the product attributes.
func applyOptions(sp *domain.ScrapedProduct, options []shopifyOption, v shopifyVariant) {
	values := []string{v.Option1, v.Option2, v.Option3}
	for i, opt := range options {
		if i >= len(values) || values[i] == "" {
			continue
		}
		val := values[i]
		switch strings.ToLower(opt.Name) {
		case "color", "colour":
			sp.Color = &val
		case "size":
			sp.Size = &val
		case "material", "fabric":
			sp.Material = &val
		}
	}
}

var htmlTagReplacer = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n")

// stripHTML reduces Shopify body_html to plain text.
func stripHTML(s string) string {
	s = htmlTagReplacer.Replace(s)
	var sb strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}
