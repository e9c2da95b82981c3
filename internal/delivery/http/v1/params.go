package v1

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/pkg/utils"
)

// parseProductFilter reads the shared listing filter parameters. Unknown or
// empty parameters are simply not filtered on; malformed numerics are an
// error.
func parseProductFilter(q url.Values) (domain.ProductFilter, error) {
	var f domain.ProductFilter

	if val := q.Get("gender"); val != "" {
		g, ok := domain.ParseGender(val)
		if !ok {
			return f, fmt.Errorf("invalid gender %q", val)
		}
		f.Gender = &g
	}
	var err error
	if f.CategoryID, err = parseInt64Param(q, "categoryId"); err != nil {
		return f, err
	}
	if f.SubCategoryID, err = parseInt64Param(q, "subCategoryId"); err != nil {
		return f, err
	}
	if f.BrandID, err = parseInt64Param(q, "brandId"); err != nil {
		return f, err
	}
	if val := q.Get("color"); val != "" {
		f.Color = &val
	}
	if val := q.Get("size"); val != "" {
		f.Size = &val
	}
	if val := q.Get("material"); val != "" {
		f.Material = &val
	}
	if f.MinPrice, err = parseFloatParam(q, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parseFloatParam(q, "maxPrice"); err != nil {
		return f, err
	}
	if val := q.Get("onSale"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return f, fmt.Errorf("invalid onSale %q", val)
		}
		f.OnSale = &b
	}
	if f.AddedFrom, err = parseDateParam(q, "startDate"); err != nil {
		return f, err
	}
	if f.AddedTo, err = parseDateParam(q, "endDate"); err != nil {
		return f, err
	}
	return f, nil
}

func parseInt64Param(q url.Values, name string) (*int64, error) {
	val := q.Get(name)
	if val == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, val)
	}
	return &id, nil
}

func parseFloatParam(q url.Values, name string) (*float64, error) {
	val := q.Get(name)
	if val == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, val)
	}
	return &f, nil
}

func parseDateParam(q url.Values, name string) (*time.Time, error) {
	val := q.Get(name)
	if val == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", val)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q, want YYYY-MM-DD", name, val)
	}
	return &t, nil
}

// parseProductSort resolves sortBy/sortOrder plus the legacy single-token
// aliases (price_asc, price_desc, trending, relevance) onto the canonical
// sort vocabulary.
func parseProductSort(q url.Values) domain.ProductSort {
	sortBy := q.Get("sortBy")
	order := domain.SortOrder(q.Get("sortOrder"))
	if order != domain.SortAsc && order != domain.SortDesc {
		order = ""
	}

	switch sortBy {
	case "price":
		if order == "" {
			order = domain.SortAsc
		}
		return domain.ProductSort{Key: domain.SortByPrice, Order: order}
	case "popularity", "trending":
		if order == "" {
			order = domain.SortDesc
		}
		return domain.ProductSort{Key: domain.SortByPopularity, Order: order}
	case "newest":
		if order == "" {
			order = domain.SortDesc
		}
		return domain.ProductSort{Key: domain.SortByNewest, Order: order}
	case "price_asc":
		return domain.ProductSort{Key: domain.SortByPrice, Order: domain.SortAsc}
	case "price_desc":
		return domain.ProductSort{Key: domain.SortByPrice, Order: domain.SortDesc}
	case "relevance":
		// No relevance scoring exists; popularity is the documented
		// fallback.
		return domain.ProductSort{Key: domain.SortByPopularity, Order: domain.SortDesc}
	default:
		return domain.ProductSort{}
	}
}

// parseIntParam reads an optional integer parameter. Malformed values are
// rejected rather than silently coerced to the default.
func parseIntParam(q url.Values, name string, def int) (int, error) {
	val := q.Get(name)
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, val)
	}
	return n, nil
}

func parsePage(q url.Values) (domain.PageRequest, error) {
	page, err := parseIntParam(q, "page", 1)
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, err := parseIntParam(q, "pageSize", domain.DefaultPageSize)
	if err != nil {
		return domain.PageRequest{}, err
	}
	return domain.PageRequest{Page: page, PageSize: size}.Normalize(), nil
}

// pathID reads the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	return utils.ParseID(r.PathValue("id"))
}

// writeDomainError maps sentinel errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		utils.WriteError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		utils.WriteError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUnauthorized):
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		utils.WriteError(w, http.StatusForbidden, "forbidden")
	default:
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
