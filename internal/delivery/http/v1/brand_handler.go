package v1

import (
	"net/http"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/internal/usecase"
	"stylefeed-backend/pkg/utils"
)

type BrandHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewBrandHandler(catalogUC *usecase.CatalogUsecase) *BrandHandler {
	return &BrandHandler{catalogUC: catalogUC}
}

func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalogUC.ListBrands(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, brands)
}

func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid brand id")
		return
	}

	brand, err := h.catalogUC.GetBrand(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, brand)
}

func (h *BrandHandler) Products(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid brand id")
		return
	}
	q := r.URL.Query()
	filter, err := parseProductFilter(q)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	pageReq, err := parsePage(q)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.catalogUC.BrandProducts(r.Context(), id, filter,
		parseProductSort(q), pageReq)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *BrandHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r.URL.Query(), "limit", 0)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	brands, err := h.catalogUC.TrendingBrands(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, brands)
}

func (h *BrandHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := parsePage(q)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	brands, total, err := h.catalogUC.SearchBrands(r.Context(), q.Get("query"), page)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"totalItems":  total,
		"totalPages":  domain.TotalPages(total, page.PageSize),
		"currentPage": page.Page,
		"pageSize":    page.PageSize,
		"items":       brands,
	})
}
