package v1

import (
	"net/http"
	"strconv"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/internal/usecase"
	"stylefeed-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type ProductHandler struct {
	catalogUC    *usecase.CatalogUsecase
	engagementUC *usecase.EngagementUsecase
}

func NewProductHandler(catalogUC *usecase.CatalogUsecase, engagementUC *usecase.EngagementUsecase) *ProductHandler {
	return &ProductHandler{
		catalogUC:    catalogUC,
		engagementUC: engagementUC,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.catalogUC.ListProducts(r.Context(), filter, parseProductSort(q), pageReq)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.catalogUC.SearchProducts(r.Context(), q.Get("query"), filter,
		parseProductSort(q), pageReq)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) EditorsPick(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r.URL.Query(), "limit", 0)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.catalogUC.EditorsPick(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

// Trending serves two modes: isHomePage=true returns the flat top strip,
// otherwise a paginated listing with a fixed page size and the page clamped
// into range.
func (h *ProductHandler) Trending(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if isHome, _ := strconv.ParseBool(q.Get("isHomePage")); isHome {
		limit, err := parseIntParam(q, "limit", 0)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		items, err := h.catalogUC.HomeTrending(r.Context(), limit)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, items)
		return
	}

	pageNum, err := parseIntParam(q, "page", 1)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.catalogUC.TrendingPage(r.Context(), pageNum)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Click(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	redirectURL, err := h.engagementUC.TrackClick(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"redirectUrl": redirectURL})
}

func (h *ProductHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	limit, err := parseIntParam(r.URL.Query(), "limit", 0)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.catalogUC.Recommendations(r.Context(), id, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *ProductHandler) CheckLiked(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(domain.UserContextKey).(*domain.AuthClaims)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	liked, err := h.engagementUC.CheckLiked(r.Context(), claims.UserID, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"isLiked": liked})
}

func (h *ProductHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(domain.UserContextKey).(*domain.AuthClaims)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	result, err := h.engagementUC.ToggleLike(r.Context(), claims.UserID, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"isLiked":   result.Liked,
		"likeCount": result.LikeCount,
	})
}

func (h *ProductHandler) ListLiked(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(domain.UserContextKey).(*domain.AuthClaims)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.engagementUC.ListLiked(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

type productRequest struct {
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
	BrandID         *int64   `json:"brandId"`
	CategoryID      *int64   `json:"categoryId"`
	SubCategoryID   *int64   `json:"subCategoryId"`
}

func (req *productRequest) toDomain() *domain.Product {
	return &domain.Product{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		ImageURL:        req.ImageURL,
		ProductURL:      req.ProductURL,
		Color:           req.Color,
		Size:            req.Size,
		Material:        req.Material,
		IsEditorsPick:   req.IsEditorsPick,
		BrandID:         req.BrandID,
		CategoryID:      req.CategoryID,
		SubCategoryID:   req.SubCategoryID,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := req.toDomain()
	if err := h.catalogUC.CreateProduct(r.Context(), product); err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := req.toDomain()
	product.ID = id
	if err := h.catalogUC.UpdateProduct(r.Context(), product); err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
