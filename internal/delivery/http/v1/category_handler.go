package v1

import (
	"net/http"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/internal/usecase"
	"stylefeed-backend/pkg/utils"
)

type CategoryHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCategoryHandler(catalogUC *usecase.CatalogUsecase) *CategoryHandler {
	return &CategoryHandler{catalogUC: catalogUC}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var gender *domain.Gender
	if val := r.URL.Query().Get("gender"); val != "" {
		g, ok := domain.ParseGender(val)
		if !ok {
			utils.WriteError(w, http.StatusBadRequest, "invalid gender")
			return
		}
		gender = &g
	}

	categories, err := h.catalogUC.ListCategories(r.Context(), gender)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.catalogUC.GetCategory(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) SubCategories(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	subs, err := h.catalogUC.CategorySubCategories(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, subs)
}

func (h *CategoryHandler) ListSubCategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.catalogUC.ListSubCategories(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, subs)
}
