package v1

import (
	"net/http"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/internal/usecase"
	"stylefeed-backend/pkg/utils"
)

type StatsHandler struct {
	statsUC *usecase.StatsUsecase
}

func NewStatsHandler(statsUC *usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{statsUC: statsUC}
}

func (h *StatsHandler) parseAttributeFilter(r *http.Request) (domain.AttributeFilter, error) {
	var f domain.AttributeFilter
	q := r.URL.Query()
	if val := q.Get("gender"); val != "" {
		g, ok := domain.ParseGender(val)
		if !ok {
			return f, domain.ErrInvalidInput
		}
		f.Gender = &g
	}
	var err error
	f.CategoryID, err = parseInt64Param(q, "categoryId")
	return f, err
}

func (h *StatsHandler) TrendingCategories(w http.ResponseWriter, r *http.Request) {
	var gender *domain.Gender
	if val := r.URL.Query().Get("gender"); val != "" {
		g, ok := domain.ParseGender(val)
		if !ok {
			utils.WriteError(w, http.StatusBadRequest, "invalid gender")
			return
		}
		gender = &g
	}

	limit, err := parseIntParam(r.URL.Query(), "limit", 0)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	trends, err := h.statsUC.TrendingCategories(r.Context(), gender, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, trends)
}

func (h *StatsHandler) TrendingProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r.URL.Query(), "limit", 0)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	items, err := h.statsUC.TrendingProducts(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *StatsHandler) TrendingColors(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseAttributeFilter(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid filter parameters")
		return
	}

	limit, err := parseIntParam(r.URL.Query(), "limit", 0)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	trends, err := h.statsUC.TrendingColors(r.Context(), filter, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, trends)
}

func (h *StatsHandler) TrendingSizes(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseAttributeFilter(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid filter parameters")
		return
	}

	limit, err := parseIntParam(r.URL.Query(), "limit", 0)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	trends, err := h.statsUC.TrendingSizes(r.Context(), filter, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, trends)
}

func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.statsUC.Summary(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}
