package v1

import (
	"errors"
	"net/http"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/internal/usecase"
	"stylefeed-backend/pkg/utils"

	"github.com/goccy/go-json"
)

// ScraperHandler drives the Shopify import workflow: scrape a store,
// review the payload client-side, then save it into the catalog.
type ScraperHandler struct {
	scraperUC *usecase.ScraperUsecase
}

func NewScraperHandler(scraperUC *usecase.ScraperUsecase) *ScraperHandler {
	return &ScraperHandler{scraperUC: scraperUC}
}

func (h *ScraperHandler) ScrapeDirect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StoreURL string `json:"storeUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	products, err := h.scraperUC.ScrapeDirect(r.Context(), req.StoreURL)
	if err != nil {
		writeScrapeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"count":    len(products),
		"products": products,
	})
}

func (h *ScraperHandler) ScrapeAdminAPI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StoreURL    string `json:"storeUrl"`
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	products, err := h.scraperUC.ScrapeAdminAPI(r.Context(), req.StoreURL, req.AccessToken)
	if err != nil {
		writeScrapeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"count":    len(products),
		"products": products,
	})
}

func (h *ScraperHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Products []domain.ScrapedProduct `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.scraperUC.Save(r.Context(), req.Products)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, report)
}

// writeScrapeError separates bad requests from upstream store failures.
func writeScrapeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteError(w, http.StatusBadGateway, err.Error())
}
