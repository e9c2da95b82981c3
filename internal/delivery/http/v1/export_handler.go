package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"stylefeed-backend/internal/domain"
	"stylefeed-backend/internal/usecase"
	"stylefeed-backend/pkg/utils"
)

// ExportHandler serves the admin CSV downloads.
type ExportHandler struct {
	exportUC *usecase.ExportUsecase
}

func NewExportHandler(exportUC *usecase.ExportUsecase) *ExportHandler {
	return &ExportHandler{exportUC: exportUC}
}

func csvHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func (h *ExportHandler) Products(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r.URL.Query())
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	filename := fmt.Sprintf("products-%s.csv", time.Now().Format("2006-01-02"))
	csvHeaders(w, filename)
	if err := h.exportUC.ExportProducts(r.Context(), w, filter); err != nil {
		h.writeExportError(w, err)
		return
	}
}

func (h *ExportHandler) BrandSummary(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("brands-summary-%s.csv", time.Now().Format("2006-01-02"))
	csvHeaders(w, filename)
	if err := h.exportUC.ExportBrandSummary(r.Context(), w); err != nil {
		h.writeExportError(w, err)
		return
	}
}

func (h *ExportHandler) BrandProducts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid brand id")
		return
	}

	csvHeaders(w, fmt.Sprintf("brand-%d-products.csv", id))
	if err := h.exportUC.ExportBrandProducts(r.Context(), w, id); err != nil {
		h.writeExportError(w, err)
		return
	}
}

// writeExportError resets the CSV headers before answering with JSON. Zero
// matching rows is a 404, not an empty file.
func (h *ExportHandler) writeExportError(w http.ResponseWriter, err error) {
	w.Header().Del("Content-Disposition")
	if errors.Is(err, domain.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "no matching rows to export")
		return
	}
	writeDomainError(w, err)
}
