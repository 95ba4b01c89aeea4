package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/traum0123-design/traum0123/internal/domain/export"
	"github.com/traum0123-design/traum0123/internal/handler/http/response"
)

type ExportHandler interface {
	DownloadLedger(w http.ResponseWriter, r *http.Request)
}

type ExportHandlerImpl struct {
	ledgerService export.LedgerService
}

func NewExportHandler(ledgerService export.LedgerService) ExportHandler {
	return &ExportHandlerImpl{ledgerService: ledgerService}
}

// DownloadLedger streams the month's salary ledger workbook.
func (h *ExportHandlerImpl) DownloadLedger(w http.ResponseWriter, r *http.Request) {
	year, errY := strconv.Atoi(chi.URLParam(r, "year"))
	month, errM := strconv.Atoi(chi.URLParam(r, "month"))
	if errY != nil || errM != nil {
		response.BadRequest(w, "Year and month must be numeric", nil)
		return
	}

	data, filename, err := h.ledgerService.BuildLedger(r.Context(), chi.URLParam(r, "companyID"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
