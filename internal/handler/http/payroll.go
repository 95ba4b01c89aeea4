package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/traum0123-design/traum0123/internal/domain/payroll"
	"github.com/traum0123-design/traum0123/internal/handler/http/response"
)

type PayrollHandler interface {
	GetSheet(w http.ResponseWriter, r *http.Request)
	SaveSheet(w http.ResponseWriter, r *http.Request)
	SetClosed(w http.ResponseWriter, r *http.Request)
	ListMonths(w http.ResponseWriter, r *http.Request)
	ComputeRow(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// periodParams parses the {year}/{month} route segments. Range checks live
// in the service; this only rejects non-numeric segments.
func periodParams(r *http.Request) (year, month int, ok bool) {
	year, errY := strconv.Atoi(chi.URLParam(r, "year"))
	month, errM := strconv.Atoi(chi.URLParam(r, "month"))
	return year, month, errY == nil && errM == nil
}

func (h *PayrollHandlerImpl) GetSheet(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(r)
	if !ok {
		response.BadRequest(w, "Year and month must be numeric", nil)
		return
	}

	resp, err := h.payrollService.GetSheet(r.Context(), chi.URLParam(r, "companyID"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) SaveSheet(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(r)
	if !ok {
		response.BadRequest(w, "Year and month must be numeric", nil)
		return
	}

	var req payroll.SaveSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payrollService.SaveSheet(r.Context(), chi.URLParam(r, "companyID"), year, month, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *PayrollHandlerImpl) SetClosed(w http.ResponseWriter, r *http.Request) {
	year, month, ok := periodParams(r)
	if !ok {
		response.BadRequest(w, "Year and month must be numeric", nil)
		return
	}

	var req payroll.SetClosedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.payrollService.SetClosed(r.Context(), chi.URLParam(r, "companyID"), year, month, req.Closed); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Month state updated", payroll.MonthRef{Year: year, Month: month, IsClosed: req.Closed})
}

func (h *PayrollHandlerImpl) ListMonths(w http.ResponseWriter, r *http.Request) {
	refs, err := h.payrollService.ListMonths(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, refs)
}

func (h *PayrollHandlerImpl) ComputeRow(w http.ResponseWriter, r *http.Request) {
	var req payroll.ComputeRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.payrollService.ComputeRow(r.Context(), chi.URLParam(r, "companyID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}
