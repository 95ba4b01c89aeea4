package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/traum0123-design/traum0123/internal/domain/withholding"
	"github.com/traum0123-design/traum0123/internal/handler/http/response"
)

type WithholdingHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	Lookup(w http.ResponseWriter, r *http.Request)
	Years(w http.ResponseWriter, r *http.Request)
}

type WithholdingHandlerImpl struct {
	withholdingService withholding.WithholdingService
}

func NewWithholdingHandler(withholdingService withholding.WithholdingService) WithholdingHandler {
	return &WithholdingHandlerImpl{withholdingService: withholdingService}
}

func (h *WithholdingHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	var req withholding.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.withholdingService.Import(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Withholding table replaced", resp)
}

func (h *WithholdingHandlerImpl) Lookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	year, errY := strconv.Atoi(query.Get("year"))
	dependents, errD := strconv.Atoi(query.Get("dependents"))
	wage, errW := strconv.ParseInt(query.Get("wage"), 10, 64)
	if errY != nil || errD != nil || errW != nil {
		response.BadRequest(w, "year, dependents and wage must be numeric", nil)
		return
	}

	resp, err := h.withholdingService.Lookup(r.Context(), year, dependents, wage)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *WithholdingHandlerImpl) Years(w http.ResponseWriter, r *http.Request) {
	years, err := h.withholdingService.Years(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, years)
}
