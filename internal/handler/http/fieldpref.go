package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/traum0123-design/traum0123/internal/domain/fieldpref"
	"github.com/traum0123-design/traum0123/internal/handler/http/response"
)

type FieldConfigHandler interface {
	GetConfig(w http.ResponseWriter, r *http.Request)
	UpsertPreference(w http.ResponseWriter, r *http.Request)
	CreateExtraField(w http.ResponseWriter, r *http.Request)
	DeleteExtraField(w http.ResponseWriter, r *http.Request)
}

type FieldConfigHandlerImpl struct {
	fieldService fieldpref.FieldConfigService
}

func NewFieldConfigHandler(fieldService fieldpref.FieldConfigService) FieldConfigHandler {
	return &FieldConfigHandlerImpl{fieldService: fieldService}
}

func (h *FieldConfigHandlerImpl) GetConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := h.fieldService.GetConfig(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *FieldConfigHandlerImpl) UpsertPreference(w http.ResponseWriter, r *http.Request) {
	var req fieldpref.UpsertPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.fieldService.UpsertPreference(r.Context(), chi.URLParam(r, "companyID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *FieldConfigHandlerImpl) CreateExtraField(w http.ResponseWriter, r *http.Request) {
	var req fieldpref.CreateExtraFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.fieldService.CreateExtraField(r.Context(), chi.URLParam(r, "companyID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Extra field created", resp)
}

func (h *FieldConfigHandlerImpl) DeleteExtraField(w http.ResponseWriter, r *http.Request) {
	err := h.fieldService.DeleteExtraField(r.Context(), chi.URLParam(r, "companyID"), chi.URLParam(r, "fieldID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Extra field deleted", nil)
}
