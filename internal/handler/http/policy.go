package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/traum0123-design/traum0123/internal/domain/policy"
	"github.com/traum0123-design/traum0123/internal/handler/http/response"
)

type PolicyHandler interface {
	GetResolved(w http.ResponseWriter, r *http.Request)
	GetSetting(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type PolicyHandlerImpl struct {
	policyService policy.PolicyService
}

func NewPolicyHandler(policyService policy.PolicyService) PolicyHandler {
	return &PolicyHandlerImpl{policyService: policyService}
}

// policyScope reads the route scope: company routes carry {companyID},
// the operator's global routes do not and address the nil-company rows.
func policyScope(r *http.Request) (companyID *string, year int, ok bool) {
	if id := chi.URLParam(r, "companyID"); id != "" {
		companyID = &id
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	return companyID, year, err == nil
}

// GetResolved returns the fully merged policy document effective for the
// year: defaults, year overlay and stored overrides combined.
func (h *PolicyHandlerImpl) GetResolved(w http.ResponseWriter, r *http.Request) {
	companyID, year, ok := policyScope(r)
	if !ok {
		response.BadRequest(w, "Year must be numeric", nil)
		return
	}

	doc, err := h.policyService.ResolveDocument(r.Context(), companyID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]any{"year": year, "policy": doc})
}

// GetSetting returns the stored override document only, without defaults.
func (h *PolicyHandlerImpl) GetSetting(w http.ResponseWriter, r *http.Request) {
	companyID, year, ok := policyScope(r)
	if !ok {
		response.BadRequest(w, "Year must be numeric", nil)
		return
	}

	resp, err := h.policyService.Get(r.Context(), companyID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *PolicyHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	companyID, year, ok := policyScope(r)
	if !ok {
		response.BadRequest(w, "Year must be numeric", nil)
		return
	}

	var req policy.UpsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.policyService.Upsert(r.Context(), companyID, year, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

func (h *PolicyHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	companyID, year, ok := policyScope(r)
	if !ok {
		response.BadRequest(w, "Year must be numeric", nil)
		return
	}

	settings, err := h.policyService.History(r.Context(), companyID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, settings)
}
