package fieldpref

import (
	"context"
	"strings"

	"github.com/traum0123-design/traum0123/internal/domain/fieldpref"
	"github.com/traum0123-design/traum0123/internal/domain/payroll"
)

type FieldConfigServiceImpl struct {
	prefRepo  fieldpref.PreferenceRepository
	extraRepo fieldpref.ExtraFieldRepository
}

func NewFieldConfigService(
	prefRepo fieldpref.PreferenceRepository,
	extraRepo fieldpref.ExtraFieldRepository,
) fieldpref.FieldConfigService {
	return &FieldConfigServiceImpl{
		prefRepo:  prefRepo,
		extraRepo: extraRepo,
	}
}

func (s *FieldConfigServiceImpl) GetConfig(ctx context.Context, companyID string) (fieldpref.ConfigResponse, error) {
	prefs, err := s.prefRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return fieldpref.ConfigResponse{}, err
	}
	extras, err := s.extraRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return fieldpref.ConfigResponse{}, err
	}

	resp := fieldpref.ConfigResponse{
		Columns:     fieldpref.DefaultColumns(),
		ExtraFields: make([]fieldpref.ExtraFieldResponse, 0, len(extras)),
		Preferences: make([]fieldpref.PreferenceResponse, 0, len(prefs)),
	}
	for _, ef := range extras {
		resp.Columns = append(resp.Columns, fieldpref.Column{Name: ef.Name, Label: ef.Label, Type: ef.Type})
		resp.ExtraFields = append(resp.ExtraFields, toExtraFieldResponse(ef))
	}
	for _, pref := range prefs {
		resp.Preferences = append(resp.Preferences, toPreferenceResponse(pref))
	}
	return resp, nil
}

// UpsertPreference patches a single field's preference. Absent request keys
// keep their stored values so the UI can submit sparse updates.
func (s *FieldConfigServiceImpl) UpsertPreference(ctx context.Context, companyID string, req fieldpref.UpsertPreferenceRequest) (fieldpref.PreferenceResponse, error) {
	if err := req.Validate(); err != nil {
		return fieldpref.PreferenceResponse{}, err
	}

	current := fieldpref.Preference{CompanyID: companyID, Field: req.Field}
	existing, err := s.prefRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return fieldpref.PreferenceResponse{}, err
	}
	found := false
	for _, pref := range existing {
		if pref.Field == req.Field {
			current = pref
			found = true
			break
		}
	}
	if !found {
		// New preferences prorate by default; one-off bonus payments do not.
		current.Prorate = !payroll.IsBonusField(req.Field)
	}

	if req.Group != nil {
		current.Group = *req.Group
	}
	if req.Alias != nil {
		current.Alias = strings.TrimSpace(*req.Alias)
	}
	if req.ExemptEnabled != nil {
		current.ExemptEnabled = *req.ExemptEnabled
	}
	if req.ExemptLimit != nil {
		current.ExemptLimit = *req.ExemptLimit
	}
	if req.InsNHIS != nil {
		current.InsNHIS = *req.InsNHIS
	}
	if req.InsEI != nil {
		current.InsEI = *req.InsEI
	}
	if req.Prorate != nil {
		current.Prorate = *req.Prorate
	}

	saved, err := s.prefRepo.Upsert(ctx, current)
	if err != nil {
		return fieldpref.PreferenceResponse{}, err
	}
	return toPreferenceResponse(saved), nil
}

func (s *FieldConfigServiceImpl) CreateExtraField(ctx context.Context, companyID string, req fieldpref.CreateExtraFieldRequest) (fieldpref.ExtraFieldResponse, error) {
	if err := req.Validate(); err != nil {
		return fieldpref.ExtraFieldResponse{}, err
	}

	label := strings.TrimSpace(req.Label)
	exists, err := s.extraRepo.ExistsByLabel(ctx, companyID, label)
	if err != nil {
		return fieldpref.ExtraFieldResponse{}, err
	}
	if exists {
		return fieldpref.ExtraFieldResponse{}, fieldpref.ErrExtraFieldLabelExists
	}
	for _, col := range fieldpref.DefaultColumns() {
		if col.Name == label || col.Label == label {
			return fieldpref.ExtraFieldResponse{}, fieldpref.ErrExtraFieldLabelExists
		}
	}

	fieldType := req.Type
	if fieldType == "" {
		fieldType = fieldpref.FieldTypeNumber
	}

	existing, err := s.extraRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return fieldpref.ExtraFieldResponse{}, err
	}

	created, err := s.extraRepo.Create(ctx, fieldpref.ExtraField{
		CompanyID: companyID,
		Name:      label,
		Label:     label,
		Type:      fieldType,
		Position:  len(existing),
	})
	if err != nil {
		return fieldpref.ExtraFieldResponse{}, err
	}
	return toExtraFieldResponse(created), nil
}

func (s *FieldConfigServiceImpl) DeleteExtraField(ctx context.Context, companyID string, id string) error {
	return s.extraRepo.Delete(ctx, id, companyID)
}

func toPreferenceResponse(pref fieldpref.Preference) fieldpref.PreferenceResponse {
	return fieldpref.PreferenceResponse{
		Field:         pref.Field,
		Group:         pref.Group,
		Alias:         pref.Alias,
		ExemptEnabled: pref.ExemptEnabled,
		ExemptLimit:   pref.ExemptLimit,
		InsNHIS:       pref.InsNHIS,
		InsEI:         pref.InsEI,
		Prorate:       pref.Prorate,
	}
}

func toExtraFieldResponse(ef fieldpref.ExtraField) fieldpref.ExtraFieldResponse {
	return fieldpref.ExtraFieldResponse{
		ID:       ef.ID,
		Name:     ef.Name,
		Label:    ef.Label,
		Type:     ef.Type,
		Position: ef.Position,
	}
}
