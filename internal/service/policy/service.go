package policy

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/traum0123-design/traum0123/internal/config"
	"github.com/traum0123-design/traum0123/internal/domain/policy"
)

// yearOverlays carries statutory parameters that change on a fixed schedule,
// keyed by tax year. Each entry shallow-merges into the named section of the
// defaults, so an overlay that sets only min_base/max_base keeps the rate.
var yearOverlays = map[int]policy.Document{
	2023: {
		"nps": {"min_base": int64(370_000), "max_base": int64(5_900_000)},
	},
	2024: {
		"nps": {"min_base": int64(390_000), "max_base": int64(6_170_000)},
	},
	2025: {
		"nps": {"min_base": int64(400_000), "max_base": int64(6_370_000)},
	},
}

type PolicyServiceImpl struct {
	repo     policy.Repository
	defaults policy.Document
}

func NewPolicyService(repo policy.Repository, insurance config.InsuranceDefaults) policy.PolicyService {
	return &PolicyServiceImpl{
		repo:     repo,
		defaults: defaultDocument(insurance),
	}
}

// defaultDocument builds the lowest-precedence layer from the statutory
// contribution defaults loaded at startup.
func defaultDocument(ins config.InsuranceDefaults) policy.Document {
	return policy.Document{
		"nps": {
			"rate":     ins.NPSRate,
			"round_to": ins.NPSRoundTo,
			"rounding": ins.NPSRounding,
		},
		"nhis": {
			"rate":         ins.NHISRate,
			"round_to":     ins.NHISRoundTo,
			"rounding":     ins.NHISRounding,
			"ltc_rate":     ins.LTCRate,
			"ltc_round_to": ins.LTCRoundTo,
			"ltc_rounding": ins.LTCRounding,
		},
		"ei": {
			"rate":     ins.EIRate,
			"round_to": ins.EIRoundTo,
			"rounding": ins.EIRounding,
		},
		"local_tax": {
			"rate":     0.1,
			"round_to": int64(10),
			"rounding": "round",
		},
		"proration": {
			"exclude_bonus": true,
		},
	}
}

func (s *PolicyServiceImpl) Resolve(ctx context.Context, companyID *string, year int) (policy.Effective, error) {
	doc, err := s.ResolveDocument(ctx, companyID, year)
	if err != nil {
		return policy.Effective{}, err
	}
	return policy.FromDocument(doc), nil
}

func (s *PolicyServiceImpl) ResolveDocument(ctx context.Context, companyID *string, year int) (policy.Document, error) {
	doc := s.defaults.Clone()
	if overlay, ok := yearOverlays[year]; ok {
		doc.Merge(overlay)
	}

	setting, err := s.storedSetting(ctx, companyID, year)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			return doc, nil
		}
		return nil, err
	}

	// A malformed stored document never aborts resolution: the layers merged
	// so far stand and the override is skipped.
	var stored policy.Document
	if err := json.Unmarshal([]byte(setting.PolicyJSON), &stored); err == nil {
		doc.Merge(stored)
	}
	return doc, nil
}

// storedSetting prefers the exact (companyID, year) row and falls back to the
// global row for the year.
func (s *PolicyServiceImpl) storedSetting(ctx context.Context, companyID *string, year int) (policy.Setting, error) {
	if companyID != nil {
		setting, err := s.repo.Get(ctx, companyID, year)
		if err == nil {
			return setting, nil
		}
		if !errors.Is(err, policy.ErrPolicyNotFound) {
			return policy.Setting{}, err
		}
	}
	return s.repo.Get(ctx, nil, year)
}

func (s *PolicyServiceImpl) Get(ctx context.Context, companyID *string, year int) (policy.SettingResponse, error) {
	setting, err := s.repo.Get(ctx, companyID, year)
	if err != nil {
		return policy.SettingResponse{}, err
	}
	return toSettingResponse(setting), nil
}

func (s *PolicyServiceImpl) Upsert(ctx context.Context, companyID *string, year int, req policy.UpsertSettingRequest) (policy.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.SettingResponse{}, err
	}

	setting := policy.Setting{
		CompanyID:  companyID,
		Year:       year,
		PolicyJSON: string(req.Policy),
	}
	saved, err := s.repo.Upsert(ctx, setting)
	if err != nil {
		return policy.SettingResponse{}, err
	}
	return toSettingResponse(saved), nil
}

func (s *PolicyServiceImpl) History(ctx context.Context, companyID *string, year int) ([]policy.SettingResponse, error) {
	settings, err := s.repo.History(ctx, companyID, year)
	if err != nil {
		return nil, err
	}

	result := make([]policy.SettingResponse, 0, len(settings))
	for _, setting := range settings {
		result = append(result, toSettingResponse(setting))
	}
	return result, nil
}

func toSettingResponse(setting policy.Setting) policy.SettingResponse {
	resp := policy.SettingResponse{
		CompanyID: setting.CompanyID,
		Year:      setting.Year,
		Policy:    json.RawMessage(setting.PolicyJSON),
	}
	if !setting.UpdatedAt.IsZero() {
		resp.UpdatedAt = setting.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
