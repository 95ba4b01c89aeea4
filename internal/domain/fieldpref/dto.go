package fieldpref

import (
	"github.com/traum0123-design/traum0123/internal/pkg/validator"
)

type PreferenceResponse struct {
	Field         string `json:"field"`
	Group         Group  `json:"group"`
	Alias         string `json:"alias,omitempty"`
	ExemptEnabled bool   `json:"exempt_enabled"`
	ExemptLimit   int64  `json:"exempt_limit"`
	InsNHIS       bool   `json:"ins_nhis"`
	InsEI         bool   `json:"ins_ei"`
	Prorate       bool   `json:"prorate"`
}

type ExtraFieldResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Position int       `json:"position"`
}

// ConfigResponse is the full field configuration of a company: the declared
// columns plus every stored preference.
type ConfigResponse struct {
	Columns     []Column             `json:"columns"`
	ExtraFields []ExtraFieldResponse `json:"extra_fields"`
	Preferences []PreferenceResponse `json:"preferences"`
}

type UpsertPreferenceRequest struct {
	Field         string  `json:"field"`
	Group         *Group  `json:"group,omitempty"`
	Alias         *string `json:"alias,omitempty"`
	ExemptEnabled *bool   `json:"exempt_enabled,omitempty"`
	ExemptLimit   *int64  `json:"exempt_limit,omitempty"`
	InsNHIS       *bool   `json:"ins_nhis,omitempty"`
	InsEI         *bool   `json:"ins_ei,omitempty"`
	Prorate       *bool   `json:"prorate,omitempty"`
}

func (r *UpsertPreferenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Field) {
		errs = append(errs, validator.ValidationError{
			Field:   "field",
			Message: "field is required",
		})
	}
	if r.Group != nil {
		switch *r.Group {
		case GroupEarn, GroupDeduct, GroupNone:
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "group",
				Message: "group must be one of earn, deduct, none",
			})
		}
	}
	if r.ExemptLimit != nil && *r.ExemptLimit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "exempt_limit",
			Message: "exempt_limit must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateExtraFieldRequest struct {
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

func (r *CreateExtraFieldRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{
			Field:   "label",
			Message: "label is required",
		})
	}
	switch r.Type {
	case FieldTypeNumber, FieldTypeDate, FieldTypeText, "":
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of number, date, text",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
