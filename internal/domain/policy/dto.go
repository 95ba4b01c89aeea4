package policy

import (
	"encoding/json"

	"github.com/traum0123-design/traum0123/internal/pkg/validator"
)

type SettingResponse struct {
	CompanyID *string         `json:"company_id,omitempty"`
	Year      int             `json:"year"`
	Policy    json.RawMessage `json:"policy"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}

type UpsertSettingRequest struct {
	Policy json.RawMessage `json:"policy"`
}

// Validate rejects documents that are not a JSON object of sections. The
// calculation core stays tolerant of malformed stored documents; this check
// only guards the write path.
func (r *UpsertSettingRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Policy) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "policy",
			Message: "policy is required",
		})
	} else {
		var doc Document
		if err := json.Unmarshal(r.Policy, &doc); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "policy",
				Message: "policy must be a JSON object of sections",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
