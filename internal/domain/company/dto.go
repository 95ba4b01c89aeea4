package company

import (
	"time"

	"github.com/traum0123-design/traum0123/internal/pkg/validator"
)

type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCompanyRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.Slug) {
		errs = append(errs, validator.ValidationError{
			Field:   "slug",
			Message: "slug is required",
		})
	}
	if !validator.IsEmpty(r.Slug) && !validator.IsValidSlug(r.Slug) {
		errs = append(errs, validator.ValidationError{
			Field:   "slug",
			Message: "slug may only contain lowercase letters, digits and hyphens",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CreateCompanyResponse carries the one-time access code issued on creation.
// Only the bcrypt hash of the code is persisted.
type CreateCompanyResponse struct {
	Company    CompanyResponse `json:"company"`
	AccessCode string          `json:"access_code"`
}

type PortalLoginRequest struct {
	AccessCode string `json:"access_code"`
}

func (r *PortalLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AccessCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "access_code",
			Message: "access_code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PortalLoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
