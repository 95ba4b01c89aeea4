package response

import (
	"errors"
	"net/http"

	"github.com/traum0123-design/traum0123/internal/domain/company"
	"github.com/traum0123-design/traum0123/internal/domain/fieldpref"
	"github.com/traum0123-design/traum0123/internal/domain/payroll"
	"github.com/traum0123-design/traum0123/internal/domain/policy"
	"github.com/traum0123-design/traum0123/internal/domain/withholding"
	"github.com/traum0123-design/traum0123/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanySlugExists):
		Conflict(w, "Company slug already exists")
	case errors.Is(err, company.ErrInvalidAccessCode):
		Unauthorized(w, "Invalid access code")
	case errors.Is(err, company.ErrInvalidCompanySlugFormat):
		BadRequest(w, "Slug may only contain lowercase letters, digits and hyphens", nil)

	// Pay sheet domain errors
	case errors.Is(err, payroll.ErrSheetNotFound):
		NotFound(w, "Pay sheet not found")
	case errors.Is(err, payroll.ErrMonthClosed):
		Conflict(w, "Pay sheet month is closed")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Field configuration errors
	case errors.Is(err, fieldpref.ErrExtraFieldNotFound):
		NotFound(w, "Extra field not found")
	case errors.Is(err, fieldpref.ErrExtraFieldLabelExists):
		Conflict(w, "Extra field label already exists")
	case errors.Is(err, fieldpref.ErrInvalidFieldType):
		BadRequest(w, "Invalid field type", nil)
	case errors.Is(err, fieldpref.ErrInvalidGroup):
		BadRequest(w, "Invalid field group", nil)

	// Policy errors
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Policy setting not found")
	case errors.Is(err, policy.ErrInvalidPolicyDoc):
		BadRequest(w, "Policy document is not valid JSON", nil)

	// Withholding table errors
	case errors.Is(err, withholding.ErrNoCells):
		BadRequest(w, "No withholding cells supplied", nil)
	case errors.Is(err, withholding.ErrInvalidCell):
		BadRequest(w, "Withholding cell has invalid values", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
