package withholding

import (
	"github.com/traum0123-design/traum0123/internal/pkg/validator"
)

type ImportRequest struct {
	Year  int    `json:"year"`
	Cells []Cell `json:"cells"`
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if len(r.Cells) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "cells",
			Message: "cells is required",
		})
	}
	for _, c := range r.Cells {
		if c.Dependents < 0 || c.Wage < 0 || c.Tax < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "cells",
				Message: "dependents, wage and tax must be non-negative",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ImportResponse struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type LookupResponse struct {
	Year       int   `json:"year"`
	Dependents int   `json:"dependents"`
	Wage       int64 `json:"wage"`
	Tax        int64 `json:"tax"`
	LocalTax   int64 `json:"local_tax"`
}
