package payroll

import (
	"time"

	"github.com/traum0123-design/traum0123/internal/pkg/validator"
)

type SheetResponse struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Rows      []Row     `json:"rows"`
	IsClosed  bool      `json:"is_closed"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SaveSheetRequest struct {
	Rows []Row `json:"rows"`
}

func (r *SaveSheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Rows == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "rows is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ComputeRowRequest asks for a deduction preview of a single row without
// persisting anything.
type ComputeRowRequest struct {
	Row  Row `json:"row"`
	Year int `json:"year"`
}

func (r *ComputeRowRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Row == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "row",
			Message: "row is required",
		})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComputeRowResponse struct {
	Amounts  Deductions     `json:"amounts"`
	Metadata DeductionTrace `json:"metadata"`
}

type SetClosedRequest struct {
	Closed bool `json:"closed"`
}
