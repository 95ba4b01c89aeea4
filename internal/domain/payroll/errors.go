package payroll

import "errors"

var (
	ErrSheetNotFound  = errors.New("pay sheet not found")
	ErrMonthClosed    = errors.New("pay sheet month is closed")
	ErrInvalidPeriod  = errors.New("invalid payroll period")
	ErrCompanyUnknown = errors.New("company not found for pay sheet")
)
