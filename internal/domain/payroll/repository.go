package payroll

import "context"

// SheetRepository defines data access for monthly pay sheets.
// All methods include companyID to prevent cross-company data access.
type SheetRepository interface {
	GetSheet(ctx context.Context, companyID string, year, month int) (MonthlySheet, error)
	UpsertRows(ctx context.Context, companyID string, year, month int, rows []Row) (MonthlySheet, error)
	SetClosed(ctx context.Context, companyID string, year, month int, closed bool) error
	ListMonths(ctx context.Context, companyID string) ([]MonthRef, error)
}
