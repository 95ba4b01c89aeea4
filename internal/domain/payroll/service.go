package payroll

import "context"

type PayrollService interface {
	GetSheet(ctx context.Context, companyID string, year, month int) (SheetResponse, error)
	SaveSheet(ctx context.Context, companyID string, year, month int, req SaveSheetRequest) (SheetResponse, error)
	SetClosed(ctx context.Context, companyID string, year, month int, closed bool) error
	ListMonths(ctx context.Context, companyID string) ([]MonthRef, error)
	ComputeRow(ctx context.Context, companyID string, req ComputeRowRequest) (ComputeRowResponse, error)
}
