package export

import "context"

// LedgerService renders a company's monthly pay sheet as a salary-ledger
// spreadsheet.
type LedgerService interface {
	// BuildLedger returns the xlsx bytes and a suggested filename.
	BuildLedger(ctx context.Context, companyID string, year, month int) ([]byte, string, error)
}
