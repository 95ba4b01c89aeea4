package withholding

import "context"

type WithholdingService interface {
	Import(ctx context.Context, req ImportRequest) (ImportResponse, error)
	Lookup(ctx context.Context, year, dependents int, wage int64) (LookupResponse, error)
	Years(ctx context.Context) ([]YearCount, error)
}
