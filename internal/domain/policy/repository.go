package policy

import "context"

// Repository stores policy override documents. Get returns the latest row for
// the exact (companyID, year) pair; companyID nil addresses the global row.
type Repository interface {
	Get(ctx context.Context, companyID *string, year int) (Setting, error)
	Upsert(ctx context.Context, setting Setting) (Setting, error)
	History(ctx context.Context, companyID *string, year int) ([]Setting, error)
}
