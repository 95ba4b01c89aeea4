package policy

import "context"

// PolicyService resolves effective policies and manages stored overrides.
type PolicyService interface {
	// Resolve merges defaults, the year overlay and the stored override into
	// the effective policy for one calculation.
	Resolve(ctx context.Context, companyID *string, year int) (Effective, error)
	// ResolveDocument returns the merged document form, for admin inspection.
	ResolveDocument(ctx context.Context, companyID *string, year int) (Document, error)

	Get(ctx context.Context, companyID *string, year int) (SettingResponse, error)
	Upsert(ctx context.Context, companyID *string, year int, req UpsertSettingRequest) (SettingResponse, error)
	History(ctx context.Context, companyID *string, year int) ([]SettingResponse, error)
}
