package fieldpref

import "context"

type PreferenceRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]Preference, error)
	Upsert(ctx context.Context, pref Preference) (Preference, error)
}

type ExtraFieldRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]ExtraField, error)
	Create(ctx context.Context, field ExtraField) (ExtraField, error)
	ExistsByLabel(ctx context.Context, companyID, label string) (bool, error)
	Delete(ctx context.Context, id string, companyID string) error
}
