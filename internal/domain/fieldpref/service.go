package fieldpref

import "context"

type FieldConfigService interface {
	GetConfig(ctx context.Context, companyID string) (ConfigResponse, error)
	UpsertPreference(ctx context.Context, companyID string, req UpsertPreferenceRequest) (PreferenceResponse, error)
	CreateExtraField(ctx context.Context, companyID string, req CreateExtraFieldRequest) (ExtraFieldResponse, error)
	DeleteExtraField(ctx context.Context, companyID string, id string) error
}
