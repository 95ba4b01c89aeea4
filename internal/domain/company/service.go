package company

import (
	"context"
)

type CompanyService interface {
	List(ctx context.Context) ([]Company, error)
	Create(ctx context.Context, req CreateCompanyRequest) (CreateCompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	GetBySlug(ctx context.Context, slug string) (Company, error)
	ResetAccessCode(ctx context.Context, id string) (string, error)
	PortalLogin(ctx context.Context, slug string, req PortalLoginRequest) (PortalLoginResponse, error)
	Delete(ctx context.Context, id string) error
}
