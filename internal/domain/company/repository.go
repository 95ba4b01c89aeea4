package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	GetBySlug(ctx context.Context, slug string) (Company, error)
	List(ctx context.Context) ([]Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	UpdateAccessHash(ctx context.Context, id string, accessHash string) error
	Delete(ctx context.Context, id string) error
}
