package company

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/traum0123-design/traum0123/internal/domain/company"
	"github.com/traum0123-design/traum0123/internal/pkg/token"
)

type CompanyServiceImpl struct {
	companyRepo company.CompanyRepository
	tokenSvc    token.Service
}

func NewCompanyService(companyRepo company.CompanyRepository, tokenSvc token.Service) company.CompanyService {
	return &CompanyServiceImpl{
		companyRepo: companyRepo,
		tokenSvc:    tokenSvc,
	}
}

func (s *CompanyServiceImpl) List(ctx context.Context) ([]company.Company, error) {
	return s.companyRepo.List(ctx)
}

func (s *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CreateCompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CreateCompanyResponse{}, err
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	exists, err := s.companyRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return company.CreateCompanyResponse{}, err
	}
	if exists {
		return company.CreateCompanyResponse{}, company.ErrCompanySlugExists
	}

	code, hash, err := newAccessCode()
	if err != nil {
		return company.CreateCompanyResponse{}, err
	}

	created, err := s.companyRepo.Create(ctx, company.Company{
		Name:       strings.TrimSpace(req.Name),
		Slug:       slug,
		AccessHash: hash,
	})
	if err != nil {
		return company.CreateCompanyResponse{}, err
	}

	return company.CreateCompanyResponse{
		Company: company.CompanyResponse{
			ID:        created.ID,
			Name:      created.Name,
			Slug:      created.Slug,
			CreatedAt: created.CreatedAt,
		},
		// Shown once at creation time; only the hash is stored.
		AccessCode: code,
	}, nil
}

func (s *CompanyServiceImpl) GetByID(ctx context.Context, id string) (company.CompanyResponse, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
	}, nil
}

func (s *CompanyServiceImpl) GetBySlug(ctx context.Context, slug string) (company.Company, error) {
	return s.companyRepo.GetBySlug(ctx, slug)
}

// ResetAccessCode rotates a company's access code and returns the new code.
// The previous code stops working immediately.
func (s *CompanyServiceImpl) ResetAccessCode(ctx context.Context, id string) (string, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	code, hash, err := newAccessCode()
	if err != nil {
		return "", err
	}
	if err := s.companyRepo.UpdateAccessHash(ctx, c.ID, hash); err != nil {
		return "", err
	}
	return code, nil
}

func (s *CompanyServiceImpl) PortalLogin(ctx context.Context, slug string, req company.PortalLoginRequest) (company.PortalLoginResponse, error) {
	if err := req.Validate(); err != nil {
		return company.PortalLoginResponse{}, err
	}

	c, err := s.companyRepo.GetBySlug(ctx, slug)
	if err != nil {
		return company.PortalLoginResponse{}, err
	}

	code := strings.TrimSpace(req.AccessCode)
	if err := bcrypt.CompareHashAndPassword([]byte(c.AccessHash), []byte(code)); err != nil {
		return company.PortalLoginResponse{}, company.ErrInvalidAccessCode
	}

	tokenString, expiresAt, err := s.tokenSvc.GeneratePortalToken(c.ID, c.Slug)
	if err != nil {
		return company.PortalLoginResponse{}, fmt.Errorf("failed to issue portal token: %w", err)
	}

	return company.PortalLoginResponse{Token: tokenString, ExpiresAt: expiresAt}, nil
}

func (s *CompanyServiceImpl) Delete(ctx context.Context, id string) error {
	return s.companyRepo.Delete(ctx, id)
}

// newAccessCode mints a short hex access code and its bcrypt hash.
func newAccessCode() (code string, hash string, err error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate access code: %w", err)
	}
	code = hex.EncodeToString(buf)

	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash access code: %w", err)
	}
	return code, string(hashed), nil
}
