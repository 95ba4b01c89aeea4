package withholding

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/traum0123-design/traum0123/internal/domain/policy"
	"github.com/traum0123-design/traum0123/internal/domain/withholding"
	"github.com/traum0123-design/traum0123/internal/service/calculation"
)

type WithholdingServiceImpl struct {
	repo      withholding.Repository
	policySvc policy.PolicyService
}

func NewWithholdingService(repo withholding.Repository, policySvc policy.PolicyService) withholding.WithholdingService {
	return &WithholdingServiceImpl{
		repo:      repo,
		policySvc: policySvc,
	}
}

// Import replaces the whole bracket table of one year. The government
// publishes the table as a unit, so partial updates are never meaningful.
func (s *WithholdingServiceImpl) Import(ctx context.Context, req withholding.ImportRequest) (withholding.ImportResponse, error) {
	if err := req.Validate(); err != nil {
		return withholding.ImportResponse{}, err
	}

	cells := make([]withholding.Cell, 0, len(req.Cells))
	for _, c := range req.Cells {
		c.Year = req.Year
		cells = append(cells, c)
	}

	count, err := s.repo.ReplaceYear(ctx, req.Year, cells)
	if err != nil {
		return withholding.ImportResponse{}, err
	}
	return withholding.ImportResponse{Year: req.Year, Count: count}, nil
}

func (s *WithholdingServiceImpl) Lookup(ctx context.Context, year, dependents int, wage int64) (withholding.LookupResponse, error) {
	cells, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return withholding.LookupResponse{}, err
	}
	tax := calculation.NewBracketTable(cells).Lookup(year, dependents, wage)

	pol, err := s.policySvc.Resolve(ctx, nil, year)
	if err != nil {
		return withholding.LookupResponse{}, err
	}
	localTax := calculation.Round(
		decimal.NewFromInt(tax).Mul(pol.LocalTax.Rate),
		pol.LocalTax.RoundTo,
		pol.LocalTax.Rounding,
	)

	return withholding.LookupResponse{
		Year:       year,
		Dependents: dependents,
		Wage:       wage,
		Tax:        tax,
		LocalTax:   localTax,
	}, nil
}

func (s *WithholdingServiceImpl) Years(ctx context.Context) ([]withholding.YearCount, error) {
	return s.repo.Years(ctx)
}
