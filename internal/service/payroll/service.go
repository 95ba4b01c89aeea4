package payroll

import (
	"context"
	"errors"

	"github.com/traum0123-design/traum0123/internal/config"
	"github.com/traum0123-design/traum0123/internal/domain/fieldpref"
	"github.com/traum0123-design/traum0123/internal/domain/payroll"
	"github.com/traum0123-design/traum0123/internal/domain/policy"
	"github.com/traum0123-design/traum0123/internal/domain/withholding"
	"github.com/traum0123-design/traum0123/internal/pkg/validator"
	"github.com/traum0123-design/traum0123/internal/service/calculation"
)

type PayrollServiceImpl struct {
	sheetRepo       payroll.SheetRepository
	prefRepo        fieldpref.PreferenceRepository
	extraRepo       fieldpref.ExtraFieldRepository
	withholdingRepo withholding.Repository
	policySvc       policy.PolicyService
	insurance       config.InsuranceDefaults
}

func NewPayrollService(
	sheetRepo payroll.SheetRepository,
	prefRepo fieldpref.PreferenceRepository,
	extraRepo fieldpref.ExtraFieldRepository,
	withholdingRepo withholding.Repository,
	policySvc policy.PolicyService,
	insurance config.InsuranceDefaults,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		sheetRepo:       sheetRepo,
		prefRepo:        prefRepo,
		extraRepo:       extraRepo,
		withholdingRepo: withholdingRepo,
		policySvc:       policySvc,
		insurance:       insurance,
	}
}

func (s *PayrollServiceImpl) GetSheet(ctx context.Context, companyID string, year, month int) (payroll.SheetResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return payroll.SheetResponse{}, err
	}

	sheet, err := s.sheetRepo.GetSheet(ctx, companyID, year, month)
	if err != nil {
		if errors.Is(err, payroll.ErrSheetNotFound) {
			// A month nobody saved yet is an empty editable sheet, not 404.
			return payroll.SheetResponse{Year: year, Month: month, Rows: []payroll.Row{}}, nil
		}
		return payroll.SheetResponse{}, err
	}

	return toSheetResponse(sheet), nil
}

func (s *PayrollServiceImpl) SaveSheet(ctx context.Context, companyID string, year, month int, req payroll.SaveSheetRequest) (payroll.SheetResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return payroll.SheetResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.SheetResponse{}, err
	}

	current, err := s.sheetRepo.GetSheet(ctx, companyID, year, month)
	if err != nil && !errors.Is(err, payroll.ErrSheetNotFound) {
		return payroll.SheetResponse{}, err
	}
	if err == nil && current.IsClosed {
		return payroll.SheetResponse{}, payroll.ErrMonthClosed
	}

	cls, pol, brackets, err := s.loadCalculationInputs(ctx, companyID, year)
	if err != nil {
		return payroll.SheetResponse{}, err
	}

	rows := make([]payroll.Row, 0, len(req.Rows))
	for _, row := range req.Rows {
		if row == nil {
			continue
		}
		amounts, _ := calculation.Compute(row, cls, pol, brackets, year)
		amounts.Apply(row)
		rows = append(rows, row)
	}

	saved, err := s.sheetRepo.UpsertRows(ctx, companyID, year, month, rows)
	if err != nil {
		return payroll.SheetResponse{}, err
	}

	return toSheetResponse(saved), nil
}

func (s *PayrollServiceImpl) SetClosed(ctx context.Context, companyID string, year, month int, closed bool) error {
	if err := validatePeriod(year, month); err != nil {
		return err
	}
	return s.sheetRepo.SetClosed(ctx, companyID, year, month, closed)
}

func (s *PayrollServiceImpl) ListMonths(ctx context.Context, companyID string) ([]payroll.MonthRef, error) {
	return s.sheetRepo.ListMonths(ctx, companyID)
}

func (s *PayrollServiceImpl) ComputeRow(ctx context.Context, companyID string, req payroll.ComputeRowRequest) (payroll.ComputeRowResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComputeRowResponse{}, err
	}

	cls, pol, brackets, err := s.loadCalculationInputs(ctx, companyID, req.Year)
	if err != nil {
		return payroll.ComputeRowResponse{}, err
	}

	amounts, trace := calculation.Compute(req.Row, cls, pol, brackets, req.Year)
	return payroll.ComputeRowResponse{Amounts: amounts, Metadata: trace}, nil
}

// loadCalculationInputs gathers everything Compute needs for a company and
// year: the resolved field classification, the effective policy and the
// withholding bracket table.
func (s *PayrollServiceImpl) loadCalculationInputs(ctx context.Context, companyID string, year int) (calculation.Classification, policy.Effective, *calculation.BracketTable, error) {
	prefs, err := s.prefRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return calculation.Classification{}, policy.Effective{}, nil, err
	}
	extras, err := s.extraRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return calculation.Classification{}, policy.Effective{}, nil, err
	}
	cls := calculation.Classify(fieldpref.DefaultColumns(), extras, prefs, s.insurance.BaseExemptions)

	pol, err := s.policySvc.Resolve(ctx, &companyID, year)
	if err != nil {
		return calculation.Classification{}, policy.Effective{}, nil, err
	}

	cells, err := s.withholdingRepo.ListByYear(ctx, year)
	if err != nil {
		return calculation.Classification{}, policy.Effective{}, nil, err
	}

	return cls, pol, calculation.NewBracketTable(cells), nil
}

func validatePeriod(year, month int) error {
	if !validator.IsValidYear(year) || !validator.IsValidMonth(month) {
		return payroll.ErrInvalidPeriod
	}
	return nil
}

func toSheetResponse(sheet payroll.MonthlySheet) payroll.SheetResponse {
	rows := sheet.Rows
	if rows == nil {
		rows = []payroll.Row{}
	}
	return payroll.SheetResponse{
		Year:      sheet.Year,
		Month:     sheet.Month,
		Rows:      rows,
		IsClosed:  sheet.IsClosed,
		UpdatedAt: sheet.UpdatedAt,
	}
}
