package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traum0123-design/traum0123/internal/config"
	"github.com/traum0123-design/traum0123/internal/domain/fieldpref"
	"github.com/traum0123-design/traum0123/internal/domain/payroll"
	"github.com/traum0123-design/traum0123/internal/domain/policy"
	"github.com/traum0123-design/traum0123/internal/domain/withholding"
)

type fakeSheetRepo struct {
	sheets map[string]payroll.MonthlySheet
}

func sheetKey(companyID string, year, month int) string {
	return companyID + "/" + time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func newFakeSheetRepo() *fakeSheetRepo {
	return &fakeSheetRepo{sheets: map[string]payroll.MonthlySheet{}}
}

func (r *fakeSheetRepo) GetSheet(ctx context.Context, companyID string, year, month int) (payroll.MonthlySheet, error) {
	sheet, ok := r.sheets[sheetKey(companyID, year, month)]
	if !ok {
		return payroll.MonthlySheet{}, payroll.ErrSheetNotFound
	}
	return sheet, nil
}

func (r *fakeSheetRepo) UpsertRows(ctx context.Context, companyID string, year, month int, rows []payroll.Row) (payroll.MonthlySheet, error) {
	key := sheetKey(companyID, year, month)
	sheet := r.sheets[key]
	sheet.CompanyID = companyID
	sheet.Year = year
	sheet.Month = month
	sheet.Rows = rows
	sheet.UpdatedAt = time.Now()
	r.sheets[key] = sheet
	return sheet, nil
}

func (r *fakeSheetRepo) SetClosed(ctx context.Context, companyID string, year, month int, closed bool) error {
	key := sheetKey(companyID, year, month)
	sheet, ok := r.sheets[key]
	if !ok {
		return payroll.ErrSheetNotFound
	}
	sheet.IsClosed = closed
	r.sheets[key] = sheet
	return nil
}

func (r *fakeSheetRepo) ListMonths(ctx context.Context, companyID string) ([]payroll.MonthRef, error) {
	var refs []payroll.MonthRef
	for _, sheet := range r.sheets {
		if sheet.CompanyID == companyID {
			refs = append(refs, payroll.MonthRef{Year: sheet.Year, Month: sheet.Month, IsClosed: sheet.IsClosed})
		}
	}
	return refs, nil
}

type fakePrefRepo struct {
	prefs []fieldpref.Preference
}

func (r *fakePrefRepo) ListByCompany(ctx context.Context, companyID string) ([]fieldpref.Preference, error) {
	return r.prefs, nil
}

func (r *fakePrefRepo) Upsert(ctx context.Context, pref fieldpref.Preference) (fieldpref.Preference, error) {
	r.prefs = append(r.prefs, pref)
	return pref, nil
}

type fakeExtraRepo struct {
	fields []fieldpref.ExtraField
}

func (r *fakeExtraRepo) ListByCompany(ctx context.Context, companyID string) ([]fieldpref.ExtraField, error) {
	return r.fields, nil
}

func (r *fakeExtraRepo) Create(ctx context.Context, field fieldpref.ExtraField) (fieldpref.ExtraField, error) {
	r.fields = append(r.fields, field)
	return field, nil
}

func (r *fakeExtraRepo) ExistsByLabel(ctx context.Context, companyID, label string) (bool, error) {
	for _, f := range r.fields {
		if f.Label == label {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeExtraRepo) Delete(ctx context.Context, id string, companyID string) error {
	return nil
}

type fakeWithholdingRepo struct {
	cells []withholding.Cell
}

func (r *fakeWithholdingRepo) ReplaceYear(ctx context.Context, year int, cells []withholding.Cell) (int, error) {
	r.cells = cells
	return len(cells), nil
}

func (r *fakeWithholdingRepo) ListByYear(ctx context.Context, year int) ([]withholding.Cell, error) {
	var out []withholding.Cell
	for _, c := range r.cells {
		if c.Year == year {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeWithholdingRepo) Years(ctx context.Context) ([]withholding.YearCount, error) {
	return nil, nil
}

// stubPolicyService resolves every request to one fixed document.
type stubPolicyService struct {
	doc policy.Document
}

func (s *stubPolicyService) Resolve(ctx context.Context, companyID *string, year int) (policy.Effective, error) {
	return policy.FromDocument(s.doc), nil
}

func (s *stubPolicyService) ResolveDocument(ctx context.Context, companyID *string, year int) (policy.Document, error) {
	return s.doc.Clone(), nil
}

func (s *stubPolicyService) Get(ctx context.Context, companyID *string, year int) (policy.SettingResponse, error) {
	return policy.SettingResponse{}, policy.ErrPolicyNotFound
}

func (s *stubPolicyService) Upsert(ctx context.Context, companyID *string, year int, req policy.UpsertSettingRequest) (policy.SettingResponse, error) {
	return policy.SettingResponse{}, nil
}

func (s *stubPolicyService) History(ctx context.Context, companyID *string, year int) ([]policy.SettingResponse, error) {
	return nil, nil
}

func testService(sheetRepo *fakeSheetRepo) payroll.PayrollService {
	prefs := &fakePrefRepo{prefs: []fieldpref.Preference{
		{Field: "기본급", Group: fieldpref.GroupEarn, InsNHIS: true, InsEI: true},
		{Field: "식대", Group: fieldpref.GroupEarn},
	}}
	wh := &fakeWithholdingRepo{cells: []withholding.Cell{
		{Year: 2024, Dependents: 1, Wage: 2_000_000, Tax: 100_000},
		{Year: 2024, Dependents: 1, Wage: 2_200_000, Tax: 120_000},
	}}
	pol := &stubPolicyService{doc: policy.Document{
		"nps":       {"rate": 0.045, "round_to": 10, "rounding": "round"},
		"nhis":      {"rate": 0.03545, "round_to": 10, "rounding": "round", "ltc_rate": 0.1295},
		"ei":        {"rate": 0.009, "round_to": 10, "rounding": "round"},
		"local_tax": {"rate": 0.1, "round_to": 10, "rounding": "round"},
	}}
	return NewPayrollService(sheetRepo, prefs, &fakeExtraRepo{}, wh, pol, config.InsuranceDefaults{})
}

func TestGetSheetMissingMonthIsEmpty(t *testing.T) {
	svc := testService(newFakeSheetRepo())

	resp, err := svc.GetSheet(context.Background(), "c-1", 2024, 5)
	require.NoError(t, err)

	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 5, resp.Month)
	assert.NotNil(t, resp.Rows)
	assert.Empty(t, resp.Rows)
	assert.False(t, resp.IsClosed)
}

func TestSaveSheetRecomputesDeductions(t *testing.T) {
	svc := testService(newFakeSheetRepo())

	resp, err := svc.SaveSheet(context.Background(), "c-1", 2024, 5, payroll.SaveSheetRequest{
		Rows: []payroll.Row{
			{"사원코드": "E01", "기본급": 2_000_000, "식대": 200_000, "부양가족수": 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)

	row := resp.Rows[0]
	assert.Equal(t, int64(99_000), row.Amount(payroll.FieldNationalPension))
	assert.Equal(t, int64(70_900), row.Amount(payroll.FieldHealthInsurance))
	assert.Equal(t, int64(9_180), row.Amount(payroll.FieldLongTermCare))
	assert.Equal(t, int64(18_000), row.Amount(payroll.FieldEmploymentInsurance))
	assert.Equal(t, int64(120_000), row.Amount(payroll.FieldIncomeTax))
	assert.Equal(t, int64(12_000), row.Amount(payroll.FieldLocalIncomeTax))
}

func TestSaveSheetOverwritesStaleDeductions(t *testing.T) {
	svc := testService(newFakeSheetRepo())

	resp, err := svc.SaveSheet(context.Background(), "c-1", 2024, 5, payroll.SaveSheetRequest{
		Rows: []payroll.Row{
			{"기본급": 2_000_000, "식대": 200_000, "국민연금": 1, "소득세": "999,999"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)

	assert.Equal(t, int64(99_000), resp.Rows[0].Amount(payroll.FieldNationalPension))
	assert.Equal(t, int64(120_000), resp.Rows[0].Amount(payroll.FieldIncomeTax))
}

func TestSaveSheetRejectsClosedMonth(t *testing.T) {
	repo := newFakeSheetRepo()
	svc := testService(repo)
	ctx := context.Background()

	_, err := svc.SaveSheet(ctx, "c-1", 2024, 5, payroll.SaveSheetRequest{Rows: []payroll.Row{{"기본급": 1}}})
	require.NoError(t, err)
	require.NoError(t, svc.SetClosed(ctx, "c-1", 2024, 5, true))

	_, err = svc.SaveSheet(ctx, "c-1", 2024, 5, payroll.SaveSheetRequest{Rows: []payroll.Row{{"기본급": 2}}})
	assert.ErrorIs(t, err, payroll.ErrMonthClosed)

	require.NoError(t, svc.SetClosed(ctx, "c-1", 2024, 5, false))
	_, err = svc.SaveSheet(ctx, "c-1", 2024, 5, payroll.SaveSheetRequest{Rows: []payroll.Row{{"기본급": 2}}})
	assert.NoError(t, err)
}

func TestSaveSheetValidatesPeriodAndBody(t *testing.T) {
	svc := testService(newFakeSheetRepo())
	ctx := context.Background()

	_, err := svc.SaveSheet(ctx, "c-1", 2024, 13, payroll.SaveSheetRequest{Rows: []payroll.Row{}})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	_, err = svc.SaveSheet(ctx, "c-1", 1850, 1, payroll.SaveSheetRequest{Rows: []payroll.Row{}})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)

	_, err = svc.SaveSheet(ctx, "c-1", 2024, 5, payroll.SaveSheetRequest{})
	assert.Error(t, err)
}

func TestSaveSheetDropsNilRows(t *testing.T) {
	svc := testService(newFakeSheetRepo())

	resp, err := svc.SaveSheet(context.Background(), "c-1", 2024, 5, payroll.SaveSheetRequest{
		Rows: []payroll.Row{nil, {"기본급": 1_000_000}},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Rows, 1)
}

func TestListMonths(t *testing.T) {
	repo := newFakeSheetRepo()
	svc := testService(repo)
	ctx := context.Background()

	_, err := svc.SaveSheet(ctx, "c-1", 2024, 4, payroll.SaveSheetRequest{Rows: []payroll.Row{}})
	require.NoError(t, err)
	_, err = svc.SaveSheet(ctx, "c-1", 2024, 5, payroll.SaveSheetRequest{Rows: []payroll.Row{}})
	require.NoError(t, err)
	_, err = svc.SaveSheet(ctx, "c-2", 2024, 5, payroll.SaveSheetRequest{Rows: []payroll.Row{}})
	require.NoError(t, err)

	months, err := svc.ListMonths(ctx, "c-1")
	require.NoError(t, err)
	assert.Len(t, months, 2)
}

func TestComputeRowPreview(t *testing.T) {
	svc := testService(newFakeSheetRepo())

	resp, err := svc.ComputeRow(context.Background(), "c-1", payroll.ComputeRowRequest{
		Row:  payroll.Row{"기본급": 2_000_000, "식대": 200_000, "부양가족수": 1},
		Year: 2024,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2_200_000), resp.Metadata.DefaultBase)
	assert.Equal(t, int64(99_000), resp.Amounts.NationalPension)
	assert.Equal(t, int64(12_000), resp.Amounts.LocalIncomeTax)

	_, err = svc.ComputeRow(context.Background(), "c-1", payroll.ComputeRowRequest{Year: 2024})
	assert.Error(t, err)
}
