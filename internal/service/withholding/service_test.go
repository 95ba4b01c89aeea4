package withholding

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traum0123-design/traum0123/internal/domain/policy"
	"github.com/traum0123-design/traum0123/internal/domain/withholding"
)

type fakeRepo struct {
	cells map[int][]withholding.Cell
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{cells: map[int][]withholding.Cell{}}
}

func (r *fakeRepo) ReplaceYear(ctx context.Context, year int, cells []withholding.Cell) (int, error) {
	r.cells[year] = cells
	return len(cells), nil
}

func (r *fakeRepo) ListByYear(ctx context.Context, year int) ([]withholding.Cell, error) {
	return r.cells[year], nil
}

func (r *fakeRepo) Years(ctx context.Context) ([]withholding.YearCount, error) {
	var out []withholding.YearCount
	for year, cells := range r.cells {
		out = append(out, withholding.YearCount{Year: year, Count: len(cells)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

type stubPolicyService struct{}

func (s *stubPolicyService) Resolve(ctx context.Context, companyID *string, year int) (policy.Effective, error) {
	return policy.FromDocument(policy.Document{
		"local_tax": {"rate": 0.1, "round_to": 10, "rounding": "round"},
	}), nil
}

func (s *stubPolicyService) ResolveDocument(ctx context.Context, companyID *string, year int) (policy.Document, error) {
	return policy.Document{}, nil
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

func TestImportStampsYearOntoCells(t *testing.T) {
	repo := newFakeRepo()
	svc := NewWithholdingService(repo, &stubPolicyService{})

	resp, err := svc.Import(context.Background(), withholding.ImportRequest{
		Year: 2024,
		Cells: []withholding.Cell{
			{Dependents: 1, Wage: 2_000_000, Tax: 19_520},
			{Year: 1999, Dependents: 1, Wage: 2_200_000, Tax: 120_000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)

	for _, c := range repo.cells[2024] {
		assert.Equal(t, 2024, c.Year)
	}
}

func TestImportValidates(t *testing.T) {
	svc := NewWithholdingService(newFakeRepo(), &stubPolicyService{})
	ctx := context.Background()

	_, err := svc.Import(ctx, withholding.ImportRequest{Year: 2024})
	assert.Error(t, err)

	_, err = svc.Import(ctx, withholding.ImportRequest{Year: 1700, Cells: []withholding.Cell{{Wage: 1}}})
	assert.Error(t, err)

	_, err = svc.Import(ctx, withholding.ImportRequest{Year: 2024, Cells: []withholding.Cell{{Wage: -1}}})
	assert.Error(t, err)
}

func TestLookupComputesLocalTax(t *testing.T) {
	repo := newFakeRepo()
	svc := NewWithholdingService(repo, &stubPolicyService{})
	ctx := context.Background()

	_, err := svc.Import(ctx, withholding.ImportRequest{
		Year: 2024,
		Cells: []withholding.Cell{
			{Dependents: 1, Wage: 2_000_000, Tax: 100_000},
			{Dependents: 1, Wage: 2_200_000, Tax: 120_000},
		},
	})
	require.NoError(t, err)

	resp, err := svc.Lookup(ctx, 2024, 1, 2_250_000)
	require.NoError(t, err)
	assert.Equal(t, int64(120_000), resp.Tax)
	assert.Equal(t, int64(12_000), resp.LocalTax)

	resp, err = svc.Lookup(ctx, 2024, 1, 1_000_000)
	require.NoError(t, err)
	assert.Zero(t, resp.Tax)
	assert.Zero(t, resp.LocalTax)
}

func TestYearsSummarizesImports(t *testing.T) {
	svc := NewWithholdingService(newFakeRepo(), &stubPolicyService{})
	ctx := context.Background()

	_, err := svc.Import(ctx, withholding.ImportRequest{Year: 2023, Cells: []withholding.Cell{{Wage: 1}}})
	require.NoError(t, err)
	_, err = svc.Import(ctx, withholding.ImportRequest{Year: 2024, Cells: []withholding.Cell{{Wage: 1}, {Wage: 2}}})
	require.NoError(t, err)

	years, err := svc.Years(ctx)
	require.NoError(t, err)
	require.Len(t, years, 2)
	assert.Equal(t, withholding.YearCount{Year: 2023, Count: 1}, years[0])
	assert.Equal(t, withholding.YearCount{Year: 2024, Count: 2}, years[1])
}
