package policy

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traum0123-design/traum0123/internal/config"
	"github.com/traum0123-design/traum0123/internal/domain/policy"
)

type fakePolicyRepo struct {
	settings []policy.Setting
}

func (r *fakePolicyRepo) Get(ctx context.Context, companyID *string, year int) (policy.Setting, error) {
	// Last write wins, matching the persisted ordering.
	for i := len(r.settings) - 1; i >= 0; i-- {
		s := r.settings[i]
		if s.Year != year {
			continue
		}
		if (s.CompanyID == nil) != (companyID == nil) {
			continue
		}
		if s.CompanyID != nil && *s.CompanyID != *companyID {
			continue
		}
		return s, nil
	}
	return policy.Setting{}, policy.ErrPolicyNotFound
}

func (r *fakePolicyRepo) Upsert(ctx context.Context, setting policy.Setting) (policy.Setting, error) {
	r.settings = append(r.settings, setting)
	return setting, nil
}

func (r *fakePolicyRepo) History(ctx context.Context, companyID *string, year int) ([]policy.Setting, error) {
	var out []policy.Setting
	for _, s := range r.settings {
		if s.Year == year {
			out = append(out, s)
		}
	}
	return out, nil
}

func testInsuranceDefaults() config.InsuranceDefaults {
	return config.InsuranceDefaults{
		NPSRate: 0.045, NPSRoundTo: 10, NPSRounding: "round",
		NHISRate: 0.03545, NHISRoundTo: 10, NHISRounding: "round",
		LTCRate: 0.1295, LTCRoundTo: 10, LTCRounding: "round",
		EIRate: 0.009, EIRoundTo: 10, EIRounding: "round",
	}
}

func TestResolveDefaultsOnly(t *testing.T) {
	svc := NewPolicyService(&fakePolicyRepo{}, testInsuranceDefaults())

	eff, err := svc.Resolve(context.Background(), nil, 2010)
	require.NoError(t, err)

	assert.True(t, eff.NPS.Rate.Equal(decimal.NewFromFloat(0.045)))
	assert.Nil(t, eff.NPS.MinBase)
	assert.Nil(t, eff.NPS.MaxBase)
	assert.True(t, eff.NHIS.LTCRate.Equal(decimal.NewFromFloat(0.1295)))
	assert.True(t, eff.LocalTax.Rate.Equal(decimal.NewFromFloat(0.1)))
	assert.Equal(t, int64(10), eff.LocalTax.RoundTo)
	assert.True(t, eff.Proration.ExcludeBonus)
}

func TestResolveAppliesYearOverlay(t *testing.T) {
	svc := NewPolicyService(&fakePolicyRepo{}, testInsuranceDefaults())

	eff, err := svc.Resolve(context.Background(), nil, 2024)
	require.NoError(t, err)

	require.NotNil(t, eff.NPS.MinBase)
	require.NotNil(t, eff.NPS.MaxBase)
	assert.Equal(t, int64(390_000), *eff.NPS.MinBase)
	assert.Equal(t, int64(6_170_000), *eff.NPS.MaxBase)
	// The overlay touches only the base bounds; the default rate survives.
	assert.True(t, eff.NPS.Rate.Equal(decimal.NewFromFloat(0.045)))
}

func TestResolvePrefersCompanyRowOverGlobal(t *testing.T) {
	companyID := "c-1"
	repo := &fakePolicyRepo{settings: []policy.Setting{
		{CompanyID: nil, Year: 2024, PolicyJSON: `{"local_tax":{"rate":0.2}}`},
		{CompanyID: &companyID, Year: 2024, PolicyJSON: `{"local_tax":{"rate":0.3}}`},
	}}
	svc := NewPolicyService(repo, testInsuranceDefaults())

	eff, err := svc.Resolve(context.Background(), &companyID, 2024)
	require.NoError(t, err)
	assert.True(t, eff.LocalTax.Rate.Equal(decimal.NewFromFloat(0.3)))

	other := "c-2"
	eff, err = svc.Resolve(context.Background(), &other, 2024)
	require.NoError(t, err)
	assert.True(t, eff.LocalTax.Rate.Equal(decimal.NewFromFloat(0.2)))
}

func TestResolveStoredOverrideShallowMergesPerSection(t *testing.T) {
	repo := &fakePolicyRepo{settings: []policy.Setting{
		{CompanyID: nil, Year: 2024, PolicyJSON: `{"nps":{"max_base":7000000}}`},
	}}
	svc := NewPolicyService(repo, testInsuranceDefaults())

	eff, err := svc.Resolve(context.Background(), nil, 2024)
	require.NoError(t, err)

	require.NotNil(t, eff.NPS.MaxBase)
	assert.Equal(t, int64(7_000_000), *eff.NPS.MaxBase)
	// Keys the override does not mention keep their overlay/default values.
	require.NotNil(t, eff.NPS.MinBase)
	assert.Equal(t, int64(390_000), *eff.NPS.MinBase)
	assert.True(t, eff.NPS.Rate.Equal(decimal.NewFromFloat(0.045)))
}

func TestResolveSkipsMalformedStoredJSON(t *testing.T) {
	repo := &fakePolicyRepo{settings: []policy.Setting{
		{CompanyID: nil, Year: 2024, PolicyJSON: `{not json`},
	}}
	svc := NewPolicyService(repo, testInsuranceDefaults())

	eff, err := svc.Resolve(context.Background(), nil, 2024)
	require.NoError(t, err)

	// Resolution falls back to defaults plus the year overlay.
	require.NotNil(t, eff.NPS.MinBase)
	assert.Equal(t, int64(390_000), *eff.NPS.MinBase)
	assert.True(t, eff.LocalTax.Rate.Equal(decimal.NewFromFloat(0.1)))
}

func TestResolveIsIdempotent(t *testing.T) {
	companyID := "c-1"
	repo := &fakePolicyRepo{settings: []policy.Setting{
		{CompanyID: &companyID, Year: 2025, PolicyJSON: `{"ei":{"rate":0.008}}`},
	}}
	svc := NewPolicyService(repo, testInsuranceDefaults())

	first, err := svc.Resolve(context.Background(), &companyID, 2025)
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), &companyID, 2025)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveDocumentDoesNotMutateDefaults(t *testing.T) {
	repo := &fakePolicyRepo{settings: []policy.Setting{
		{CompanyID: nil, Year: 2024, PolicyJSON: `{"local_tax":{"rate":0.5}}`},
	}}
	svc := NewPolicyService(repo, testInsuranceDefaults())
	ctx := context.Background()

	_, err := svc.ResolveDocument(ctx, nil, 2024)
	require.NoError(t, err)

	// A year without any stored row must still see the pristine defaults.
	eff, err := svc.Resolve(ctx, nil, 2010)
	require.NoError(t, err)
	assert.True(t, eff.LocalTax.Rate.Equal(decimal.NewFromFloat(0.1)))
	assert.Nil(t, eff.NPS.MinBase)
}

func TestUpsertRejectsInvalidDocument(t *testing.T) {
	svc := NewPolicyService(&fakePolicyRepo{}, testInsuranceDefaults())

	_, err := svc.Upsert(context.Background(), nil, 2024, policy.UpsertSettingRequest{Policy: []byte(`"flat"`)})
	assert.Error(t, err)

	_, err = svc.Upsert(context.Background(), nil, 2024, policy.UpsertSettingRequest{})
	assert.Error(t, err)
}

func TestUpsertThenResolveRoundTrip(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(repo, testInsuranceDefaults())
	ctx := context.Background()
	companyID := "c-9"

	_, err := svc.Upsert(ctx, &companyID, 2025, policy.UpsertSettingRequest{
		Policy: []byte(`{"nhis":{"rate":0.04}}`),
	})
	require.NoError(t, err)

	eff, err := svc.Resolve(ctx, &companyID, 2025)
	require.NoError(t, err)
	assert.True(t, eff.NHIS.Rate.Equal(decimal.NewFromFloat(0.04)))
	// The long-term-care surcharge keys are untouched by the override.
	assert.True(t, eff.NHIS.LTCRate.Equal(decimal.NewFromFloat(0.1295)))
}
