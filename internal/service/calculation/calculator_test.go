package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traum0123-design/traum0123/internal/domain/fieldpref"
	"github.com/traum0123-design/traum0123/internal/domain/payroll"
	"github.com/traum0123-design/traum0123/internal/domain/policy"
	"github.com/traum0123-design/traum0123/internal/domain/withholding"
)

func statutoryPolicyDoc() policy.Document {
	return policy.Document{
		"nps":  {"rate": 0.045, "round_to": 10, "rounding": "round"},
		"nhis": {"rate": 0.03545, "round_to": 10, "rounding": "round", "ltc_rate": 0.1295, "ltc_round_to": 10, "ltc_rounding": "round"},
		"ei":   {"rate": 0.009, "round_to": 10, "rounding": "round"},
		"local_tax": {"rate": 0.1, "round_to": 10, "rounding": "round"},
	}
}

func statutoryClassification() Classification {
	cols := testColumns(
		"기본급", "식대",
		payroll.FieldNationalPension, payroll.FieldHealthInsurance, payroll.FieldLongTermCare,
		payroll.FieldEmploymentInsurance, payroll.FieldIncomeTax, payroll.FieldLocalIncomeTax,
	)
	prefs := []fieldpref.Preference{
		{Field: "기본급", Group: fieldpref.GroupEarn, InsNHIS: true, InsEI: true},
		{Field: "식대", Group: fieldpref.GroupEarn},
		{Field: payroll.FieldNationalPension, Group: fieldpref.GroupDeduct},
		{Field: payroll.FieldHealthInsurance, Group: fieldpref.GroupDeduct},
		{Field: payroll.FieldLongTermCare, Group: fieldpref.GroupDeduct},
		{Field: payroll.FieldEmploymentInsurance, Group: fieldpref.GroupDeduct},
		{Field: payroll.FieldIncomeTax, Group: fieldpref.GroupDeduct},
		{Field: payroll.FieldLocalIncomeTax, Group: fieldpref.GroupDeduct},
	}
	return Classify(cols, nil, prefs, nil)
}

func statutoryBrackets() *BracketTable {
	return NewBracketTable([]withholding.Cell{
		{Year: 2024, Dependents: 1, Wage: 2_000_000, Tax: 100_000},
		{Year: 2024, Dependents: 1, Wage: 2_100_000, Tax: 110_000},
		{Year: 2024, Dependents: 1, Wage: 2_200_000, Tax: 120_000},
	})
}

func TestComputeWorkedExample(t *testing.T) {
	row := payroll.Row{"기본급": 2_000_000, "식대": 200_000, payroll.FieldDependents: 1}
	pol := policy.FromDocument(statutoryPolicyDoc())

	amounts, trace := Compute(row, statutoryClassification(), pol, statutoryBrackets(), 2024)

	require.Equal(t, int64(2_200_000), trace.DefaultBase)
	assert.Equal(t, int64(2_000_000), trace.BaseHealthInsurance)
	assert.Equal(t, int64(2_000_000), trace.BaseEmploymentInsurance)
	assert.Equal(t, int64(99_000), amounts.NationalPension)
	assert.Equal(t, int64(70_900), amounts.HealthInsurance)
	assert.Equal(t, int64(9_180), amounts.LongTermCare)
	assert.Equal(t, int64(18_000), amounts.EmploymentInsurance)
	assert.Equal(t, int64(120_000), amounts.IncomeTax)
	assert.Equal(t, int64(12_000), amounts.LocalIncomeTax)
}

func TestComputeHonoursBaseExemptions(t *testing.T) {
	cls := statutoryClassification()
	cls.ExemptionLimits = map[string]int64{"식대": 100_000}
	row := payroll.Row{"기본급": 2_000_000, "식대": 200_000, payroll.FieldDependents: 1}
	pol := policy.FromDocument(statutoryPolicyDoc())

	amounts, trace := Compute(row, cls, pol, statutoryBrackets(), 2024)

	assert.Equal(t, int64(2_100_000), trace.DefaultBase)
	assert.Equal(t, int64(94_500), amounts.NationalPension)
	assert.Equal(t, int64(110_000), amounts.IncomeTax)
}

func TestComputeExemptionCappedAtActualValue(t *testing.T) {
	cls := statutoryClassification()
	cls.ExemptionLimits = map[string]int64{"식대": 200_000}
	row := payroll.Row{"기본급": 2_000_000, "식대": 150_000}
	pol := policy.FromDocument(statutoryPolicyDoc())

	_, trace := Compute(row, cls, pol, statutoryBrackets(), 2024)

	// Only the 150,000 actually paid is excluded, not the full limit.
	assert.Equal(t, int64(2_000_000), trace.DefaultBase)
}

func TestComputeMinBaseApplied(t *testing.T) {
	doc := statutoryPolicyDoc()
	doc["nps"]["min_base"] = 3_000_000
	row := payroll.Row{"기본급": 2_000_000, "식대": 100_000, payroll.FieldDependents: 1}

	amounts, trace := Compute(row, statutoryClassification(), policy.FromDocument(doc), statutoryBrackets(), 2024)

	assert.Equal(t, int64(2_100_000), trace.DefaultBase)
	assert.Equal(t, int64(135_000), amounts.NationalPension)
}

func TestComputeMaxBaseApplied(t *testing.T) {
	doc := statutoryPolicyDoc()
	doc["nps"]["max_base"] = 3_000_000
	row := payroll.Row{"기본급": 5_000_000, payroll.FieldDependents: 1}

	amounts, _ := Compute(row, statutoryClassification(), policy.FromDocument(doc), statutoryBrackets(), 2024)

	assert.Equal(t, int64(135_000), amounts.NationalPension)
}

func TestComputePensionBaseOverride(t *testing.T) {
	row := payroll.Row{
		"기본급":                    2_000_000,
		"식대":                     200_000,
		payroll.FieldPensionBase: "2,500,000",
	}
	pol := policy.FromDocument(statutoryPolicyDoc())

	amounts, trace := Compute(row, statutoryClassification(), pol, statutoryBrackets(), 2024)

	assert.Equal(t, int64(2_500_000), trace.BaseNationalPension)
	assert.Equal(t, int64(112_500), amounts.NationalPension)
	// Other contributions stay on their own bases.
	assert.Equal(t, int64(2_200_000), trace.DefaultBase)
	assert.Equal(t, int64(70_900), amounts.HealthInsurance)
}

func TestComputeBlankPensionBaseIsIgnored(t *testing.T) {
	row := payroll.Row{
		"기본급":                    2_000_000,
		"식대":                     200_000,
		payroll.FieldPensionBase: "  ",
	}
	pol := policy.FromDocument(statutoryPolicyDoc())

	amounts, trace := Compute(row, statutoryClassification(), pol, statutoryBrackets(), 2024)

	assert.Equal(t, int64(2_200_000), trace.BaseNationalPension)
	assert.Equal(t, int64(99_000), amounts.NationalPension)
}

func TestComputeEmptyInclusionFallsBackToDefaultBase(t *testing.T) {
	cls := statutoryClassification()
	cls.NHISInclusion = map[string]bool{}
	cls.EIInclusion = map[string]bool{}
	row := payroll.Row{"기본급": 2_000_000, "식대": 200_000}
	pol := policy.FromDocument(statutoryPolicyDoc())

	amounts, trace := Compute(row, cls, pol, statutoryBrackets(), 2024)

	assert.Equal(t, int64(2_200_000), trace.BaseHealthInsurance)
	assert.Equal(t, int64(77_990), amounts.HealthInsurance)
	assert.Equal(t, int64(19_800), amounts.EmploymentInsurance)
}

func TestComputeMissingPolicySectionsYieldZeroContributions(t *testing.T) {
	row := payroll.Row{"기본급": 2_200_000, payroll.FieldDependents: 1}

	amounts, _ := Compute(row, statutoryClassification(), policy.FromDocument(policy.Document{}), statutoryBrackets(), 2024)

	assert.Zero(t, amounts.NationalPension)
	assert.Zero(t, amounts.HealthInsurance)
	assert.Zero(t, amounts.LongTermCare)
	assert.Zero(t, amounts.EmploymentInsurance)
	// The bracket lookup does not depend on insurance policy.
	assert.Equal(t, int64(120_000), amounts.IncomeTax)
	assert.Zero(t, amounts.LocalIncomeTax)
}

func TestComputeDependentsDefaultToOne(t *testing.T) {
	pol := policy.FromDocument(statutoryPolicyDoc())
	for _, row := range []payroll.Row{
		{"기본급": 2_000_000, "식대": 200_000},
		{"기본급": 2_000_000, "식대": 200_000, payroll.FieldDependents: 0},
		{"기본급": 2_000_000, "식대": 200_000, payroll.FieldDependents: ""},
	} {
		amounts, trace := Compute(row, statutoryClassification(), pol, statutoryBrackets(), 2024)
		assert.Equal(t, int64(1), trace.Dependents)
		assert.Equal(t, int64(120_000), amounts.IncomeTax)
	}
}

func TestComputeToleratesMessyCellValues(t *testing.T) {
	row := payroll.Row{
		"기본급":                   "2,000,000",
		"식대":                    " 200,000 ",
		payroll.FieldDependents: "1",
	}
	pol := policy.FromDocument(statutoryPolicyDoc())

	amounts, trace := Compute(row, statutoryClassification(), pol, statutoryBrackets(), 2024)

	assert.Equal(t, int64(2_200_000), trace.DefaultBase)
	assert.Equal(t, int64(99_000), amounts.NationalPension)
}

func TestComputeNegativeEarningsDoNotReduceBase(t *testing.T) {
	cls := statutoryClassification()
	cls.Earnings["조정금"] = true
	row := payroll.Row{"기본급": 2_000_000, "식대": 200_000, "조정금": -500_000}
	pol := policy.FromDocument(statutoryPolicyDoc())

	_, trace := Compute(row, cls, pol, statutoryBrackets(), 2024)

	assert.Equal(t, int64(2_200_000), trace.DefaultBase)
}
