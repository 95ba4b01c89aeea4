package calculation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/traum0123-design/traum0123/internal/domain/payroll"
	"github.com/traum0123-design/traum0123/internal/domain/policy"
)

// Compute turns one pay-sheet row into the full set of statutory deduction
// amounts plus an audit trace. It is a pure function of its inputs: the
// caller loads the classification, the effective policy and the bracket
// table up front, and Compute does no I/O.
//
// Malformed row values coerce to zero and missing policy sections yield zero
// contributions; this function never fails on bad data, because it runs
// inline with interactive sheet editing and must not block a save.
func Compute(
	row payroll.Row,
	cls Classification,
	pol policy.Effective,
	brackets *BracketTable,
	year int,
) (payroll.Deductions, payroll.DeductionTrace) {
	values := make(map[string]int64, len(row))
	for key, raw := range row {
		values[key] = payroll.ToAmount(raw)
	}

	defaultBase := baseFromEarnings(values, cls.Earnings, cls.ExemptionLimits)

	baseNPS := defaultBase
	if raw, ok := row[payroll.FieldPensionBase]; ok && !isBlank(raw) {
		baseNPS = payroll.ToAmount(raw)
		if baseNPS < 0 {
			baseNPS = 0
		}
	}

	baseNHIS := defaultBase
	if len(cls.NHISInclusion) > 0 {
		baseNHIS = baseFromSelection(values, cls.NHISInclusion, cls.ExemptionLimits)
	}
	baseEI := defaultBase
	if len(cls.EIInclusion) > 0 {
		baseEI = baseFromSelection(values, cls.EIInclusion, cls.ExemptionLimits)
	}

	nationalPension := contributionAmount(pol.NPS, baseNPS)
	healthInsurance := contributionAmount(pol.NHIS, baseNHIS)
	longTermCare := Round(
		decimal.NewFromInt(healthInsurance).Mul(pol.NHIS.LTCRate),
		pol.NHIS.LTCRoundTo,
		pol.NHIS.LTCRounding,
	)
	employmentInsurance := contributionAmount(pol.EI, baseEI)

	dependents := row.Dependents()
	wage := defaultBase
	incomeTax := brackets.Lookup(year, int(dependents), wage)
	localIncomeTax := Round(
		decimal.NewFromInt(incomeTax).Mul(pol.LocalTax.Rate),
		pol.LocalTax.RoundTo,
		pol.LocalTax.Rounding,
	)

	amounts := payroll.Deductions{
		NationalPension:     nationalPension,
		HealthInsurance:     healthInsurance,
		LongTermCare:        longTermCare,
		EmploymentInsurance: employmentInsurance,
		IncomeTax:           incomeTax,
		LocalIncomeTax:      localIncomeTax,
	}
	trace := payroll.DeductionTrace{
		DefaultBase:             defaultBase,
		BaseNationalPension:     baseNPS,
		BaseHealthInsurance:     baseNHIS,
		BaseEmploymentInsurance: baseEI,
		Dependents:              dependents,
		Wage:                    wage,
	}
	return amounts, trace
}

// contributionAmount clamps the base into the rule's bounds, applies the
// rate, and rounds per the rule.
func contributionAmount(rule policy.InsuranceRule, base int64) int64 {
	if base < 0 {
		base = 0
	}
	baseD := decimal.NewFromInt(base)
	if rule.MinBase != nil {
		lower := decimal.NewFromInt(*rule.MinBase)
		if baseD.LessThan(lower) {
			baseD = lower
		}
	}
	if rule.MaxBase != nil {
		upper := decimal.NewFromInt(*rule.MaxBase)
		if baseD.GreaterThan(upper) {
			baseD = upper
		}
	}
	return Round(baseD.Mul(rule.Rate), rule.RoundTo, rule.Rounding)
}

// baseFromEarnings sums every earning field and then subtracts exemptions, each
// capped at the field's actual value. Negative cell values do not reduce the
// base. Exemptions registered under labels that are not earnings still apply,
// mirroring how alias-registered limits work.
func baseFromEarnings(values map[string]int64, earnings map[string]bool, exemptions map[string]int64) int64 {
	statutory := payroll.StatutoryDeductionFields()
	var base int64
	for field := range earnings {
		if statutory[field] {
			continue
		}
		if v := values[field]; v > 0 {
			base += v
		}
	}
	for field, limit := range exemptions {
		v := values[field]
		if v < 0 {
			v = 0
		}
		if v < limit {
			base -= v
		} else {
			base -= limit
		}
	}
	if base < 0 {
		base = 0
	}
	return base
}

// baseFromSelection sums only the fields of an explicit inclusion set, net of the
// exemptions that apply to included fields.
func baseFromSelection(values map[string]int64, selected map[string]bool, exemptions map[string]int64) int64 {
	var subtotal int64
	for field, included := range selected {
		if !included {
			continue
		}
		if v := values[field]; v > 0 {
			subtotal += v
		}
	}
	for field, limit := range exemptions {
		if !selected[field] {
			continue
		}
		v := values[field]
		if v < 0 {
			v = 0
		}
		if v < limit {
			subtotal -= v
		} else {
			subtotal -= limit
		}
	}
	if subtotal < 0 {
		subtotal = 0
	}
	return subtotal
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
