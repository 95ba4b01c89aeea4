package calculation

import "github.com/shopspring/decimal"

// Rounding mode names, as stored in policy documents.
const (
	RoundHalfUp   = "round"
	RoundHalfDown = "half_down"
	RoundFloor    = "floor"
	RoundCeil     = "ceil"
)

// Round scales amount to the nearest multiple of step under the named mode
// and returns an integer currency amount. Unknown modes behave as half-up,
// and a step below 1 is treated as 1. All arithmetic is exact decimal; a
// binary-float implementation drifts by a currency unit at tie boundaries.
func Round(amount decimal.Decimal, step int64, mode string) int64 {
	if step < 1 {
		step = 1
	}
	stepD := decimal.NewFromInt(step)
	scaled := amount.Div(stepD)

	var units decimal.Decimal
	switch mode {
	case RoundFloor:
		units = scaled.Truncate(0)
	case RoundCeil:
		units = scaled.Truncate(0)
		if !units.Equal(scaled) {
			units = units.Add(signUnit(scaled))
		}
	case RoundHalfDown:
		units = roundHalf(scaled, false)
	default:
		units = roundHalf(scaled, true)
	}
	return units.Mul(stepD).IntPart()
}

// roundHalf rounds to the nearest unit; exact halves go away from zero when
// tieUp is set, toward zero otherwise.
func roundHalf(scaled decimal.Decimal, tieUp bool) decimal.Decimal {
	truncated := scaled.Truncate(0)
	rem := scaled.Sub(truncated).Abs()
	cmp := rem.Cmp(decimal.New(5, -1))
	if cmp > 0 || (cmp == 0 && tieUp) {
		return truncated.Add(signUnit(scaled))
	}
	return truncated
}

func signUnit(d decimal.Decimal) decimal.Decimal {
	if d.Sign() < 0 {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}
