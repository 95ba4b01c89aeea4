package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUpStep10(t *testing.T) {
	assert.Equal(t, int64(10), Round(decimal.NewFromInt(14), 10, RoundHalfUp))
	assert.Equal(t, int64(20), Round(decimal.NewFromInt(15), 10, RoundHalfUp))
	assert.Equal(t, int64(30), Round(decimal.NewFromInt(25), 10, RoundHalfUp))
}

func TestRoundFloorStep10(t *testing.T) {
	assert.Equal(t, int64(10), Round(decimal.NewFromInt(19), 10, RoundFloor))
	assert.Equal(t, int64(20), Round(decimal.NewFromInt(20), 10, RoundFloor))
}

func TestRoundCeilStep10(t *testing.T) {
	assert.Equal(t, int64(20), Round(decimal.NewFromInt(11), 10, RoundCeil))
	assert.Equal(t, int64(20), Round(decimal.NewFromInt(20), 10, RoundCeil))
}

func TestRoundHalfDownStep10(t *testing.T) {
	// Exact halves go down, anything past the half goes up.
	assert.Equal(t, int64(10), Round(decimal.NewFromInt(15), 10, RoundHalfDown))
	assert.Equal(t, int64(20), Round(decimal.NewFromInt(16), 10, RoundHalfDown))
	assert.Equal(t, int64(20), Round(decimal.NewFromInt(25), 10, RoundHalfDown))
}

func TestRoundStepBelowOneTreatedAsOne(t *testing.T) {
	assert.Equal(t, int64(15), Round(decimal.NewFromInt(15), 0, RoundHalfUp))
	assert.Equal(t, int64(15), Round(decimal.NewFromInt(15), -3, RoundHalfUp))
}

func TestRoundUnknownModeFallsBackToHalfUp(t *testing.T) {
	assert.Equal(t, int64(20), Round(decimal.NewFromInt(15), 10, "bogus"))
}

func TestRoundMonotonicPerMode(t *testing.T) {
	modes := []string{RoundHalfUp, RoundHalfDown, RoundFloor, RoundCeil}
	steps := []int64{1, 7, 10, 100}
	for _, mode := range modes {
		for _, step := range steps {
			prev := Round(decimal.NewFromInt(0), step, mode)
			for amount := int64(1); amount <= 500; amount++ {
				cur := Round(decimal.NewFromInt(amount), step, mode)
				if cur < prev {
					t.Fatalf("mode=%s step=%d: Round(%d)=%d < Round(%d)=%d",
						mode, step, amount, cur, amount-1, prev)
				}
				prev = cur
			}
		}
	}
}

func TestRoundExactDecimalAtTieBoundary(t *testing.T) {
	// 70_900 * 0.1295 = 9181.55; half-up at step 10 must give 9180, which a
	// float64 implementation gets wrong often enough to matter.
	raw := decimal.NewFromInt(70_900).Mul(decimal.NewFromFloat(0.1295))
	assert.Equal(t, int64(9_180), Round(raw, 10, RoundHalfUp))
}
