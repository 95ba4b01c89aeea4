package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/traum0123-design/traum0123/internal/domain/payroll"
)

func TestProrateFullMonth(t *testing.T) {
	paid, total := Prorate(payroll.Row{}, 2025, 10)
	assert.Equal(t, 31, total)
	assert.Equal(t, 31, paid)
}

func TestProrateHireMidMonth(t *testing.T) {
	row := payroll.Row{
		payroll.FieldHireDate:    "2025-10-16",
		payroll.FieldPeriodStart: "2025-10-01",
		payroll.FieldPeriodEnd:   "2025-10-31",
	}
	paid, total := Prorate(row, 2025, 10)
	assert.Equal(t, 31, total)
	assert.Equal(t, 16, paid)
}

func TestProrateLeaveMidMonth(t *testing.T) {
	row := payroll.Row{
		payroll.FieldLeaveDate: "2025-10-10",
	}
	paid, total := Prorate(row, 2025, 10)
	assert.Equal(t, 31, total)
	assert.Equal(t, 10, paid)
}

func TestProrateUnpaidLeaveExclusion(t *testing.T) {
	row := payroll.Row{
		payroll.FieldHireDate:   "2025-10-01",
		payroll.FieldLeaveStart: "2025-10-11",
		payroll.FieldLeaveEnd:   "2025-10-20",
	}
	paid, total := Prorate(row, 2025, 10)
	// 31 days total, 10 active before the leave + 11 after it.
	assert.Equal(t, 31, total)
	assert.Equal(t, 21, paid)
}

func TestProrateOpenEndedUnpaidLeave(t *testing.T) {
	row := payroll.Row{
		payroll.FieldLeaveStart: "2025-10-21",
	}
	paid, total := Prorate(row, 2025, 10)
	assert.Equal(t, 31, total)
	assert.Equal(t, 20, paid)
}

func TestProrateLeaveBeforeHireYieldsZero(t *testing.T) {
	row := payroll.Row{
		payroll.FieldHireDate:  "2025-10-20",
		payroll.FieldLeaveDate: "2025-10-05",
	}
	paid, total := Prorate(row, 2025, 10)
	assert.Equal(t, 31, total)
	assert.Equal(t, 0, paid)
}

func TestProrateInvertedOverrideFallsBackToCalendarMonth(t *testing.T) {
	row := payroll.Row{
		payroll.FieldPeriodStart: "2025-02-20",
		payroll.FieldPeriodEnd:   "2025-02-10",
	}
	paid, total := Prorate(row, 2025, 2)
	assert.Equal(t, 28, total)
	assert.Equal(t, 28, paid)
}

func TestProrateInvalidDatesAreIgnored(t *testing.T) {
	row := payroll.Row{
		payroll.FieldHireDate:  "not a date",
		payroll.FieldLeaveDate: "",
	}
	paid, total := Prorate(row, 2024, 2)
	assert.Equal(t, 29, total)
	assert.Equal(t, 29, paid)
}

func TestProrateBoundsHoldAcrossMonths(t *testing.T) {
	rows := []payroll.Row{
		{},
		{payroll.FieldHireDate: "2025-06-15"},
		{payroll.FieldLeaveDate: "2025-06-01"},
		{payroll.FieldHireDate: "2025-06-30", payroll.FieldLeaveDate: "2025-06-30"},
		{payroll.FieldLeaveStart: "2025-01-01"},
		{payroll.FieldLeaveStart: "2025-06-10", payroll.FieldLeaveEnd: "2025-06-12"},
		{payroll.FieldHireDate: "2030-01-01"},
		{payroll.FieldLeaveDate: "1999-01-01"},
	}
	for year := 2024; year <= 2026; year++ {
		for month := 1; month <= 12; month++ {
			for _, row := range rows {
				paid, total := Prorate(row, year, month)
				assert.GreaterOrEqual(t, paid, 0)
				assert.LessOrEqual(t, paid, total)
				assert.LessOrEqual(t, total, 31)
			}
		}
	}
}
