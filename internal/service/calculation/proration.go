package calculation

import (
	"time"

	"github.com/traum0123-design/traum0123/internal/domain/payroll"
)

// Prorate computes how many days of the pay period the employee is paid for.
// The period defaults to the calendar month of (year, month); a row may carry
// explicit period override dates for companies whose pay period does not
// align with the calendar month. The paid window is the employment window
// (hire..leave) intersected with the period, minus any unpaid-leave overlap.
// Invalid or missing dates simply do not constrain the window.
func Prorate(row payroll.Row, year, month int) (paidDays, totalDays int) {
	periodStart, periodEnd := periodFor(row, year, month)
	totalDays = daysInclusive(periodStart, periodEnd)

	activeStart := periodStart
	if hire, ok := row.Date(payroll.FieldHireDate); ok && hire.After(activeStart) {
		activeStart = hire
	}
	activeEnd := periodEnd
	if leave, ok := row.Date(payroll.FieldLeaveDate); ok && leave.Before(activeEnd) {
		activeEnd = leave
	}
	if activeEnd.Before(activeStart) {
		return 0, totalDays
	}
	paidDays = daysInclusive(activeStart, activeEnd)

	if leaveStart, ok := row.Date(payroll.FieldLeaveStart); ok {
		leaveEnd, okEnd := row.Date(payroll.FieldLeaveEnd)
		if !okEnd {
			leaveEnd = periodEnd
		}
		overlapStart := maxDate(activeStart, maxDate(periodStart, leaveStart))
		overlapEnd := minDate(activeEnd, minDate(periodEnd, leaveEnd))
		if !overlapEnd.Before(overlapStart) {
			paidDays -= daysInclusive(overlapStart, overlapEnd)
			if paidDays < 0 {
				paidDays = 0
			}
		}
	}
	return paidDays, totalDays
}

// periodFor resolves the pay period. Override dates apply only when both
// parse and are ordered; an inverted override falls back to the calendar
// month rather than producing a non-positive period.
func periodFor(row payroll.Row, year, month int) (time.Time, time.Time) {
	start, okStart := row.Date(payroll.FieldPeriodStart)
	end, okEnd := row.Date(payroll.FieldPeriodEnd)
	if okStart && okEnd && !start.After(end) {
		return start, end
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

func daysInclusive(start, end time.Time) int {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

func maxDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func minDate(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
