package payroll

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one employee line of a monthly pay sheet. Keys are company-defined
// field labels, so there is no fixed schema beyond the well-known fields
// below; values arrive as whatever the client sent (number, formatted string,
// date string, blank).
type Row map[string]any

// Well-known field labels shared between the importer, the calculation
// pipeline and the exporter.
const (
	FieldEmployeeCode = "사원코드"
	FieldEmployeeName = "사원명"
	FieldDepartment   = "부서"
	FieldPosition     = "직급"
	FieldHireDate     = "입사일"
	FieldLeaveDate    = "퇴사일"
	FieldLeaveStart   = "휴직일"
	FieldLeaveEnd     = "휴직종료일"
	FieldPeriodStart  = "월 시작일"
	FieldPeriodEnd    = "월 말일"
	FieldDependents   = "부양가족수"
	FieldPensionBase  = "기준보수월액"

	// Legacy spelling still present in older imported sheets.
	fieldDependentsSpaced = "부양 가족수"
)

// Statutory deduction columns written back by the calculator. These never
// count as earnings, even under the "everything is an earning" fallback.
const (
	FieldNationalPension     = "국민연금"
	FieldHealthInsurance     = "건강보험"
	FieldLongTermCare        = "장기요양보험"
	FieldEmploymentInsurance = "고용보험"
	FieldIncomeTax           = "소득세"
	FieldLocalIncomeTax      = "지방소득세"
)

// StatutoryDeductionFields returns the set of deduction columns the
// calculator owns.
func StatutoryDeductionFields() map[string]bool {
	return map[string]bool{
		FieldNationalPension:     true,
		FieldHealthInsurance:     true,
		FieldLongTermCare:        true,
		FieldEmploymentInsurance: true,
		FieldIncomeTax:           true,
		FieldLocalIncomeTax:      true,
	}
}

// ToAmount coerces an arbitrary cell value to integer currency units.
// Thousands separators are stripped; blank, absent and unparseable values
// coerce to zero. The conversion is total: it never returns an error, because
// a single malformed cell must not block a sheet save.
func ToAmount(value any) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case json.Number:
		return parseAmountString(v.String())
	case decimal.Decimal:
		return v.IntPart()
	case string:
		return parseAmountString(v)
	default:
		return 0
	}
}

func parseAmountString(s string) int64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.IntPart()
}

// Amount returns the coerced value of a field, treating absence as zero.
func (r Row) Amount(field string) int64 {
	if r == nil {
		return 0
	}
	return ToAmount(r[field])
}

// String returns the display text of a field. Non-string values are
// rendered the way the importer received them, with numbers kept free of
// formatting so identity columns round-trip unchanged.
func (r Row) String(field string) string {
	if r == nil {
		return ""
	}
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return decimal.NewFromFloat(v).String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}

// Dependents returns the declared dependent count, defaulting to 1 when the
// field is blank or absent.
func (r Row) Dependents() int64 {
	if r == nil {
		return 1
	}
	raw, ok := r[FieldDependents]
	if !ok || raw == nil || raw == "" {
		raw, ok = r[fieldDependentsSpaced]
		if !ok || raw == nil || raw == "" {
			return 1
		}
	}
	n := ToAmount(raw)
	if n == 0 {
		return 1
	}
	return n
}

// Date parses a date-valued field. Invalid or missing dates report ok=false
// so callers fall back to not constraining the pay period.
func (r Row) Date(field string) (time.Time, bool) {
	if r == nil {
		return time.Time{}, false
	}
	return ParseDateFlex(r[field])
}

// ParseDateFlex is the best-effort date parser shared by the importer, the
// proration engine and the exporter. It accepts time.Time, ISO-8601 strings
// and loosely delimited strings such as "2025.10.16" or "2025/10/16".
func ParseDateFlex(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case string:
		return parseDateString(v)
	default:
		return time.Time{}, false
	}
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	parts := splitDigits(s)
	if len(parts) < 3 {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-1-2", parts[0]+"-"+parts[1]+"-"+parts[2])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func splitDigits(s string) []string {
	var parts []string
	var cur strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			cur.WriteRune(r)
			continue
		}
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

// IsBonusField reports whether a field name denotes a one-off bonus-like
// payment rather than a recurring wage component.
func IsBonusField(name string) bool {
	return strings.Contains(name, "상여") || strings.Contains(strings.ToLower(name), "bonus")
}
