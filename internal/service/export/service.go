package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/traum0123-design/traum0123/internal/config"
	"github.com/traum0123-design/traum0123/internal/domain/export"
	"github.com/traum0123-design/traum0123/internal/domain/fieldpref"
	"github.com/traum0123-design/traum0123/internal/domain/payroll"
	"github.com/traum0123-design/traum0123/internal/domain/policy"
	"github.com/traum0123-design/traum0123/internal/service/calculation"
)

const ledgerSheet = "Sheet1"

// Identity and date columns never appear in the amount bands.
var metaFields = map[string]bool{
	payroll.FieldEmployeeCode: true,
	payroll.FieldEmployeeName: true,
	payroll.FieldDepartment:   true,
	payroll.FieldPosition:     true,
	payroll.FieldHireDate:     true,
	payroll.FieldLeaveDate:    true,
	payroll.FieldLeaveStart:   true,
	payroll.FieldLeaveEnd:     true,
	payroll.FieldPeriodStart:  true,
	payroll.FieldPeriodEnd:    true,
	payroll.FieldDependents:   true,
	payroll.FieldPensionBase:  true,
}

var preferredEarnOrder = []string{
	"기본급", "월급여", "상여", "식대", "자가운전보조금", "시간외수당", "연장근로수당", "현장수당", "직급수당", "연차수당", "기타수당",
}

var preferredDeductOrder = []string{
	payroll.FieldNationalPension, payroll.FieldHealthInsurance, payroll.FieldEmploymentInsurance,
	payroll.FieldLongTermCare, payroll.FieldIncomeTax, payroll.FieldLocalIncomeTax,
}

type LedgerServiceImpl struct {
	sheetRepo payroll.SheetRepository
	prefRepo  fieldpref.PreferenceRepository
	extraRepo fieldpref.ExtraFieldRepository
	policySvc policy.PolicyService
	insurance config.InsuranceDefaults
}

func NewLedgerService(
	sheetRepo payroll.SheetRepository,
	prefRepo fieldpref.PreferenceRepository,
	extraRepo fieldpref.ExtraFieldRepository,
	policySvc policy.PolicyService,
	insurance config.InsuranceDefaults,
) export.LedgerService {
	return &LedgerServiceImpl{
		sheetRepo: sheetRepo,
		prefRepo:  prefRepo,
		extraRepo: extraRepo,
		policySvc: policySvc,
		insurance: insurance,
	}
}

// ledgerField is one amount column of the rendered ledger: the sheet field it
// reads from and the label it displays, which may be an alias.
type ledgerField struct {
	Field string
	Label string
}

func (s *LedgerServiceImpl) BuildLedger(ctx context.Context, companyID string, year, month int) ([]byte, string, error) {
	sheet, err := s.sheetRepo.GetSheet(ctx, companyID, year, month)
	if err != nil && !errors.Is(err, payroll.ErrSheetNotFound) {
		return nil, "", err
	}
	rows := sheet.Rows

	prefs, err := s.prefRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	extras, err := s.extraRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	pol, err := s.policySvc.Resolve(ctx, &companyID, year)
	if err != nil {
		return nil, "", err
	}
	cls := calculation.Classify(fieldpref.DefaultColumns(), extras, prefs, s.insurance.BaseExemptions)

	columns := fieldpref.DefaultColumns()
	for _, ef := range extras {
		columns = append(columns, fieldpref.Column{Name: ef.Name, Label: ef.Label, Type: ef.Type})
	}
	// Grouping for the ledger comes straight from stored preferences. The
	// calculator's earnings fallback does not apply here: an unconfigured
	// column earns its place through the label heuristic instead.
	groups := map[string]fieldpref.Group{}
	for _, pref := range prefs {
		if pref.Group != "" {
			groups[pref.Field] = pref.Group
		}
	}
	earnFields, deductFields := selectLedgerFields(columns, rows, cls, groups)

	data, err := renderLedger(rows, earnFields, deductFields, cls, pol, year, month)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("salary-ledger-%04d-%02d.xlsx", year, month)
	return data, filename, nil
}

// selectLedgerFields decides which amount columns the ledger shows and in
// what order. Explicitly grouped fields always appear; ungrouped numeric
// fields fall back to a label-keyword guess but are dropped when the whole
// sheet carries no value for them.
func selectLedgerFields(columns []fieldpref.Column, rows []payroll.Row, cls calculation.Classification, groups map[string]fieldpref.Group) (earn, deduct []ledgerField) {
	seenEarn := map[string]bool{}
	seenDeduct := map[string]bool{}

	appendField := func(group fieldpref.Group, field, label string) {
		key := normalizeLabel(label)
		switch group {
		case fieldpref.GroupEarn:
			if !seenEarn[key] {
				seenEarn[key] = true
				earn = append(earn, ledgerField{Field: field, Label: label})
			}
		case fieldpref.GroupDeduct:
			if !seenDeduct[key] {
				seenDeduct[key] = true
				deduct = append(deduct, ledgerField{Field: field, Label: label})
			}
		}
	}

	for _, col := range columns {
		if col.Type != fieldpref.FieldTypeNumber || metaFields[col.Name] {
			continue
		}
		label := col.Label
		if alias := cls.Aliases[col.Name]; alias != "" {
			label = alias
		}

		switch groups[col.Name] {
		case fieldpref.GroupNone:
			continue
		case fieldpref.GroupEarn:
			appendField(fieldpref.GroupEarn, col.Name, label)
		case fieldpref.GroupDeduct:
			appendField(fieldpref.GroupDeduct, col.Name, label)
		default:
			// Ungrouped: guess from the label, skip all-zero columns.
			if columnTotal(rows, col.Name) == 0 {
				continue
			}
			appendField(guessGroup(label), col.Name, label)
		}
	}

	sortByPreference(earn, preferredEarnOrder)
	sortByPreference(deduct, preferredDeductOrder)
	return earn, deduct
}

func renderLedger(
	rows []payroll.Row,
	earnFields, deductFields []ledgerField,
	cls calculation.Classification,
	pol policy.Effective,
	year, month int,
) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	fixed := []string{payroll.FieldEmployeeCode, payroll.FieldEmployeeName, payroll.FieldDepartment, payroll.FieldPosition}
	earnStart := len(fixed) + 1
	earnTotalCol := earnStart + len(earnFields)
	deductStart := earnTotalCol + 1
	deductTotalCol := deductStart + len(deductFields)
	netCol := deductTotalCol + 1

	// Row 1 carries the band titles, row 2 the per-column labels.
	for i, label := range fixed {
		writeCell(f, i+1, 1, label)
		writeCell(f, i+1, 2, label)
	}
	if len(earnFields) > 0 {
		writeCell(f, earnStart, 1, "수당")
		if err := mergeCells(f, earnStart, 1, earnTotalCol, 1); err != nil {
			return nil, err
		}
	}
	for i, lf := range earnFields {
		writeCell(f, earnStart+i, 2, lf.Label)
	}
	writeCell(f, earnTotalCol, 2, "지급액계")
	if len(deductFields) > 0 {
		writeCell(f, deductStart, 1, "공제")
		if err := mergeCells(f, deductStart, 1, deductTotalCol, 1); err != nil {
			return nil, err
		}
	}
	for i, lf := range deductFields {
		writeCell(f, deductStart+i, 2, lf.Label)
	}
	writeCell(f, deductTotalCol, 2, "공제액계")
	writeCell(f, netCol, 1, "차인지급액")
	writeCell(f, netCol, 2, "차인지급액")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F2F3F5"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	f.SetRowStyle(ledgerSheet, 1, 2, headerStyle)

	numberStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr("#,##0")})
	if err != nil {
		return nil, err
	}

	earnTotals := make([]int64, len(earnFields))
	deductTotals := make([]int64, len(deductFields))
	var sumEarn, sumDeduct int64

	rowIdx := 3
	for _, row := range rows {
		if row == nil {
			continue
		}
		for i, field := range fixed {
			writeCell(f, i+1, rowIdx, row.String(field))
		}

		paidDays, totalDays := calculation.Prorate(row, year, month)
		var earnTotal int64
		for i, lf := range earnFields {
			amount := row.Amount(lf.Field)
			if shouldProrate(lf, cls, pol) && totalDays > 0 {
				amount = amount * int64(paidDays) / int64(totalDays)
			}
			earnTotals[i] += amount
			earnTotal += amount
			writeCell(f, earnStart+i, rowIdx, amount)
		}
		writeCell(f, earnTotalCol, rowIdx, earnTotal)
		sumEarn += earnTotal

		var deductTotal int64
		for i, lf := range deductFields {
			amount := row.Amount(lf.Field)
			deductTotals[i] += amount
			deductTotal += amount
			writeCell(f, deductStart+i, rowIdx, amount)
		}
		writeCell(f, deductTotalCol, rowIdx, deductTotal)
		sumDeduct += deductTotal
		writeCell(f, netCol, rowIdx, earnTotal-deductTotal)
		rowIdx++
	}

	// Totals row.
	if rowIdx > 3 {
		writeCell(f, 1, rowIdx, "합계")
		for i, total := range earnTotals {
			writeCell(f, earnStart+i, rowIdx, total)
		}
		writeCell(f, earnTotalCol, rowIdx, sumEarn)
		for i, total := range deductTotals {
			writeCell(f, deductStart+i, rowIdx, total)
		}
		writeCell(f, deductTotalCol, rowIdx, sumDeduct)
		writeCell(f, netCol, rowIdx, sumEarn-sumDeduct)
		f.SetRowStyle(ledgerSheet, rowIdx, rowIdx, headerStyle)
	}

	if rowIdx >= 3 {
		startCell, _ := excelize.CoordinatesToCellName(earnStart, 3)
		endCell, _ := excelize.CoordinatesToCellName(netCol, rowIdx)
		if err := f.SetCellStyle(ledgerSheet, startCell, endCell, numberStyle); err != nil {
			return nil, err
		}
	}

	first, _ := excelize.ColumnNumberToName(1)
	last, _ := excelize.ColumnNumberToName(netCol)
	if err := f.SetColWidth(ledgerSheet, first, last, 14); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// shouldProrate decides whether day proration applies to an earning column.
// A stored preference flag is authoritative; columns without one prorate
// unless the policy excludes bonus-like fields and the label reads as one.
func shouldProrate(lf ledgerField, cls calculation.Classification, pol policy.Effective) bool {
	if flag, ok := cls.Prorate[lf.Field]; ok {
		return flag
	}
	if pol.Proration.ExcludeBonus && (payroll.IsBonusField(lf.Field) || payroll.IsBonusField(lf.Label)) {
		return false
	}
	return true
}

// guessGroup classifies an unconfigured column by label keywords, mirroring
// how Korean pay-stub columns are conventionally named.
func guessGroup(label string) fieldpref.Group {
	for _, kw := range []string{"수당", "식대", "보조", "상여", "기본급", "월급여"} {
		if strings.Contains(label, kw) {
			return fieldpref.GroupEarn
		}
	}
	for _, kw := range []string{"공제", "세", "연금", "보험", "상환", "정산"} {
		if strings.Contains(label, kw) {
			return fieldpref.GroupDeduct
		}
	}
	return fieldpref.GroupEarn
}

func columnTotal(rows []payroll.Row, field string) int64 {
	var total int64
	for _, row := range rows {
		if row != nil {
			total += row.Amount(field)
		}
	}
	return total
}

func sortByPreference(fields []ledgerField, preferred []string) {
	rank := make(map[string]int, len(preferred))
	for i, name := range preferred {
		rank[name] = i
	}
	sort.SliceStable(fields, func(i, j int) bool {
		ri, ok := rank[fields[i].Label]
		if !ok {
			ri = len(preferred) + 1
		}
		rj, ok := rank[fields[j].Label]
		if !ok {
			rj = len(preferred) + 1
		}
		if ri != rj {
			return ri < rj
		}
		return fields[i].Label < fields[j].Label
	})
}

func normalizeLabel(label string) string {
	return strings.Join(strings.Fields(label), "")
}

func writeCell(f *excelize.File, col, row int, value any) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	_ = f.SetCellValue(ledgerSheet, cell, value)
}

func mergeCells(f *excelize.File, startCol, startRow, endCol, endRow int) error {
	start, _ := excelize.CoordinatesToCellName(startCol, startRow)
	end, _ := excelize.CoordinatesToCellName(endCol, endRow)
	return f.MergeCell(ledgerSheet, start, end)
}

func ptr[T any](v T) *T {
	return &v
}
