package fieldpref

import (
	"time"

	"github.com/traum0123-design/traum0123/internal/domain/payroll"
)

// Group classifies a pay-stub column for totals and base calculations.
type Group string

const (
	GroupEarn   Group = "earn"
	GroupDeduct Group = "deduct"
	GroupNone   Group = "none"
)

// FieldType enum
type FieldType string

const (
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
	FieldTypeText   FieldType = "text"
)

// Preference holds the per-company settings of a single pay-stub column.
type Preference struct {
	ID            string
	CompanyID     string
	Field         string
	Group         Group
	Alias         string
	ExemptEnabled bool
	ExemptLimit   int64
	InsNHIS       bool
	InsEI         bool
	Prorate       bool
	UpdatedAt     time.Time
}

// ExtraField is a company-defined column added on top of the built-in sheet
// schema.
type ExtraField struct {
	ID        string
	CompanyID string
	Name      string
	Label     string
	Type      FieldType
	Position  int
}

// Column describes a declared sheet column, built-in or extra.
type Column struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

// DefaultColumns returns the built-in sheet schema every company starts with.
func DefaultColumns() []Column {
	return []Column{
		{Name: payroll.FieldEmployeeCode, Label: payroll.FieldEmployeeCode, Type: FieldTypeText},
		{Name: payroll.FieldEmployeeName, Label: payroll.FieldEmployeeName, Type: FieldTypeText},
		{Name: payroll.FieldDepartment, Label: payroll.FieldDepartment, Type: FieldTypeText},
		{Name: payroll.FieldPosition, Label: payroll.FieldPosition, Type: FieldTypeText},
		{Name: payroll.FieldHireDate, Label: payroll.FieldHireDate, Type: FieldTypeDate},
		{Name: payroll.FieldLeaveDate, Label: payroll.FieldLeaveDate, Type: FieldTypeDate},
		{Name: payroll.FieldLeaveStart, Label: payroll.FieldLeaveStart, Type: FieldTypeDate},
		{Name: payroll.FieldLeaveEnd, Label: payroll.FieldLeaveEnd, Type: FieldTypeDate},
		{Name: payroll.FieldPeriodStart, Label: payroll.FieldPeriodStart, Type: FieldTypeDate},
		{Name: payroll.FieldPeriodEnd, Label: payroll.FieldPeriodEnd, Type: FieldTypeDate},
		{Name: "기본급", Label: "기본급", Type: FieldTypeNumber},
		{Name: "상여", Label: "상여", Type: FieldTypeNumber},
		{Name: "식대", Label: "식대", Type: FieldTypeNumber},
		{Name: "자가운전보조금", Label: "자가운전보조금", Type: FieldTypeNumber},
		{Name: payroll.FieldDependents, Label: payroll.FieldDependents, Type: FieldTypeNumber},
		{Name: payroll.FieldPensionBase, Label: payroll.FieldPensionBase, Type: FieldTypeNumber},
		{Name: payroll.FieldNationalPension, Label: payroll.FieldNationalPension, Type: FieldTypeNumber},
		{Name: payroll.FieldHealthInsurance, Label: payroll.FieldHealthInsurance, Type: FieldTypeNumber},
		{Name: payroll.FieldLongTermCare, Label: payroll.FieldLongTermCare, Type: FieldTypeNumber},
		{Name: payroll.FieldEmploymentInsurance, Label: payroll.FieldEmploymentInsurance, Type: FieldTypeNumber},
		{Name: payroll.FieldIncomeTax, Label: payroll.FieldIncomeTax, Type: FieldTypeNumber},
		{Name: payroll.FieldLocalIncomeTax, Label: payroll.FieldLocalIncomeTax, Type: FieldTypeNumber},
	}
}
