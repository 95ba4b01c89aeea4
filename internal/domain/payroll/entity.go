package payroll

import "time"

// MonthlySheet is the persisted pay sheet for one company and month.
type MonthlySheet struct {
	ID        string
	CompanyID string
	Year      int
	Month     int
	Rows      []Row
	IsClosed  bool
	UpdatedAt time.Time
}

// MonthRef identifies one sheet period of a company.
type MonthRef struct {
	Year     int  `json:"year"`
	Month    int  `json:"month"`
	IsClosed bool `json:"is_closed"`
}

// Deductions are the statutory amounts computed for one row, in integer
// currency units.
type Deductions struct {
	NationalPension     int64 `json:"national_pension"`
	HealthInsurance     int64 `json:"health_insurance"`
	LongTermCare        int64 `json:"long_term_care"`
	EmploymentInsurance int64 `json:"employment_insurance"`
	IncomeTax           int64 `json:"income_tax"`
	LocalIncomeTax      int64 `json:"local_income_tax"`
}

// DeductionTrace records the intermediate figures behind a Deductions result
// so a payroll admin can audit how an amount was reached.
type DeductionTrace struct {
	DefaultBase             int64 `json:"default_base"`
	BaseNationalPension     int64 `json:"base_national_pension"`
	BaseHealthInsurance     int64 `json:"base_health_insurance"`
	BaseEmploymentInsurance int64 `json:"base_employment_insurance"`
	Dependents              int64 `json:"dependents"`
	Wage                    int64 `json:"wage"`
}

// Apply writes the computed amounts back into the row under the statutory
// column labels.
func (d Deductions) Apply(row Row) {
	row[FieldNationalPension] = d.NationalPension
	row[FieldHealthInsurance] = d.HealthInsurance
	row[FieldLongTermCare] = d.LongTermCare
	row[FieldEmploymentInsurance] = d.EmploymentInsurance
	row[FieldIncomeTax] = d.IncomeTax
	row[FieldLocalIncomeTax] = d.LocalIncomeTax
}
