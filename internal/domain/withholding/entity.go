package withholding

// Cell is one row of the government withholding table: for a year and
// dependent count, the income tax withheld at and above a monthly wage floor.
// Cells are bulk-imported reference data and never mutated by the calculator.
type Cell struct {
	Year       int   `json:"year"`
	Dependents int   `json:"dependents"`
	Wage       int64 `json:"wage"`
	Tax        int64 `json:"tax"`
}
