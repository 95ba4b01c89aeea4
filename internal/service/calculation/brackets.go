package calculation

import (
	"sort"

	"github.com/traum0123-design/traum0123/internal/domain/withholding"
)

// BracketTable is an immutable index over withholding cells, sorted by
// (year, dependents, wage floor) so lookups stay sub-linear during bulk
// payroll runs. Build one per request from already-loaded cells; it holds no
// shared mutable state.
type BracketTable struct {
	cells []withholding.Cell
}

func NewBracketTable(cells []withholding.Cell) *BracketTable {
	sorted := make([]withholding.Cell, len(cells))
	copy(sorted, cells)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Dependents != b.Dependents {
			return a.Dependents < b.Dependents
		}
		return a.Wage < b.Wage
	})
	return &BracketTable{cells: sorted}
}

// Lookup returns the tax of the cell with the greatest wage floor not
// exceeding wage among cells matching (year, dependents). No matching cell
// means the wage is below the minimum taxable floor: tax is zero.
func (t *BracketTable) Lookup(year, dependents int, wage int64) int64 {
	if t == nil || len(t.cells) == 0 {
		return 0
	}
	// First index strictly greater than (year, dependents, wage).
	idx := sort.Search(len(t.cells), func(i int) bool {
		c := t.cells[i]
		if c.Year != year {
			return c.Year > year
		}
		if c.Dependents != dependents {
			return c.Dependents > dependents
		}
		return c.Wage > wage
	})
	if idx == 0 {
		return 0
	}
	c := t.cells[idx-1]
	if c.Year != year || c.Dependents != dependents {
		return 0
	}
	return c.Tax
}
