package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/traum0123-design/traum0123/internal/domain/withholding"
	"github.com/traum0123-design/traum0123/internal/pkg/database"
)

type withholdingRepository struct {
	db *database.DB
}

func NewWithholdingRepository(db *database.DB) withholding.Repository {
	return &withholdingRepository{db: db}
}

// ReplaceYear deletes the year and bulk-loads the replacement cells in one
// transaction so a failed import never leaves a half-replaced table.
func (r *withholdingRepository) ReplaceYear(ctx context.Context, year int, cells []withholding.Cell) (int, error) {
	var inserted int
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM withholding_cells WHERE year = $1`, year); err != nil {
			return fmt.Errorf("failed to clear withholding year: %w", err)
		}

		rows := make([][]any, 0, len(cells))
		for _, c := range cells {
			rows = append(rows, []any{c.Year, c.Dependents, c.Wage, c.Tax})
		}
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"withholding_cells"},
			[]string{"year", "dependents", "wage", "tax"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to load withholding cells: %w", err)
		}
		inserted = int(n)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *withholdingRepository) ListByYear(ctx context.Context, year int) ([]withholding.Cell, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT year, dependents, wage, tax
		FROM withholding_cells
		WHERE year = $1
		ORDER BY dependents, wage
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list withholding cells: %w", err)
	}
	defer rows.Close()

	var cells []withholding.Cell
	for rows.Next() {
		var c withholding.Cell
		if err := rows.Scan(&c.Year, &c.Dependents, &c.Wage, &c.Tax); err != nil {
			return nil, fmt.Errorf("failed to scan withholding cell: %w", err)
		}
		cells = append(cells, c)
	}
	return cells, rows.Err()
}

func (r *withholdingRepository) Years(ctx context.Context) ([]withholding.YearCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT year, COUNT(*)
		FROM withholding_cells
		GROUP BY year
		ORDER BY year
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list withholding years: %w", err)
	}
	defer rows.Close()

	var years []withholding.YearCount
	for rows.Next() {
		var yc withholding.YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan withholding year: %w", err)
		}
		years = append(years, yc)
	}
	return years, rows.Err()
}
