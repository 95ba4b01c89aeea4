package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/traum0123-design/traum0123/internal/domain/payroll"
	"github.com/traum0123-design/traum0123/internal/pkg/database"
)

type sheetRepository struct {
	db *database.DB
}

func NewSheetRepository(db *database.DB) payroll.SheetRepository {
	return &sheetRepository{db: db}
}

func (r *sheetRepository) GetSheet(ctx context.Context, companyID string, year, month int) (payroll.MonthlySheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, year, month, rows_json, is_closed, updated_at
		FROM monthly_sheets
		WHERE company_id = $1 AND year = $2 AND month = $3
	`

	var (
		sheet    payroll.MonthlySheet
		rowsJSON []byte
	)
	err := q.QueryRow(ctx, query, companyID, year, month).Scan(
		&sheet.ID, &sheet.CompanyID, &sheet.Year, &sheet.Month,
		&rowsJSON, &sheet.IsClosed, &sheet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.MonthlySheet{}, payroll.ErrSheetNotFound
		}
		return payroll.MonthlySheet{}, fmt.Errorf("failed to get monthly sheet: %w", err)
	}

	if len(rowsJSON) > 0 {
		if err := json.Unmarshal(rowsJSON, &sheet.Rows); err != nil {
			return payroll.MonthlySheet{}, fmt.Errorf("failed to decode sheet rows: %w", err)
		}
	}
	return sheet, nil
}

func (r *sheetRepository) UpsertRows(ctx context.Context, companyID string, year, month int, rows []payroll.Row) (payroll.MonthlySheet, error) {
	q := GetQuerier(ctx, r.db)

	if rows == nil {
		rows = []payroll.Row{}
	}
	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return payroll.MonthlySheet{}, fmt.Errorf("failed to encode sheet rows: %w", err)
	}

	query := `
		INSERT INTO monthly_sheets (company_id, year, month, rows_json)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, year, month) DO UPDATE SET
			rows_json = EXCLUDED.rows_json,
			updated_at = NOW()
		RETURNING id, company_id, year, month, is_closed, updated_at
	`

	var sheet payroll.MonthlySheet
	err = q.QueryRow(ctx, query, companyID, year, month, rowsJSON).Scan(
		&sheet.ID, &sheet.CompanyID, &sheet.Year, &sheet.Month,
		&sheet.IsClosed, &sheet.UpdatedAt,
	)
	if err != nil {
		return payroll.MonthlySheet{}, fmt.Errorf("failed to upsert monthly sheet: %w", err)
	}
	sheet.Rows = rows
	return sheet, nil
}

func (r *sheetRepository) SetClosed(ctx context.Context, companyID string, year, month int, closed bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_sheets (company_id, year, month, rows_json, is_closed)
		VALUES ($1, $2, $3, '[]', $4)
		ON CONFLICT (company_id, year, month) DO UPDATE SET
			is_closed = EXCLUDED.is_closed,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, companyID, year, month, closed); err != nil {
		return fmt.Errorf("failed to set month closed state: %w", err)
	}
	return nil
}

func (r *sheetRepository) ListMonths(ctx context.Context, companyID string) ([]payroll.MonthRef, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT year, month, is_closed
		FROM monthly_sheets
		WHERE company_id = $1
		ORDER BY year, month
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sheet months: %w", err)
	}
	defer rows.Close()

	var refs []payroll.MonthRef
	for rows.Next() {
		var ref payroll.MonthRef
		if err := rows.Scan(&ref.Year, &ref.Month, &ref.IsClosed); err != nil {
			return nil, fmt.Errorf("failed to scan sheet month: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
