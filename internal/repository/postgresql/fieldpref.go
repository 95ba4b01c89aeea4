package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/traum0123-design/traum0123/internal/domain/fieldpref"
	"github.com/traum0123-design/traum0123/internal/pkg/database"
)

type preferenceRepository struct {
	db *database.DB
}

func NewPreferenceRepository(db *database.DB) fieldpref.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) ListByCompany(ctx context.Context, companyID string) ([]fieldpref.Preference, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, field, field_group, alias,
			   exempt_enabled, exempt_limit, ins_nhis, ins_ei, prorate, updated_at
		FROM field_preferences
		WHERE company_id = $1
		ORDER BY field
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list field preferences: %w", err)
	}
	defer rows.Close()

	var prefs []fieldpref.Preference
	for rows.Next() {
		var p fieldpref.Preference
		err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Field, &p.Group, &p.Alias,
			&p.ExemptEnabled, &p.ExemptLimit, &p.InsNHIS, &p.InsEI, &p.Prorate, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field preference: %w", err)
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref fieldpref.Preference) (fieldpref.Preference, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO field_preferences (
			company_id, field, field_group, alias,
			exempt_enabled, exempt_limit, ins_nhis, ins_ei, prorate
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id, field) DO UPDATE SET
			field_group = EXCLUDED.field_group,
			alias = EXCLUDED.alias,
			exempt_enabled = EXCLUDED.exempt_enabled,
			exempt_limit = EXCLUDED.exempt_limit,
			ins_nhis = EXCLUDED.ins_nhis,
			ins_ei = EXCLUDED.ins_ei,
			prorate = EXCLUDED.prorate,
			updated_at = NOW()
		RETURNING id, company_id, field, field_group, alias,
			exempt_enabled, exempt_limit, ins_nhis, ins_ei, prorate, updated_at
	`

	var p fieldpref.Preference
	err := q.QueryRow(ctx, query,
		pref.CompanyID, pref.Field, pref.Group, pref.Alias,
		pref.ExemptEnabled, pref.ExemptLimit, pref.InsNHIS, pref.InsEI, pref.Prorate,
	).Scan(
		&p.ID, &p.CompanyID, &p.Field, &p.Group, &p.Alias,
		&p.ExemptEnabled, &p.ExemptLimit, &p.InsNHIS, &p.InsEI, &p.Prorate, &p.UpdatedAt,
	)
	if err != nil {
		return fieldpref.Preference{}, fmt.Errorf("failed to upsert field preference: %w", err)
	}
	return p, nil
}

type extraFieldRepository struct {
	db *database.DB
}

func NewExtraFieldRepository(db *database.DB) fieldpref.ExtraFieldRepository {
	return &extraFieldRepository{db: db}
}

func (r *extraFieldRepository) ListByCompany(ctx context.Context, companyID string) ([]fieldpref.ExtraField, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, label, field_type, position
		FROM extra_fields
		WHERE company_id = $1
		ORDER BY position, label
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list extra fields: %w", err)
	}
	defer rows.Close()

	var fields []fieldpref.ExtraField
	for rows.Next() {
		var f fieldpref.ExtraField
		if err := rows.Scan(&f.ID, &f.CompanyID, &f.Name, &f.Label, &f.Type, &f.Position); err != nil {
			return nil, fmt.Errorf("failed to scan extra field: %w", err)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

func (r *extraFieldRepository) Create(ctx context.Context, field fieldpref.ExtraField) (fieldpref.ExtraField, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO extra_fields (company_id, name, label, field_type, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, company_id, name, label, field_type, position
	`

	var f fieldpref.ExtraField
	err := q.QueryRow(ctx, query,
		field.CompanyID, field.Name, field.Label, field.Type, field.Position,
	).Scan(&f.ID, &f.CompanyID, &f.Name, &f.Label, &f.Type, &f.Position)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fieldpref.ExtraField{}, fieldpref.ErrExtraFieldLabelExists
		}
		return fieldpref.ExtraField{}, fmt.Errorf("failed to create extra field: %w", err)
	}
	return f, nil
}

func (r *extraFieldRepository) ExistsByLabel(ctx context.Context, companyID, label string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM extra_fields WHERE company_id = $1 AND label = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, companyID, label).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check extra field label: %w", err)
	}
	return exists, nil
}

func (r *extraFieldRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM extra_fields WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete extra field: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fieldpref.ErrExtraFieldNotFound
	}
	return nil
}
