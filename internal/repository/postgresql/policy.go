package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/traum0123-design/traum0123/internal/domain/policy"
	"github.com/traum0123-design/traum0123/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.Repository {
	return &policyRepository{db: db}
}

// Get returns the latest stored row for the pair. Global rows are stored
// with a NULL company_id, so the match is on IS NOT DISTINCT FROM.
func (r *policyRepository) Get(ctx context.Context, companyID *string, year int) (policy.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, year, policy_json, updated_at
		FROM policy_settings
		WHERE company_id IS NOT DISTINCT FROM $1 AND year = $2
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var s policy.Setting
	err := q.QueryRow(ctx, query, companyID, year).Scan(
		&s.ID, &s.CompanyID, &s.Year, &s.PolicyJSON, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.Setting{}, policy.ErrPolicyNotFound
		}
		return policy.Setting{}, fmt.Errorf("failed to get policy setting: %w", err)
	}
	return s, nil
}

func (r *policyRepository) Upsert(ctx context.Context, setting policy.Setting) (policy.Setting, error) {
	q := GetQuerier(ctx, r.db)

	// History is append-only: every upsert inserts a new row and Get picks
	// the latest, so earlier documents stay auditable.
	query := `
		INSERT INTO policy_settings (company_id, year, policy_json)
		VALUES ($1, $2, $3)
		RETURNING id, company_id, year, policy_json, updated_at
	`

	var s policy.Setting
	err := q.QueryRow(ctx, query, setting.CompanyID, setting.Year, setting.PolicyJSON).Scan(
		&s.ID, &s.CompanyID, &s.Year, &s.PolicyJSON, &s.UpdatedAt,
	)
	if err != nil {
		return policy.Setting{}, fmt.Errorf("failed to upsert policy setting: %w", err)
	}
	return s, nil
}

func (r *policyRepository) History(ctx context.Context, companyID *string, year int) ([]policy.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, year, policy_json, updated_at
		FROM policy_settings
		WHERE company_id IS NOT DISTINCT FROM $1 AND year = $2
		ORDER BY updated_at DESC
	`

	rows, err := q.Query(ctx, query, companyID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list policy history: %w", err)
	}
	defer rows.Close()

	var settings []policy.Setting
	for rows.Next() {
		var s policy.Setting
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Year, &s.PolicyJSON, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan policy setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}
