package postgresql

import (
	"context"
	"fmt"

	"github.com/traum0123-design/traum0123/internal/pkg/database"
)

// Migrate creates the schema on startup when it does not exist yet. The
// statements are idempotent, so running against an initialized database is a
// no-op.
func Migrate(ctx context.Context, db *database.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS companies (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			access_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS monthly_sheets (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			year INT NOT NULL,
			month INT NOT NULL,
			rows_json JSONB NOT NULL DEFAULT '[]',
			is_closed BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (company_id, year, month)
		)`,
		`CREATE TABLE IF NOT EXISTS field_preferences (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			field TEXT NOT NULL,
			field_group TEXT NOT NULL DEFAULT '',
			alias TEXT NOT NULL DEFAULT '',
			exempt_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			exempt_limit BIGINT NOT NULL DEFAULT 0,
			ins_nhis BOOLEAN NOT NULL DEFAULT FALSE,
			ins_ei BOOLEAN NOT NULL DEFAULT FALSE,
			prorate BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (company_id, field)
		)`,
		`CREATE TABLE IF NOT EXISTS extra_fields (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			label TEXT NOT NULL,
			field_type TEXT NOT NULL DEFAULT 'number',
			position INT NOT NULL DEFAULT 0,
			UNIQUE (company_id, label)
		)`,
		`CREATE TABLE IF NOT EXISTS policy_settings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			company_id UUID REFERENCES companies(id) ON DELETE CASCADE,
			year INT NOT NULL,
			policy_json TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_policy_settings_scope
			ON policy_settings (year, company_id, updated_at DESC)`,
		`CREATE TABLE IF NOT EXISTS withholding_cells (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			year INT NOT NULL,
			dependents INT NOT NULL,
			wage BIGINT NOT NULL,
			tax BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_withholding_cells_lookup
			ON withholding_cells (year, dependents, wage)`,
	}

	for _, stmt := range statements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %w", err)
		}
	}
	return nil
}
