package database

import (
	"context"
	"fmt"
)

// catalogSchema creates the catalog_items table. Statements are idempotent.
const catalogSchema = `
CREATE TABLE IF NOT EXISTS catalog_items (
	kind            TEXT        NOT NULL,
	id              TEXT        NOT NULL,
	position        INTEGER     NOT NULL DEFAULT 0,
	name            TEXT        NOT NULL DEFAULT '',
	location        TEXT,
	property_type   TEXT,
	project_status  TEXT,
	specializations TEXT[],
	price_min       DOUBLE PRECISION,
	price_max       DOUBLE PRECISION,
	roi             DOUBLE PRECISION,
	rental_yield    DOUBLE PRECISION,
	rating          DOUBLE PRECISION,
	delivery_rate   DOUBLE PRECISION,
	success_score   DOUBLE PRECISION,
	units_left      INTEGER,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (kind, id)
);

CREATE INDEX IF NOT EXISTS catalog_items_kind_position_idx ON catalog_items (kind, position);
`

// EnsureSchema creates the tables the catalog repository reads from.
func (db *Database) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, catalogSchema); err != nil {
		return fmt.Errorf("failed to apply catalog schema: %w", err)
	}
	return nil
}
