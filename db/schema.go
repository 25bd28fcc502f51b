package db

import (
	"context"
	"fmt"

	"vitrine-backoffice/config"
)

// Monetary columns are NUMERIC so captured amounts round-trip exactly. Quote amounts
// are nullable: rows imported from the legacy export may lack them, and the
// repositories surface those as quote defects instead of failing the whole read.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS suppliers (
		name       TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		sku        TEXT NOT NULL UNIQUE,
		supplier   TEXT,
		cost       NUMERIC(14,4) NOT NULL DEFAULT 0,
		picking    NUMERIC(14,4) NOT NULL DEFAULT 0,
		pricing    JSONB NOT NULL DEFAULT '{"desiredProfit": {}}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS kits (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		pricing    JSONB NOT NULL DEFAULT '{"desiredProfit": {}}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS kit_components (
		kit_id     BIGINT NOT NULL REFERENCES kits(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity   INT NOT NULL CHECK (quantity > 0),
		PRIMARY KEY (kit_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id             TEXT PRIMARY KEY,
		created_at     TIMESTAMPTZ,
		status         TEXT NOT NULL,
		customer_name  TEXT,
		customer_phone TEXT,
		channel        TEXT,
		shipping       NUMERIC(14,4),
		discount       NUMERIC(14,4),
		grand_total    NUMERIC(14,4),
		notes          TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes (created_at)`,
	`CREATE TABLE IF NOT EXISTS quote_lines (
		id                  BIGSERIAL PRIMARY KEY,
		quote_id            TEXT NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
		position            INT NOT NULL,
		item_kind           TEXT NOT NULL,
		item_id             BIGINT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		quantity            INT,
		unit_cost           NUMERIC(14,4),
		unit_sale_price     NUMERIC(14,4)
	)`,
	`CREATE TABLE IF NOT EXISTS financial_goal (
		id            SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		sales_target  NUMERIC(14,2) NOT NULL DEFAULT 0,
		profit_target NUMERIC(14,2) NOT NULL DEFAULT 0,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the tables the application needs when they do not exist yet
func Migrate(ctx context.Context) error {
	logger := config.GetLogger()
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	for i, stmt := range schemaStatements {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}

	logger.Infof("✓ Database schema ready (%d statements)", len(schemaStatements))
	return nil
}
