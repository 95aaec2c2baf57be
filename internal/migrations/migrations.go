package migrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// idColumn is substituted per dialect.
const idColumn = "{{ID}}"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS drugs (
            id {{ID}},
            code VARCHAR(50) NOT NULL UNIQUE,
            name VARCHAR(50) NOT NULL,
            manufacturer VARCHAR(50) NOT NULL,
            price BIGINT NOT NULL CHECK (price >= 0)
        )`,
	`CREATE TABLE IF NOT EXISTS pharmacies (
            id {{ID}},
            number BIGINT NOT NULL UNIQUE,
            name VARCHAR(50) NOT NULL,
            address VARCHAR(50) NOT NULL,
            phone_number VARCHAR(10) NOT NULL
        )`,
	`CREATE TABLE IF NOT EXISTS requests (
            id {{ID}},
            date VARCHAR(8) NOT NULL,
            pharmacy_id BIGINT NOT NULL,
            fulfillment_date VARCHAR(8),
            FOREIGN KEY(pharmacy_id) REFERENCES pharmacies(id) ON DELETE RESTRICT
        )`,
	`CREATE TABLE IF NOT EXISTS purchases (
            id {{ID}},
            request_id BIGINT NOT NULL,
            drug_id BIGINT NOT NULL,
            quantity BIGINT NOT NULL CHECK (quantity > 0),
            FOREIGN KEY(request_id) REFERENCES requests(id) ON DELETE RESTRICT,
            FOREIGN KEY(drug_id) REFERENCES drugs(id) ON DELETE RESTRICT
        )`,
	`CREATE INDEX IF NOT EXISTS idx_requests_pharmacy_id ON requests(pharmacy_id)`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_request_id ON purchases(request_id)`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_drug_id ON purchases(drug_id)`,
}

// Run creates the pharmacy inventory schema if it does not exist yet. It is
// safe to call on every start.
func Run(ctx context.Context, db *sqlx.DB) error {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() == "pgx" {
		id = "BIGSERIAL PRIMARY KEY"
	}
	for _, stmt := range schema {
		stmt = strings.ReplaceAll(stmt, idColumn, id)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
