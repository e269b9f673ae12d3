package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := backfillTaxonomyParents(db); err != nil {
		return fmt.Errorf("backfilling taxonomy parents: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS taxonomy_nodes (
		id          TEXT PRIMARY KEY,
		type        TEXT NOT NULL
		            CHECK(type IN ('function','category','subcategory')),
		parent_id   TEXT REFERENCES taxonomy_nodes(id) ON DELETE CASCADE,
		title       TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_taxonomy_parent ON taxonomy_nodes(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_taxonomy_type ON taxonomy_nodes(type)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		kind       TEXT NOT NULL DEFAULT 'current'
		           CHECK(kind IN ('current','target')),
		org_name   TEXT NOT NULL DEFAULT '',
		industry   TEXT NOT NULL DEFAULT '',
		size       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS assessments (
		profile_id           TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		subcategory_id       TEXT NOT NULL,
		implementation_level TEXT NOT NULL DEFAULT 'not_implemented'
		                     CHECK(implementation_level IN ('not_implemented','partially_implemented','largely_implemented','fully_implemented')),
		maturity_score       INTEGER NOT NULL DEFAULT 0
		                     CHECK(maturity_score BETWEEN 0 AND 5),
		notes                TEXT NOT NULL DEFAULT '',
		assessed_at          TEXT NOT NULL,
		PRIMARY KEY (profile_id, subcategory_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assessments_subcategory ON assessments(subcategory_id)`,

	`CREATE TABLE IF NOT EXISTS dependency_edges (
		subcategory_id            TEXT NOT NULL,
		depends_on_subcategory_id TEXT NOT NULL,
		strength                  INTEGER NOT NULL CHECK(strength BETWEEN 1 AND 10),
		type                      TEXT NOT NULL DEFAULT 'prerequisite'
		                          CHECK(type IN ('prerequisite','enabler','related')),
		PRIMARY KEY (subcategory_id, depends_on_subcategory_id),
		CHECK(subcategory_id != depends_on_subcategory_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_dependency_edges_target ON dependency_edges(depends_on_subcategory_id)`,

	// Per-item criticality weight used by risk scoring (1-10, NULL = unknown).
	`ALTER TABLE taxonomy_nodes ADD COLUMN criticality INTEGER CHECK(criticality IS NULL OR criticality BETWEEN 1 AND 10)`,

	// Assessor confidence for each assessment.
	`ALTER TABLE assessments ADD COLUMN confidence_level TEXT NOT NULL DEFAULT ''`,
}

// backfillTaxonomyParents fills parent_id for rows imported before the
// hierarchy was stored explicitly. Parents are derived from the identifier:
// "GV.OC-01" -> "GV.OC", "GV.OC" -> "GV". Only rows whose derived parent
// exists are updated, so the statement is idempotent.
func backfillTaxonomyParents(db *sql.DB) error {
	stmts := []string{
		`UPDATE taxonomy_nodes SET parent_id = substr(id, 1, 5)
			WHERE type = 'subcategory' AND parent_id IS NULL
			  AND EXISTS (SELECT 1 FROM taxonomy_nodes p WHERE p.id = substr(taxonomy_nodes.id, 1, 5))`,
		`UPDATE taxonomy_nodes SET parent_id = substr(id, 1, 2)
			WHERE type = 'category' AND parent_id IS NULL
			  AND EXISTS (SELECT 1 FROM taxonomy_nodes p WHERE p.id = substr(taxonomy_nodes.id, 1, 2))`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
