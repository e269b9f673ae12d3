package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/csfplan/internal/db"
	"github.com/alexanderramin/csfplan/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo using a SQLite database.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(db db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: db}
}

const dependencyColumns = `subcategory_id, depends_on_subcategory_id, strength, type`

// Upsert stores the edge; re-adding an existing pair updates its strength and type.
func (r *SQLiteDependencyRepo) Upsert(ctx context.Context, d *domain.DependencyEdge) error {
	query := `INSERT INTO dependency_edges (` + dependencyColumns + `) VALUES (?, ?, ?, ?)
		ON CONFLICT(subcategory_id, depends_on_subcategory_id) DO UPDATE SET
			strength = excluded.strength,
			type = excluded.type`
	_, err := r.db.ExecContext(ctx, query, d.SubcategoryID, d.DependsOnID, d.Strength, string(d.Type))
	if err != nil {
		return fmt.Errorf("upserting dependency %s -> %s: %w", d.SubcategoryID, d.DependsOnID, err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, subcategoryID, dependsOnID string) error {
	query := `DELETE FROM dependency_edges WHERE subcategory_id = ? AND depends_on_subcategory_id = ?`
	res, err := r.db.ExecContext(ctx, query, subcategoryID, dependsOnID)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("dependency %s -> %s: %w", subcategoryID, dependsOnID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListAll(ctx context.Context) ([]domain.DependencyEdge, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependency_edges
		ORDER BY subcategory_id, depends_on_subcategory_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()
	return scanDependencies(rows)
}

// ListPrerequisites returns the edges the given subcategory depends on.
func (r *SQLiteDependencyRepo) ListPrerequisites(ctx context.Context, subcategoryID string) ([]domain.DependencyEdge, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependency_edges
		WHERE subcategory_id = ? ORDER BY depends_on_subcategory_id`
	rows, err := r.db.QueryContext(ctx, query, subcategoryID)
	if err != nil {
		return nil, fmt.Errorf("listing prerequisites: %w", err)
	}
	defer rows.Close()
	return scanDependencies(rows)
}

// ListDependents returns the edges of subcategories that depend on the given one.
func (r *SQLiteDependencyRepo) ListDependents(ctx context.Context, subcategoryID string) ([]domain.DependencyEdge, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependency_edges
		WHERE depends_on_subcategory_id = ? ORDER BY subcategory_id`
	rows, err := r.db.QueryContext(ctx, query, subcategoryID)
	if err != nil {
		return nil, fmt.Errorf("listing dependents: %w", err)
	}
	defer rows.Close()
	return scanDependencies(rows)
}

// scanDependencies scans multiple dependency rows from *sql.Rows.
func scanDependencies(rows *sql.Rows) ([]domain.DependencyEdge, error) {
	deps := []domain.DependencyEdge{}
	for rows.Next() {
		var d domain.DependencyEdge
		var typ string
		if err := rows.Scan(&d.SubcategoryID, &d.DependsOnID, &d.Strength, &typ); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		d.Type = domain.DependencyType(typ)
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}
