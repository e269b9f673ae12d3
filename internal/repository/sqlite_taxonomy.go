package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/csfplan/internal/db"
	"github.com/alexanderramin/csfplan/internal/domain"
)

// SQLiteTaxonomyRepo implements TaxonomyRepo using a SQLite database.
type SQLiteTaxonomyRepo struct {
	db db.DBTX
}

// NewSQLiteTaxonomyRepo creates a new SQLiteTaxonomyRepo. The handle may be a
// *sql.DB or a *sql.Tx from a UnitOfWork.
func NewSQLiteTaxonomyRepo(db db.DBTX) *SQLiteTaxonomyRepo {
	return &SQLiteTaxonomyRepo{db: db}
}

const taxonomyColumns = `id, type, parent_id, title, description, criticality`

// Upsert inserts a node or refreshes its descriptive fields. Parents must be
// written before their children.
func (r *SQLiteTaxonomyRepo) Upsert(ctx context.Context, n *domain.TaxonomyNode) error {
	query := `INSERT INTO taxonomy_nodes (id, type, parent_id, title, description, criticality, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			parent_id = excluded.parent_id,
			title = excluded.title,
			description = excluded.description,
			criticality = excluded.criticality`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		string(n.Type),
		nullableString(n.ParentID),
		n.Title,
		n.Description,
		nullableIntToValue(n.Criticality),
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting taxonomy node %s: %w", n.ID, err)
	}
	return nil
}

func (r *SQLiteTaxonomyRepo) GetByID(ctx context.Context, id string) (*domain.TaxonomyNode, error) {
	query := `SELECT ` + taxonomyColumns + ` FROM taxonomy_nodes WHERE id = ?`
	n, err := scanTaxonomyNode(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("taxonomy node %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning taxonomy node: %w", err)
	}
	return &n, nil
}

func (r *SQLiteTaxonomyRepo) ListSubcategories(ctx context.Context, scope []domain.Function) ([]domain.TaxonomyNode, error) {
	query := `SELECT ` + taxonomyColumns + ` FROM taxonomy_nodes WHERE type = 'subcategory'`
	filter, args := functionFilter("id", scope)
	if filter != "" {
		query += ` AND ` + filter
	}
	query += ` ORDER BY id`
	return r.list(ctx, query, args...)
}

func (r *SQLiteTaxonomyRepo) ListAll(ctx context.Context) ([]domain.TaxonomyNode, error) {
	query := `SELECT ` + taxonomyColumns + ` FROM taxonomy_nodes ORDER BY id`
	return r.list(ctx, query)
}

func (r *SQLiteTaxonomyRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM taxonomy_nodes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting taxonomy nodes: %w", err)
	}
	return n, nil
}

func (r *SQLiteTaxonomyRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.TaxonomyNode, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing taxonomy nodes: %w", err)
	}
	defer rows.Close()

	nodes := []domain.TaxonomyNode{}
	for rows.Next() {
		n, err := scanTaxonomyNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning taxonomy row: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating taxonomy nodes: %w", err)
	}
	return nodes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTaxonomyNode(row rowScanner) (domain.TaxonomyNode, error) {
	var n domain.TaxonomyNode
	var typ string
	var parent sql.NullString
	var criticality sql.NullInt64
	if err := row.Scan(&n.ID, &typ, &parent, &n.Title, &n.Description, &criticality); err != nil {
		return domain.TaxonomyNode{}, err
	}
	n.Type = domain.NodeType(typ)
	n.ParentID = parent.String
	n.Criticality = nullIntToPtr(criticality)
	return n, nil
}
