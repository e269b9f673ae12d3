package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/csfplan/internal/db"
	"github.com/alexanderramin/csfplan/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(db db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: db}
}

const profileColumns = `id, name, kind, org_name, industry, size, created_at, updated_at`

func (r *SQLiteProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		string(p.Kind),
		p.OrgName,
		p.Industry,
		p.Size,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

func (r *SQLiteProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	return p, nil
}

func (r *SQLiteProfileRepo) List(ctx context.Context) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return profiles, nil
}

func (r *SQLiteProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET name = ?, kind = ?, org_name = ?, industry = ?, size = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, string(p.Kind), p.OrgName, p.Industry, p.Size, nowUTC(), p.ID)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("profile %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

// Delete removes the profile; its assessments cascade.
func (r *SQLiteProfileRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return nil
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	var kind, createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.Name, &kind, &p.OrgName, &p.Industry, &p.Size, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Kind = domain.ProfileKind(kind)

	var err error
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
