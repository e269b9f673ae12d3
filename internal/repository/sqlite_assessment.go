package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/csfplan/internal/db"
	"github.com/alexanderramin/csfplan/internal/domain"
)

// SQLiteAssessmentRepo implements AssessmentRepo using a SQLite database.
type SQLiteAssessmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssessmentRepo creates a new SQLiteAssessmentRepo.
func NewSQLiteAssessmentRepo(db db.DBTX) *SQLiteAssessmentRepo {
	return &SQLiteAssessmentRepo{db: db}
}

const assessmentColumns = `profile_id, subcategory_id, implementation_level, maturity_score, confidence_level, notes, assessed_at`

// Upsert records the assessment, replacing any earlier one for the same
// (profile, subcategory) pair.
func (r *SQLiteAssessmentRepo) Upsert(ctx context.Context, a *domain.Assessment) error {
	query := `INSERT INTO assessments (` + assessmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id, subcategory_id) DO UPDATE SET
			implementation_level = excluded.implementation_level,
			maturity_score = excluded.maturity_score,
			confidence_level = excluded.confidence_level,
			notes = excluded.notes,
			assessed_at = excluded.assessed_at`
	_, err := r.db.ExecContext(ctx, query,
		a.ProfileID,
		a.SubcategoryID,
		string(a.Level),
		a.MaturityScore,
		string(a.ConfidenceLevel),
		a.Notes,
		formatTime(a.AssessedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting assessment %s/%s: %w", a.ProfileID, a.SubcategoryID, err)
	}
	return nil
}

func (r *SQLiteAssessmentRepo) Get(ctx context.Context, profileID, subcategoryID string) (*domain.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE profile_id = ? AND subcategory_id = ?`
	a, err := scanAssessment(r.db.QueryRowContext(ctx, query, profileID, subcategoryID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("assessment %s/%s: %w", profileID, subcategoryID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning assessment: %w", err)
	}
	return &a, nil
}

// ListByProfile returns every assessment of the profile ordered by subcategory.
func (r *SQLiteAssessmentRepo) ListByProfile(ctx context.Context, profileID string) ([]domain.Assessment, error) {
	query := `SELECT ` + assessmentColumns + ` FROM assessments WHERE profile_id = ? ORDER BY subcategory_id`
	rows, err := r.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	defer rows.Close()

	assessments := []domain.Assessment{}
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assessment row: %w", err)
		}
		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assessments: %w", err)
	}
	return assessments, nil
}

func (r *SQLiteAssessmentRepo) Delete(ctx context.Context, profileID, subcategoryID string) error {
	query := `DELETE FROM assessments WHERE profile_id = ? AND subcategory_id = ?`
	if _, err := r.db.ExecContext(ctx, query, profileID, subcategoryID); err != nil {
		return fmt.Errorf("deleting assessment: %w", err)
	}
	return nil
}

func scanAssessment(row rowScanner) (domain.Assessment, error) {
	var a domain.Assessment
	var level, confidence, assessedAt string
	if err := row.Scan(&a.ProfileID, &a.SubcategoryID, &level, &a.MaturityScore, &confidence, &a.Notes, &assessedAt); err != nil {
		return domain.Assessment{}, err
	}
	a.Level = domain.ImplementationLevel(level)
	a.ConfidenceLevel = domain.ConfidenceLevel(confidence)
	t, err := parseTime("assessed_at", assessedAt)
	if err != nil {
		return domain.Assessment{}, err
	}
	a.AssessedAt = t
	return a, nil
}
