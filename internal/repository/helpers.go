package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/csfplan/internal/domain"
)

// ErrNotFound is returned (wrapped) when a lookup by identifier matches no row.
var ErrNotFound = errors.New("not found")

// nullableString converts an empty string to SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the int value.
func nullableIntToValue(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullIntToPtr converts a scanned sql.NullInt64 back into a *int.
func nullIntToPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// formatTime stores timestamps as RFC3339 UTC, substituting now for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return nowUTC()
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(column, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// functionFilter builds a "col LIKE 'XX.%' OR ..." clause restricting rows to
// the given functions. An empty scope yields no clause.
func functionFilter(column string, functions []domain.Function) (string, []interface{}) {
	if len(functions) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(functions))
	args := make([]interface{}, 0, len(functions))
	for _, f := range functions {
		clauses = append(clauses, column+" LIKE ?")
		args = append(args, string(f)+".%")
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args
}
