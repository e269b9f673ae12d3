package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/google/uuid"
)

// Profile options
type ProfileOption func(*domain.Profile)

func WithKind(k domain.ProfileKind) ProfileOption {
	return func(p *domain.Profile) {
		p.Kind = k
	}
}

func WithOrg(org, industry, size string) ProfileOption {
	return func(p *domain.Profile) {
		p.OrgName = org
		p.Industry = industry
		p.Size = size
	}
}

func NewTestProfile(name string, opts ...ProfileOption) *domain.Profile {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Profile{
		ID:        uuid.New().String(),
		Name:      name,
		Kind:      domain.ProfileCurrent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Assessment options
type AssessmentOption func(*domain.Assessment)

func WithConfidence(c domain.ConfidenceLevel) AssessmentOption {
	return func(a *domain.Assessment) {
		a.ConfidenceLevel = c
	}
}

func WithNotes(n string) AssessmentOption {
	return func(a *domain.Assessment) {
		a.Notes = n
	}
}

func NewTestAssessment(profileID, subcategoryID string, level domain.ImplementationLevel, maturity int, opts ...AssessmentOption) *domain.Assessment {
	a := &domain.Assessment{
		ProfileID:     profileID,
		SubcategoryID: subcategoryID,
		Level:         level,
		MaturityScore: maturity,
		AssessedAt:    time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Taxonomy options
type NodeOption func(*domain.TaxonomyNode)

func WithCriticality(c int) NodeOption {
	return func(n *domain.TaxonomyNode) {
		n.Criticality = &c
	}
}

func WithTitle(title string) NodeOption {
	return func(n *domain.TaxonomyNode) {
		n.Title = title
	}
}

// NewTestNode builds a catalog node whose type and parent are derived from
// the identifier.
func NewTestNode(id string, opts ...NodeOption) domain.TaxonomyNode {
	typ, _ := domain.NodeTypeOf(id)
	n := domain.TaxonomyNode{
		ID:       id,
		Type:     typ,
		ParentID: domain.ParentOf(id),
		Title:    id + " outcome",
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// SubcategoryNodes builds subcategory nodes for the given identifiers.
func SubcategoryNodes(ids ...string) []domain.TaxonomyNode {
	nodes := make([]domain.TaxonomyNode, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, NewTestNode(id))
	}
	return nodes
}

// SeedCatalog inserts the given subcategories together with their categories
// and functions directly into the taxonomy table.
func SeedCatalog(t *testing.T, db *sql.DB, subcategoryIDs ...string) {
	t.Helper()
	now := time.Now().UTC().Format(time.RFC3339)
	seen := map[string]bool{}
	insert := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		n := NewTestNode(id)
		var parent interface{}
		if n.ParentID != "" {
			parent = n.ParentID
		}
		_, err := db.Exec(`INSERT OR IGNORE INTO taxonomy_nodes (id, type, parent_id, title, description, created_at)
			VALUES (?, ?, ?, ?, '', ?)`, n.ID, string(n.Type), parent, n.Title, now)
		if err != nil {
			t.Fatalf("seeding taxonomy node %s: %v", id, err)
		}
	}
	for _, id := range subcategoryIDs {
		category := domain.ParentOf(id)
		insert(domain.ParentOf(category))
		insert(category)
		insert(id)
	}
}
