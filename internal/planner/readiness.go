package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/csfplan/internal/domain"
)

// Blocker is one unmet prerequisite of a subcategory. Explicit edges carry
// the prerequisite subcategory; implicit function-chain entries carry only
// the prerequisite function.
type Blocker struct {
	DependsOn string
	Function  domain.Function
	Strength  int
	Type      domain.DependencyType
	Hard      bool
	Implicit  bool
}

// Description renders the blocker for reports.
func (b Blocker) Description() string {
	if b.Implicit {
		return fmt.Sprintf("%s foundation", b.Function)
	}
	kind := "soft"
	if b.Hard {
		kind = "hard"
	}
	return fmt.Sprintf("%s (%s %s, strength %d)", b.DependsOn, kind, b.Type, b.Strength)
}

// Readiness is the dependency status of one subcategory.
type Readiness struct {
	SubcategoryID string
	Status        domain.ReadinessStatus
	Hard          []Blocker
	Soft          []Blocker
}

// Blockers returns hard entries followed by soft entries.
func (r Readiness) Blockers() []Blocker {
	out := make([]Blocker, 0, len(r.Hard)+len(r.Soft))
	out = append(out, r.Hard...)
	return append(out, r.Soft...)
}

// BlockerSummary joins blocker descriptions, or returns "" when there are none.
func (r Readiness) BlockerSummary() string {
	blockers := r.Blockers()
	parts := make([]string, len(blockers))
	for i, b := range blockers {
		parts[i] = b.Description()
	}
	return strings.Join(parts, "; ")
}

// Resolver derives readiness from a snapshot of the current profile's
// assessments and the explicit dependency edges. It holds no state beyond
// the snapshot it was built from.
type Resolver struct {
	levels      map[string]domain.ImplementationLevel
	edges       map[string][]domain.DependencyEdge
	hasProgress map[domain.Function]bool
}

// NewResolver indexes the snapshot. Unassessed subcategories count as
// not implemented.
func NewResolver(current []domain.Assessment, edges []domain.DependencyEdge) *Resolver {
	r := &Resolver{
		levels:      make(map[string]domain.ImplementationLevel, len(current)),
		edges:       make(map[string][]domain.DependencyEdge),
		hasProgress: make(map[domain.Function]bool),
	}
	for _, a := range current {
		r.levels[a.SubcategoryID] = a.Level
		if a.Level.HasProgress() {
			r.hasProgress[domain.FunctionOf(a.SubcategoryID)] = true
		}
	}
	for _, e := range edges {
		r.edges[e.SubcategoryID] = append(r.edges[e.SubcategoryID], e)
	}
	return r
}

func (r *Resolver) implemented(subcategoryID string) bool {
	lv, ok := r.levels[subcategoryID]
	return ok && lv != domain.LevelNotImplemented
}

// Resolve computes the readiness of one subcategory.
func (r *Resolver) Resolve(subcategoryID string) Readiness {
	res := Readiness{SubcategoryID: subcategoryID}

	for _, e := range r.edges[subcategoryID] {
		if r.implemented(e.DependsOnID) {
			continue
		}
		b := Blocker{
			DependsOn: e.DependsOnID,
			Function:  domain.FunctionOf(e.DependsOnID),
			Strength:  e.Strength,
			Type:      e.Type,
			Hard:      e.IsHard(),
		}
		if b.Hard {
			res.Hard = append(res.Hard, b)
		} else {
			res.Soft = append(res.Soft, b)
		}
	}

	for _, fn := range FunctionPrerequisites(domain.FunctionOf(subcategoryID)) {
		if !r.hasProgress[fn] {
			res.Soft = append(res.Soft, Blocker{Function: fn, Implicit: true})
		}
	}

	switch {
	case len(res.Hard) > 0:
		res.Status = domain.StatusBlocked
	case len(res.Soft) > 0:
		res.Status = domain.StatusPartial
	default:
		res.Status = domain.StatusReady
	}
	return res
}

// ResolveReadiness computes readiness for every listed subcategory.
func ResolveReadiness(subcategoryIDs []string, current []domain.Assessment, edges []domain.DependencyEdge) map[string]Readiness {
	r := NewResolver(current, edges)
	out := make(map[string]Readiness, len(subcategoryIDs))
	for _, id := range subcategoryIDs {
		out[id] = r.Resolve(id)
	}
	return out
}
