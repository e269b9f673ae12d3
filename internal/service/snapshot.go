package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/planner"
	"github.com/alexanderramin/csfplan/internal/repository"
)

// planSnapshot is everything one planning call reads, loaded once up front.
type planSnapshot struct {
	current            *domain.Profile
	target             *domain.Profile // nil in single-profile mode
	catalog            []domain.TaxonomyNode
	currentAssessments []domain.Assessment
	targetAssessments  []domain.Assessment
	edges              []domain.DependencyEdge
}

func (s *planSnapshot) gapInput(scope []domain.Function) planner.GapInput {
	return planner.GapInput{
		Catalog:       s.catalog,
		Current:       s.currentAssessments,
		Target:        s.targetAssessments,
		SingleProfile: s.target == nil,
		Scope:         scope,
	}
}

func (s *planSnapshot) currentSummary() contract.ProfileSummary {
	return contract.NewProfileSummary(s.current, len(s.currentAssessments))
}

func (s *planSnapshot) targetSummary() *contract.ProfileSummary {
	if s.target == nil {
		return nil
	}
	ps := contract.NewProfileSummary(s.target, len(s.targetAssessments))
	return &ps
}

// SnapshotLoader reads a planning snapshot through the narrow reader
// interfaces. deps may be nil when the caller never needs edges.
type SnapshotLoader struct {
	taxonomy    repository.TaxonomyReader
	profiles    repository.ProfileReader
	assessments repository.AssessmentReader
	deps        repository.DependencyReader
}

func NewSnapshotLoader(
	taxonomy repository.TaxonomyReader,
	profiles repository.ProfileReader,
	assessments repository.AssessmentReader,
	deps repository.DependencyReader,
) *SnapshotLoader {
	return &SnapshotLoader{taxonomy: taxonomy, profiles: profiles, assessments: assessments, deps: deps}
}

// Load reads the current profile, the optional target profile, the
// subcategories in scope and, when withEdges is set, every dependency edge.
// Current assessments are loaded for all functions since readiness looks
// across function boundaries.
func (l *SnapshotLoader) Load(ctx context.Context, currentID, targetID string, scope []domain.Function, withEdges bool) (*planSnapshot, error) {
	snap := &planSnapshot{}
	var err error

	if snap.current, err = l.profile(ctx, currentID); err != nil {
		return nil, err
	}
	if snap.currentAssessments, err = l.assessments.ListByProfile(ctx, currentID); err != nil {
		return nil, fmt.Errorf("loading assessments of %s: %w", currentID, err)
	}

	if targetID != "" {
		if snap.target, err = l.profile(ctx, targetID); err != nil {
			return nil, err
		}
		if snap.targetAssessments, err = l.assessments.ListByProfile(ctx, targetID); err != nil {
			return nil, fmt.Errorf("loading assessments of %s: %w", targetID, err)
		}
	}

	if snap.catalog, err = l.taxonomy.ListSubcategories(ctx, scope); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	if withEdges && l.deps != nil {
		if snap.edges, err = l.deps.ListAll(ctx); err != nil {
			return nil, fmt.Errorf("loading dependencies: %w", err)
		}
	}
	return snap, nil
}

func (l *SnapshotLoader) profile(ctx context.Context, id string) (*domain.Profile, error) {
	p, err := l.profiles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, contract.NotFound("profile %s not found", id)
		}
		return nil, fmt.Errorf("loading profile %s: %w", id, err)
	}
	return p, nil
}

func useCaseFields(profileID, targetID string, scope []domain.Function) map[string]any {
	fields := map[string]any{"profile_id": profileID}
	if targetID != "" {
		fields["target_profile_id"] = targetID
	}
	if len(scope) > 0 {
		fields["scope"] = fmt.Sprint(scope)
	}
	return fields
}
