package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/repository"
)

type dependencyService struct {
	deps     repository.DependencyRepo
	taxonomy repository.TaxonomyReader
}

func NewDependencyService(deps repository.DependencyRepo, taxonomy repository.TaxonomyReader) DependencyService {
	return &dependencyService{deps: deps, taxonomy: taxonomy}
}

// Add stores an edge between two catalogued subcategories. Re-adding an
// existing pair replaces its strength and type.
func (s *dependencyService) Add(ctx context.Context, e *domain.DependencyEdge) error {
	if e.Type == "" {
		e.Type = domain.DependencyPrerequisite
	}
	if err := e.Validate(); err != nil {
		return err
	}
	for _, id := range []string{e.SubcategoryID, e.DependsOnID} {
		if _, err := s.taxonomy.GetByID(ctx, id); err != nil {
			return fmt.Errorf("dependency endpoint: %w", err)
		}
	}
	return s.deps.Upsert(ctx, e)
}

func (s *dependencyService) Remove(ctx context.Context, subcategoryID, dependsOnID string) error {
	return s.deps.Delete(ctx, subcategoryID, dependsOnID)
}

func (s *dependencyService) List(ctx context.Context) ([]domain.DependencyEdge, error) {
	return s.deps.ListAll(ctx)
}
