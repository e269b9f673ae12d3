package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/repository"
)

type assessmentService struct {
	assessments repository.AssessmentRepo
	profiles    repository.ProfileReader
	taxonomy    repository.TaxonomyReader
}

func NewAssessmentService(assessments repository.AssessmentRepo, profiles repository.ProfileReader, taxonomy repository.TaxonomyReader) AssessmentService {
	return &assessmentService{assessments: assessments, profiles: profiles, taxonomy: taxonomy}
}

// Set records an assessment after checking that the profile exists and the
// subcategory is in the catalog.
func (s *assessmentService) Set(ctx context.Context, a *domain.Assessment) error {
	if a.AssessedAt.IsZero() {
		a.AssessedAt = time.Now().UTC()
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := s.profiles.GetByID(ctx, a.ProfileID); err != nil {
		return err
	}
	node, err := s.taxonomy.GetByID(ctx, a.SubcategoryID)
	if err != nil {
		return err
	}
	if node.Type != domain.NodeSubcategory {
		return fmt.Errorf("%s is a %s, not a subcategory", node.ID, node.Type)
	}
	return s.assessments.Upsert(ctx, a)
}

func (s *assessmentService) ListByProfile(ctx context.Context, profileID string) ([]domain.Assessment, error) {
	return s.assessments.ListByProfile(ctx, profileID)
}

func (s *assessmentService) Delete(ctx context.Context, profileID, subcategoryID string) error {
	return s.assessments.Delete(ctx, profileID, subcategoryID)
}
