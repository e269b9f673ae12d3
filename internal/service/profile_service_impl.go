package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/csfplan/internal/db"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/repository"
	"github.com/google/uuid"
)

type profileService struct {
	profiles repository.ProfileRepo
	uow      db.UnitOfWork
}

func NewProfileService(profiles repository.ProfileRepo, uow db.UnitOfWork) ProfileService {
	return &profileService{profiles: profiles, uow: uow}
}

func (s *profileService) Create(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Kind == "" {
		p.Kind = domain.ProfileCurrent
	}
	if err := p.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.profiles.Create(ctx, p)
}

func (s *profileService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

func (s *profileService) List(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *profileService) Delete(ctx context.Context, id string) error {
	return s.profiles.Delete(ctx, id)
}

// Clone writes the new profile and all of its assessments in one
// transaction; nothing is stored if any write fails.
func (s *profileService) Clone(ctx context.Context, req CloneRequest) (*domain.Profile, error) {
	source, err := s.profiles.GetByID(ctx, req.SourceID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	clone := &domain.Profile{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Kind:      domain.Coalesce(req.Kind, source.Kind),
		OrgName:   source.OrgName,
		Industry:  source.Industry,
		Size:      source.Size,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := clone.Validate(); err != nil {
		return nil, err
	}

	overrides := make(map[string]domain.Assessment, len(req.Adjustments))
	for _, adj := range req.Adjustments {
		adj.ProfileID = clone.ID
		if adj.AssessedAt.IsZero() {
			adj.AssessedAt = now
		}
		if err := adj.Validate(); err != nil {
			return nil, fmt.Errorf("adjustment: %w", err)
		}
		overrides[adj.SubcategoryID] = adj
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProfiles := repository.NewSQLiteProfileRepo(tx)
		txAssessments := repository.NewSQLiteAssessmentRepo(tx)

		if err := txProfiles.Create(ctx, clone); err != nil {
			return err
		}
		existing, err := txAssessments.ListByProfile(ctx, source.ID)
		if err != nil {
			return err
		}
		for _, a := range existing {
			if _, ok := overrides[a.SubcategoryID]; ok {
				continue
			}
			a.ProfileID = clone.ID
			if err := txAssessments.Upsert(ctx, &a); err != nil {
				return fmt.Errorf("copying %s: %w", a.SubcategoryID, err)
			}
		}
		for _, adj := range req.Adjustments {
			a := overrides[adj.SubcategoryID]
			if err := txAssessments.Upsert(ctx, &a); err != nil {
				return fmt.Errorf("adjusting %s: %w", a.SubcategoryID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}
