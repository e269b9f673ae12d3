package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/csfplan/internal/db"
	"github.com/alexanderramin/csfplan/internal/importer"
	"github.com/alexanderramin/csfplan/internal/repository"
)

type importService struct {
	taxonomy repository.TaxonomyReader
	uow      db.UnitOfWork
}

func NewImportService(taxonomy repository.TaxonomyReader, uow db.UnitOfWork) ImportService {
	return &importService{taxonomy: taxonomy, uow: uow}
}

func (s *importService) ImportProfile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadProfileSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportProfileFromSchema(ctx context.Context, schema *importer.ProfileSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ProfileSchema) (*ImportResult, error) {
	subs, err := s.taxonomy.ListSubcategories(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	catalog := make(map[string]bool, len(subs))
	for _, n := range subs {
		catalog[n.ID] = true
	}
	if errs := importer.ValidateProfileSchema(schema, catalog); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted := importer.Convert(schema)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProfiles := repository.NewSQLiteProfileRepo(tx)
		txAssessments := repository.NewSQLiteAssessmentRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		if err := txProfiles.Create(ctx, converted.Profile); err != nil {
			return fmt.Errorf("creating profile: %w", err)
		}
		for _, a := range converted.Assessments {
			if err := txAssessments.Upsert(ctx, a); err != nil {
				return fmt.Errorf("creating assessment %s: %w", a.SubcategoryID, err)
			}
		}
		for _, d := range converted.Dependencies {
			if err := txDeps.Upsert(ctx, d); err != nil {
				return fmt.Errorf("creating dependency %s -> %s: %w", d.SubcategoryID, d.DependsOnID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Profile:         converted.Profile,
		AssessmentCount: len(converted.Assessments),
		DependencyCount: len(converted.Dependencies),
	}, nil
}
