package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/csfplan/internal/db"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/importer"
	"github.com/alexanderramin/csfplan/internal/repository"
)

type catalogService struct {
	taxonomy repository.TaxonomyRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCatalogService(taxonomy repository.TaxonomyRepo, uow db.UnitOfWork, observers ...UseCaseObserver) CatalogService {
	return &catalogService{taxonomy: taxonomy, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *catalogService) ImportFile(ctx context.Context, path string) (*CatalogImportResult, error) {
	cat, err := importer.LoadFrameworkCSV(path)
	if err != nil {
		return nil, fmt.Errorf("loading framework file: %w", err)
	}
	return s.Import(ctx, cat)
}

// Import upserts every node of a parsed framework in one transaction after
// checking its integrity. Nodes are written parents first.
func (s *catalogService) Import(ctx context.Context, catalog *importer.Catalog) (*CatalogImportResult, error) {
	if errs := importer.CheckCatalogIntegrity(catalog.Nodes); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTaxonomy := repository.NewSQLiteTaxonomyRepo(tx)
		for i := range catalog.Nodes {
			if err := txTaxonomy.Upsert(ctx, &catalog.Nodes[i]); err != nil {
				return fmt.Errorf("writing %s: %w", catalog.Nodes[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fns, cats, subs := catalog.Counts()
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:    "catalog_import",
		Success: true,
		Fields:  map[string]any{"functions": fns, "categories": cats, "subcategories": subs},
	})
	return &CatalogImportResult{Functions: fns, Categories: cats, Subcategories: subs}, nil
}

func (s *catalogService) Check(ctx context.Context) ([]error, error) {
	nodes, err := s.taxonomy.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return importer.CheckCatalogIntegrity(nodes), nil
}

func (s *catalogService) ListSubcategories(ctx context.Context, scope []domain.Function) ([]domain.TaxonomyNode, error) {
	return s.taxonomy.ListSubcategories(ctx, scope)
}
