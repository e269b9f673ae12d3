package service

import (
	"context"

	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/importer"
)

type GapAnalysisService interface {
	Analyze(ctx context.Context, req contract.GapAnalysisRequest) (*contract.GapAnalysisResponse, error)
}

type PriorityMatrixService interface {
	Build(ctx context.Context, req contract.PriorityMatrixRequest) (*contract.PriorityMatrixResponse, error)
}

type NextActionsService interface {
	Plan(ctx context.Context, req contract.NextActionsRequest) (*contract.NextActionsResponse, error)
}

type ProfileService interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Delete(ctx context.Context, id string) error
	Clone(ctx context.Context, req CloneRequest) (*domain.Profile, error)
}

// CloneRequest copies a profile and its assessments under a new name.
// Adjustments override the copied assessment for their subcategory; their
// ProfileID is ignored.
type CloneRequest struct {
	SourceID    string
	Name        string
	Kind        domain.ProfileKind
	Adjustments []domain.Assessment
}

type AssessmentService interface {
	Set(ctx context.Context, a *domain.Assessment) error
	ListByProfile(ctx context.Context, profileID string) ([]domain.Assessment, error)
	Delete(ctx context.Context, profileID, subcategoryID string) error
}

type DependencyService interface {
	Add(ctx context.Context, e *domain.DependencyEdge) error
	Remove(ctx context.Context, subcategoryID, dependsOnID string) error
	List(ctx context.Context) ([]domain.DependencyEdge, error)
}

// CatalogImportResult counts the taxonomy nodes written by an import.
type CatalogImportResult struct {
	Functions     int
	Categories    int
	Subcategories int
}

type CatalogService interface {
	Import(ctx context.Context, catalog *importer.Catalog) (*CatalogImportResult, error)
	ImportFile(ctx context.Context, path string) (*CatalogImportResult, error)
	// Check returns integrity problems of the stored catalog; the error is
	// reserved for storage failures.
	Check(ctx context.Context) ([]error, error)
	ListSubcategories(ctx context.Context, scope []domain.Function) ([]domain.TaxonomyNode, error)
}

// ImportResult holds the outcome of a profile import.
type ImportResult struct {
	Profile         *domain.Profile
	AssessmentCount int
	DependencyCount int
}

type ImportService interface {
	ImportProfile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProfileFromSchema(ctx context.Context, schema *importer.ProfileSchema) (*ImportResult, error)
}
