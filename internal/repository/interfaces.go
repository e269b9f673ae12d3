package repository

import (
	"context"

	"github.com/alexanderramin/csfplan/internal/domain"
)

// TaxonomyReader exposes the read-only outcome catalog.
type TaxonomyReader interface {
	GetByID(ctx context.Context, id string) (*domain.TaxonomyNode, error)
	// ListSubcategories returns subcategories ordered by identifier, limited
	// to the given functions when scope is non-empty.
	ListSubcategories(ctx context.Context, scope []domain.Function) ([]domain.TaxonomyNode, error)
	ListAll(ctx context.Context) ([]domain.TaxonomyNode, error)
}

type TaxonomyRepo interface {
	TaxonomyReader
	Upsert(ctx context.Context, n *domain.TaxonomyNode) error
	Count(ctx context.Context) (int, error)
}

type ProfileReader interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
}

type ProfileRepo interface {
	ProfileReader
	Create(ctx context.Context, p *domain.Profile) error
	List(ctx context.Context) ([]*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	Delete(ctx context.Context, id string) error
}

type AssessmentReader interface {
	ListByProfile(ctx context.Context, profileID string) ([]domain.Assessment, error)
}

type AssessmentRepo interface {
	AssessmentReader
	Get(ctx context.Context, profileID, subcategoryID string) (*domain.Assessment, error)
	Upsert(ctx context.Context, a *domain.Assessment) error
	Delete(ctx context.Context, profileID, subcategoryID string) error
}

type DependencyReader interface {
	ListAll(ctx context.Context) ([]domain.DependencyEdge, error)
}

type DependencyRepo interface {
	DependencyReader
	Upsert(ctx context.Context, d *domain.DependencyEdge) error
	Delete(ctx context.Context, subcategoryID, dependsOnID string) error
	ListPrerequisites(ctx context.Context, subcategoryID string) ([]domain.DependencyEdge, error)
	ListDependents(ctx context.Context, subcategoryID string) ([]domain.DependencyEdge, error)
}
