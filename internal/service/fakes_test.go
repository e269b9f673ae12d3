package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/repository"
)

// fakeStore is an in-memory snapshot source. Every read increments reads;
// err or panicMsg, when set, short-circuit every read.
type fakeStore struct {
	profiles    map[string]*domain.Profile
	assessments map[string][]domain.Assessment
	catalog     []domain.TaxonomyNode
	edges       []domain.DependencyEdge

	reads    int
	err      error
	panicMsg string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:    map[string]*domain.Profile{},
		assessments: map[string][]domain.Assessment{},
	}
}

func (f *fakeStore) read() error {
	f.reads++
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.err
}

func (f *fakeStore) addProfile(id string, kind domain.ProfileKind, assessments ...domain.Assessment) {
	f.profiles[id] = &domain.Profile{ID: id, Name: id, Kind: kind}
	for i := range assessments {
		assessments[i].ProfileID = id
	}
	f.assessments[id] = assessments
}

func (f *fakeStore) addSubcategories(ids ...string) {
	for _, id := range ids {
		f.catalog = append(f.catalog, domain.TaxonomyNode{
			ID: id, Type: domain.NodeSubcategory, ParentID: domain.ParentOf(id), Title: id + " outcome",
		})
	}
	sort.Slice(f.catalog, func(i, j int) bool { return f.catalog[i].ID < f.catalog[j].ID })
}

func (f *fakeStore) ListByProfile(_ context.Context, profileID string) ([]domain.Assessment, error) {
	if err := f.read(); err != nil {
		return nil, err
	}
	return append([]domain.Assessment{}, f.assessments[profileID]...), nil
}

type fakeProfiles struct{ *fakeStore }

func (f fakeProfiles) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	if err := f.read(); err != nil {
		return nil, err
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, repository.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

type fakeTaxonomy struct{ *fakeStore }

func (f fakeTaxonomy) GetByID(_ context.Context, id string) (*domain.TaxonomyNode, error) {
	if err := f.read(); err != nil {
		return nil, err
	}
	for _, n := range f.catalog {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, fmt.Errorf("taxonomy node %s: %w", id, repository.ErrNotFound)
}

func (f fakeTaxonomy) ListSubcategories(_ context.Context, scope []domain.Function) ([]domain.TaxonomyNode, error) {
	if err := f.read(); err != nil {
		return nil, err
	}
	allowed := map[domain.Function]bool{}
	for _, fn := range scope {
		allowed[fn] = true
	}
	var out []domain.TaxonomyNode
	for _, n := range f.catalog {
		if len(scope) == 0 || allowed[n.Function()] {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f fakeTaxonomy) ListAll(ctx context.Context) ([]domain.TaxonomyNode, error) {
	return f.ListSubcategories(ctx, nil)
}

type fakeDeps struct{ *fakeStore }

func (f fakeDeps) ListAll(_ context.Context) ([]domain.DependencyEdge, error) {
	if err := f.read(); err != nil {
		return nil, err
	}
	return append([]domain.DependencyEdge{}, f.edges...), nil
}

// recordingObserver keeps every event it receives.
type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func assessed(id string, level domain.ImplementationLevel, maturity int) domain.Assessment {
	return domain.Assessment{SubcategoryID: id, Level: level, MaturityScore: maturity}
}
