package importer

import (
	"time"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/google/uuid"
)

// ConvertedProfile holds the domain objects produced from a profile import.
type ConvertedProfile struct {
	Profile      *domain.Profile
	Assessments  []*domain.Assessment
	Dependencies []*domain.DependencyEdge
}

// Convert transforms a validated ProfileSchema into domain objects ready for
// persistence. Call ValidateProfileSchema first; Convert assumes the schema
// is valid.
func Convert(schema *ProfileSchema) *ConvertedProfile {
	now := time.Now().UTC()

	profile := &domain.Profile{
		ID:        uuid.New().String(),
		Name:      schema.Profile.Name,
		Kind:      domain.ProfileKind(schema.Profile.Kind),
		OrgName:   schema.Profile.OrgName,
		Industry:  schema.Profile.Industry,
		Size:      schema.Profile.Size,
		CreatedAt: now,
		UpdatedAt: now,
	}

	out := &ConvertedProfile{
		Profile:      profile,
		Assessments:  make([]*domain.Assessment, 0, len(schema.Assessments)),
		Dependencies: make([]*domain.DependencyEdge, 0, len(schema.Dependencies)),
	}

	for _, a := range schema.Assessments {
		level, _ := domain.ParseImplementationLevel(a.Level)
		maturity := domain.IntFromPtrWithDefault(level.DefaultMaturity(), a.MaturityScore)
		out.Assessments = append(out.Assessments, &domain.Assessment{
			ProfileID:       profile.ID,
			SubcategoryID:   a.SubcategoryID,
			Level:           level,
			MaturityScore:   maturity,
			ConfidenceLevel: domain.ConfidenceLevel(a.ConfidenceLevel),
			Notes:           a.Notes,
			AssessedAt:      now,
		})
	}

	for _, d := range schema.Dependencies {
		typ := domain.Coalesce(domain.DependencyType(d.Type), domain.DependencyPrerequisite)
		out.Dependencies = append(out.Dependencies, &domain.DependencyEdge{
			SubcategoryID: d.SubcategoryID,
			DependsOnID:   d.DependsOn,
			Strength:      d.Strength,
			Type:          typ,
		})
	}
	return out
}
