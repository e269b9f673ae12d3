package importer

import (
	"fmt"

	"github.com/alexanderramin/csfplan/internal/domain"
)

// ValidateProfileSchema checks the schema before conversion and returns every
// problem found. When catalog is non-nil, referenced subcategories must be
// present in it.
func ValidateProfileSchema(schema *ProfileSchema, catalog map[string]bool) []error {
	var errs []error
	errs = append(errs, validateProfile(&schema.Profile)...)
	errs = append(errs, validateAssessments(schema.Assessments, catalog)...)
	errs = append(errs, validateDependencies(schema.Dependencies, catalog)...)
	return errs
}

func validateProfile(p *ProfileImport) []error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("profile.name is required"))
	}
	switch domain.ProfileKind(p.Kind) {
	case domain.ProfileCurrent, domain.ProfileTarget:
	case "":
		errs = append(errs, fmt.Errorf("profile.kind is required"))
	default:
		errs = append(errs, fmt.Errorf("profile.kind: invalid value %q (expected current or target)", p.Kind))
	}
	return errs
}

func validateSubcategoryRef(prefix, id string, catalog map[string]bool) error {
	if !domain.IsSubcategoryID(id) {
		return fmt.Errorf("%s: invalid subcategory identifier %q", prefix, id)
	}
	if catalog != nil && !catalog[id] {
		return fmt.Errorf("%s: subcategory %s is not in the catalog", prefix, id)
	}
	return nil
}

func validateAssessments(items []AssessmentImport, catalog map[string]bool) []error {
	var errs []error
	seen := make(map[string]bool, len(items))

	for i, a := range items {
		prefix := fmt.Sprintf("assessments[%d]", i)
		if err := validateSubcategoryRef(prefix, a.SubcategoryID, catalog); err != nil {
			errs = append(errs, err)
		} else if seen[a.SubcategoryID] {
			errs = append(errs, fmt.Errorf("%s: duplicate assessment for %s", prefix, a.SubcategoryID))
		}
		seen[a.SubcategoryID] = true

		if _, err := domain.ParseImplementationLevel(a.Level); err != nil {
			errs = append(errs, fmt.Errorf("%s.implementation_level: %w", prefix, err))
		}
		if a.MaturityScore != nil && (*a.MaturityScore < 0 || *a.MaturityScore > domain.MaxMaturity) {
			errs = append(errs, fmt.Errorf("%s.maturity_score must be between 0 and %d, got %d", prefix, domain.MaxMaturity, *a.MaturityScore))
		}
		if a.ConfidenceLevel != "" && !domain.ValidConfidenceLevels[a.ConfidenceLevel] {
			errs = append(errs, fmt.Errorf("%s.confidence_level: invalid value %q", prefix, a.ConfidenceLevel))
		}
	}
	return errs
}

func validateDependencies(deps []DependencyImport, catalog map[string]bool) []error {
	var errs []error
	seen := make(map[[2]string]bool, len(deps))

	for i, d := range deps {
		prefix := fmt.Sprintf("dependencies[%d]", i)
		if err := validateSubcategoryRef(prefix+".subcategory_id", d.SubcategoryID, catalog); err != nil {
			errs = append(errs, err)
		}
		if err := validateSubcategoryRef(prefix+".depends_on", d.DependsOn, catalog); err != nil {
			errs = append(errs, err)
		}
		if d.SubcategoryID == d.DependsOn {
			errs = append(errs, fmt.Errorf("%s: %s cannot depend on itself", prefix, d.SubcategoryID))
		}
		key := [2]string{d.SubcategoryID, d.DependsOn}
		if seen[key] {
			errs = append(errs, fmt.Errorf("%s: duplicate dependency %s -> %s", prefix, d.SubcategoryID, d.DependsOn))
		}
		seen[key] = true
		if d.Strength < 1 || d.Strength > 10 {
			errs = append(errs, fmt.Errorf("%s.strength must be between 1 and 10, got %d", prefix, d.Strength))
		}
		if d.Type != "" && !domain.ValidDependencyTypes[d.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, d.Type))
		}
	}
	return errs
}
