package domain

import (
	"fmt"
	"time"
)

const MaxMaturity = 5

// Assessment records a profile's implementation state for one subcategory.
// (ProfileID, SubcategoryID) is unique.
type Assessment struct {
	ProfileID       string
	SubcategoryID   string
	Level           ImplementationLevel
	MaturityScore   int
	ConfidenceLevel ConfidenceLevel
	Notes           string
	AssessedAt      time.Time
}

func (a *Assessment) Validate() error {
	if a.ProfileID == "" {
		return fmt.Errorf("assessment profile id is required")
	}
	if !IsSubcategoryID(a.SubcategoryID) {
		return fmt.Errorf("invalid subcategory ID format: %s", a.SubcategoryID)
	}
	if !a.Level.Valid() {
		return fmt.Errorf("invalid implementation level %q for %s", a.Level, a.SubcategoryID)
	}
	if a.MaturityScore < 0 || a.MaturityScore > MaxMaturity {
		return fmt.Errorf("maturity score for %s must be between 0 and %d, got %d", a.SubcategoryID, MaxMaturity, a.MaturityScore)
	}
	if a.ConfidenceLevel != "" && !ValidConfidenceLevels[string(a.ConfidenceLevel)] {
		return fmt.Errorf("invalid confidence level %q for %s", a.ConfidenceLevel, a.SubcategoryID)
	}
	return nil
}

// UnassessedAssessment is the zeroed state synthesized for a subcategory that
// has no recorded assessment.
func UnassessedAssessment(profileID, subcategoryID string) Assessment {
	return Assessment{
		ProfileID:     profileID,
		SubcategoryID: subcategoryID,
		Level:         LevelNotImplemented,
		MaturityScore: 0,
	}
}

// FullyImplementedAssessment is the implicit target used in single-profile mode.
func FullyImplementedAssessment(subcategoryID string) Assessment {
	return Assessment{
		SubcategoryID: subcategoryID,
		Level:         LevelFullyImplemented,
		MaturityScore: MaxMaturity,
	}
}
