package domain

import "fmt"

// HardBlockingStrength is the minimum edge strength that blocks a dependent
// item outright while its prerequisite is unmet.
const HardBlockingStrength = 8

// DependencyEdge states that SubcategoryID should follow DependsOnID.
type DependencyEdge struct {
	SubcategoryID string
	DependsOnID   string
	Strength      int
	Type          DependencyType
}

func (d *DependencyEdge) Validate() error {
	if !IsSubcategoryID(d.SubcategoryID) {
		return fmt.Errorf("invalid subcategory ID format: %s", d.SubcategoryID)
	}
	if !IsSubcategoryID(d.DependsOnID) {
		return fmt.Errorf("invalid depends-on subcategory ID format: %s", d.DependsOnID)
	}
	if d.SubcategoryID == d.DependsOnID {
		return fmt.Errorf("subcategory %s cannot depend on itself", d.SubcategoryID)
	}
	if d.Strength < 1 || d.Strength > 10 {
		return fmt.Errorf("dependency strength must be between 1 and 10, got %d", d.Strength)
	}
	if !ValidDependencyTypes[string(d.Type)] {
		return fmt.Errorf("invalid dependency type %q", d.Type)
	}
	return nil
}

// IsHard reports whether the edge blocks its dependent while unmet.
func (d *DependencyEdge) IsHard() bool {
	return d.Strength >= HardBlockingStrength
}
