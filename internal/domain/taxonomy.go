package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	functionIDPattern    = regexp.MustCompile(`^[A-Z]{2}$`)
	categoryIDPattern    = regexp.MustCompile(`^[A-Z]{2}\.[A-Z]{2}$`)
	subcategoryIDPattern = regexp.MustCompile(`^[A-Z]{2}\.[A-Z]{2}-\d{2}$`)
)

// TaxonomyNode is a read-only catalog entry of the outcome taxonomy.
type TaxonomyNode struct {
	ID          string
	Type        NodeType
	ParentID    string
	Title       string
	Description string
	// Criticality is an optional 1-10 weight used for risk scoring.
	Criticality *int
}

// Function returns the function the node belongs to.
func (n *TaxonomyNode) Function() Function {
	return FunctionOf(n.ID)
}

// Validate checks the identifier format against the node type and the
// parent linkage implied by the identifier.
func (n *TaxonomyNode) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("taxonomy node identifier cannot be empty")
	}
	switch n.Type {
	case NodeFunction:
		if !functionIDPattern.MatchString(n.ID) || !Function(n.ID).Valid() {
			return fmt.Errorf("function identifier must be one of GV, ID, PR, DE, RS, RC: %s", n.ID)
		}
		if n.ParentID != "" {
			return fmt.Errorf("function %s cannot have a parent", n.ID)
		}
	case NodeCategory:
		if !categoryIDPattern.MatchString(n.ID) {
			return fmt.Errorf("category identifier must follow XX.YY format: %s", n.ID)
		}
		if n.ParentID != ParentOf(n.ID) {
			return fmt.Errorf("category %s must have parent %s, got %q", n.ID, ParentOf(n.ID), n.ParentID)
		}
	case NodeSubcategory:
		if !subcategoryIDPattern.MatchString(n.ID) {
			return fmt.Errorf("subcategory identifier must follow XX.YY-NN format: %s", n.ID)
		}
		if n.ParentID != ParentOf(n.ID) {
			return fmt.Errorf("subcategory %s must have parent %s, got %q", n.ID, ParentOf(n.ID), n.ParentID)
		}
	default:
		return fmt.Errorf("invalid node type %q", n.Type)
	}
	if n.Criticality != nil && (*n.Criticality < 1 || *n.Criticality > 10) {
		return fmt.Errorf("criticality for %s must be between 1 and 10", n.ID)
	}
	return nil
}

// IsSubcategoryID reports whether id has the XX.YY-NN form.
func IsSubcategoryID(id string) bool {
	return subcategoryIDPattern.MatchString(id)
}

// ParentOf derives the parent identifier from a hierarchical code:
// "GV.OC-01" -> "GV.OC", "GV.OC" -> "GV", "GV" -> "".
func ParentOf(id string) string {
	if i := strings.LastIndex(id, "-"); i > 0 {
		return id[:i]
	}
	if i := strings.LastIndex(id, "."); i > 0 {
		return id[:i]
	}
	return ""
}

// NodeTypeOf infers the node type from the identifier format.
func NodeTypeOf(id string) (NodeType, bool) {
	switch {
	case subcategoryIDPattern.MatchString(id):
		return NodeSubcategory, true
	case categoryIDPattern.MatchString(id):
		return NodeCategory, true
	case functionIDPattern.MatchString(id):
		return NodeFunction, true
	}
	return "", false
}
