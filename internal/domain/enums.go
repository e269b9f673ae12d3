package domain

import (
	"fmt"
	"strings"
)

type NodeType string

const (
	NodeFunction    NodeType = "function"
	NodeCategory    NodeType = "category"
	NodeSubcategory NodeType = "subcategory"
)

type ImplementationLevel string

const (
	LevelNotImplemented       ImplementationLevel = "not_implemented"
	LevelPartiallyImplemented ImplementationLevel = "partially_implemented"
	LevelLargelyImplemented   ImplementationLevel = "largely_implemented"
	LevelFullyImplemented     ImplementationLevel = "fully_implemented"
)

// ImplementationLevels lists every level in ascending order.
var ImplementationLevels = []ImplementationLevel{
	LevelNotImplemented,
	LevelPartiallyImplemented,
	LevelLargelyImplemented,
	LevelFullyImplemented,
}

// Rank returns the position of the level in the fixed order, or -1 when the
// level is unknown.
func (l ImplementationLevel) Rank() int {
	for i, lv := range ImplementationLevels {
		if lv == l {
			return i
		}
	}
	return -1
}

func (l ImplementationLevel) Valid() bool {
	return l.Rank() >= 0
}

// HasProgress reports whether any implementation work has been recorded.
func (l ImplementationLevel) HasProgress() bool {
	return l.Rank() > 0
}

// Label returns the human-readable form, e.g. "Partially Implemented".
func (l ImplementationLevel) Label() string {
	switch l {
	case LevelNotImplemented:
		return "Not Implemented"
	case LevelPartiallyImplemented:
		return "Partially Implemented"
	case LevelLargelyImplemented:
		return "Largely Implemented"
	case LevelFullyImplemented:
		return "Fully Implemented"
	default:
		return string(l)
	}
}

// ParseImplementationLevel accepts both the snake_case wire form and the
// title-case labels used by assessment spreadsheets.
func ParseImplementationLevel(s string) (ImplementationLevel, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, " ", "_")
	norm = strings.ReplaceAll(norm, "-", "_")
	lv := ImplementationLevel(norm)
	if !lv.Valid() {
		return "", fmt.Errorf("invalid implementation level %q", s)
	}
	return lv, nil
}

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// ValidConfidenceLevels is the canonical set of accepted confidence strings.
var ValidConfidenceLevels = map[string]bool{
	"low": true, "medium": true, "high": true,
}

type ProfileKind string

const (
	ProfileCurrent ProfileKind = "current"
	ProfileTarget  ProfileKind = "target"
)

type DependencyType string

const (
	DependencyPrerequisite DependencyType = "prerequisite"
	DependencyEnabler      DependencyType = "enabler"
	DependencyRelated      DependencyType = "related"
)

// ValidDependencyTypes is the canonical set of accepted dependency type strings.
var ValidDependencyTypes = map[string]bool{
	"prerequisite": true, "enabler": true, "related": true,
}

type ReadinessStatus string

const (
	StatusReady   ReadinessStatus = "ready"
	StatusPartial ReadinessStatus = "partial"
	StatusBlocked ReadinessStatus = "blocked"
)

type MatrixType string

const (
	MatrixEffortImpact    MatrixType = "effort_impact"
	MatrixRiskFeasibility MatrixType = "risk_feasibility"
	MatrixCostBenefit     MatrixType = "cost_benefit"
)

// MatrixTypes lists the supported priority matrices.
var MatrixTypes = []MatrixType{MatrixEffortImpact, MatrixRiskFeasibility, MatrixCostBenefit}

type OptimizationGoal string

const (
	GoalQuickWins     OptimizationGoal = "quick_wins"
	GoalRiskReduction OptimizationGoal = "risk_reduction"
	GoalCompliance    OptimizationGoal = "compliance"
	GoalBalanced      OptimizationGoal = "balanced"
)

// OptimizationGoals lists the supported scheduling goals.
var OptimizationGoals = []OptimizationGoal{GoalQuickWins, GoalRiskReduction, GoalCompliance, GoalBalanced}

type QuadrantID string

const (
	QuadrantQuickWins QuadrantID = "quick_wins"
	QuadrantStrategic QuadrantID = "strategic"
	QuadrantFillIns   QuadrantID = "fill_ins"
	QuadrantAvoid     QuadrantID = "avoid"
)

// Quadrants lists quadrant identities in presentation order.
var Quadrants = []QuadrantID{QuadrantQuickWins, QuadrantStrategic, QuadrantFillIns, QuadrantAvoid}

// DefaultMaturity is the maturity score assumed for a level when none was
// recorded.
func (l ImplementationLevel) DefaultMaturity() int {
	switch l {
	case LevelPartiallyImplemented:
		return 2
	case LevelLargelyImplemented:
		return 4
	case LevelFullyImplemented:
		return MaxMaturity
	default:
		return 0
	}
}
