package planner

import "github.com/alexanderramin/csfplan/internal/domain"

const (
	// OvercommitFactor is the slack allowed over nominal capacity at admission.
	OvercommitFactor = 1.2
	// DefaultCriticalityWeight makes gap×weight/50 equal gap/10.
	DefaultCriticalityWeight = 5
	// HighRiskThreshold marks a risk score as high.
	HighRiskThreshold = 7.0
	// HoursPerFTEMonth converts effort hours into full-time-equivalent months.
	HoursPerFTEMonth = 160.0
	// DefaultHourlyRate is used for cost figures when none is configured.
	DefaultHourlyRate = 150

	minEffortHours     = 8
	hoursPerEffortStep = 17
)

// effortByLevel maps the current implementation level to an effort score (1-10).
var effortByLevel = map[domain.ImplementationLevel]int{
	domain.LevelNotImplemented:       8,
	domain.LevelPartiallyImplemented: 5,
	domain.LevelLargelyImplemented:   3,
	domain.LevelFullyImplemented:     1,
}

// functionPrerequisites is the implicit function chain: a function's items are
// only fully ready once each listed function shows some progress.
var functionPrerequisites = map[domain.Function][]domain.Function{
	domain.FunctionGovern:   nil,
	domain.FunctionIdentify: {domain.FunctionGovern},
	domain.FunctionProtect:  {domain.FunctionGovern, domain.FunctionIdentify},
	domain.FunctionDetect:   {domain.FunctionIdentify, domain.FunctionProtect},
	domain.FunctionRespond:  {domain.FunctionDetect, domain.FunctionProtect},
	domain.FunctionRecover:  {domain.FunctionRespond, domain.FunctionProtect},
}

// goalMultipliers re-weights candidate ROI per function for each optimization goal.
var goalMultipliers = map[domain.OptimizationGoal]map[domain.Function]float64{
	domain.GoalRiskReduction: {
		domain.FunctionGovern: 1.0, domain.FunctionIdentify: 1.1, domain.FunctionProtect: 1.4,
		domain.FunctionDetect: 1.3, domain.FunctionRespond: 1.2, domain.FunctionRecover: 1.0,
	},
	domain.GoalCompliance: {
		domain.FunctionGovern: 1.5, domain.FunctionIdentify: 1.2, domain.FunctionProtect: 1.1,
		domain.FunctionDetect: 1.0, domain.FunctionRespond: 1.0, domain.FunctionRecover: 0.9,
	},
	domain.GoalQuickWins: {
		domain.FunctionGovern: 1.2, domain.FunctionIdentify: 1.1, domain.FunctionProtect: 1.0,
		domain.FunctionDetect: 1.0, domain.FunctionRespond: 0.9, domain.FunctionRecover: 0.9,
	},
	domain.GoalBalanced: {
		domain.FunctionGovern: 1.2, domain.FunctionIdentify: 1.1, domain.FunctionProtect: 1.0,
		domain.FunctionDetect: 1.0, domain.FunctionRespond: 1.0, domain.FunctionRecover: 1.0,
	},
}

type quadrantInfo struct {
	label       string
	description string
	timeline    string
}

var quadrantTable = map[domain.QuadrantID]quadrantInfo{
	domain.QuadrantQuickWins: {"Quick Wins", "High value, low effort", "0-3 months"},
	domain.QuadrantStrategic: {"Strategic Initiatives", "High value, high effort", "3-12 months"},
	domain.QuadrantFillIns:   {"Fill-ins", "Low value, low effort", "As capacity allows"},
	domain.QuadrantAvoid:     {"Deprioritize", "Low value, high effort", "Reassess in 12+ months"},
}

// EffortScore returns the effort score for closing a gap from the given level.
// Unknown levels are treated as not implemented.
func EffortScore(current domain.ImplementationLevel) int {
	if e, ok := effortByLevel[current]; ok {
		return e
	}
	return effortByLevel[domain.LevelNotImplemented]
}

// EffortHours maps an effort score linearly onto hours: 1 -> 8h, 10 -> 161h.
func EffortHours(effortScore int) int {
	if effortScore < 1 {
		effortScore = 1
	}
	return minEffortHours + (effortScore-1)*hoursPerEffortStep
}

// GoalMultiplier returns the ROI multiplier of fn under goal, 1.0 when unlisted.
func GoalMultiplier(goal domain.OptimizationGoal, fn domain.Function) float64 {
	if m, ok := goalMultipliers[goal][fn]; ok {
		return m
	}
	return 1.0
}

// FunctionPrerequisites returns the functions fn implicitly depends on.
func FunctionPrerequisites(fn domain.Function) []domain.Function {
	return functionPrerequisites[fn]
}

// QuadrantTimeline returns the fixed recommended timeline label of a quadrant.
func QuadrantTimeline(q domain.QuadrantID) string {
	return quadrantTable[q].timeline
}

// QuadrantLabel returns the display name of a quadrant.
func QuadrantLabel(q domain.QuadrantID) string {
	return quadrantTable[q].label
}
