package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/csfplan/internal/domain"
)

// Audience groups recommendations for the reader they are meant for.
type Audience string

const (
	AudienceImmediate           Audience = "immediate"
	AudienceShortTerm           Audience = "short_term"
	AudienceLongTerm            Audience = "long_term"
	AudienceImmediatePriorities Audience = "immediate_priorities"
	AudienceResource            Audience = "resource"
	AudienceDependency          Audience = "dependency"
	AudienceSuccessFactors      Audience = "success_factors"
)

// Recommendation is one generated guidance message.
type Recommendation struct {
	Audience Audience
	Message  string
}

// rule is a declarative recommendation: when applies holds, message is emitted
// under audience. Rules are evaluated in declaration order.
type rule[T any] struct {
	audience Audience
	applies  func(T) bool
	message  func(T) string
}

func evaluate[T any](rules []rule[T], in T) []Recommendation {
	out := []Recommendation{}
	for _, r := range rules {
		if r.applies(in) {
			out = append(out, Recommendation{Audience: r.audience, Message: r.message(in)})
		}
	}
	return out
}

// FunctionSummary aggregates gap records of one function.
type FunctionSummary struct {
	Function               domain.Function `json:"function" yaml:"function"`
	Items                  int             `json:"items" yaml:"items"`
	ItemsWithGap           int             `json:"items_with_gap" yaml:"items_with_gap"`
	AverageGap             float64         `json:"average_gap" yaml:"average_gap"`
	AverageCurrentMaturity float64         `json:"average_current_maturity" yaml:"average_current_maturity"`
	TotalEffortHours       int             `json:"total_effort_hours" yaml:"total_effort_hours"`
}

// GapAggregates are the inputs of the gap-analysis rules.
type GapAggregates struct {
	Records          []GapRecord
	ItemsWithGap     int
	AverageGap       float64
	AverageRisk      float64
	TotalEffortHours int
	HighRiskCount    int
	ByFunction       []FunctionSummary
	// MaturityVariance is the population variance of average current
	// maturity across the functions present.
	MaturityVariance float64
}

// AggregateGaps summarizes scored records, in the order given.
func AggregateGaps(records []GapRecord) GapAggregates {
	agg := GapAggregates{Records: records, ByFunction: []FunctionSummary{}}
	if len(records) == 0 {
		return agg
	}

	byFn := map[domain.Function]*FunctionSummary{}
	var gapSum, riskSum float64
	gapSums := map[domain.Function]float64{}
	maturitySums := map[domain.Function]int{}
	for _, r := range records {
		gapSum += r.GapScore
		riskSum += r.RiskScore
		if r.HasGap() {
			agg.ItemsWithGap++
			agg.TotalEffortHours += r.EffortHours
		}
		if r.RiskScore >= HighRiskThreshold {
			agg.HighRiskCount++
		}

		fs, ok := byFn[r.Function]
		if !ok {
			fs = &FunctionSummary{Function: r.Function}
			byFn[r.Function] = fs
		}
		fs.Items++
		if r.HasGap() {
			fs.ItemsWithGap++
			fs.TotalEffortHours += r.EffortHours
		}
		gapSums[r.Function] += r.GapScore
		maturitySums[r.Function] += r.CurrentMaturity
	}
	n := float64(len(records))
	agg.AverageGap = gapSum / n
	agg.AverageRisk = riskSum / n

	var means []float64
	for _, fn := range domain.Functions {
		fs, ok := byFn[fn]
		if !ok {
			continue
		}
		fs.AverageGap = gapSums[fn] / float64(fs.Items)
		fs.AverageCurrentMaturity = float64(maturitySums[fn]) / float64(fs.Items)
		means = append(means, fs.AverageCurrentMaturity)
		agg.ByFunction = append(agg.ByFunction, *fs)
	}
	agg.MaturityVariance = variance(means)
	return agg
}

func variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	var sq float64
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	return sq / float64(len(xs))
}

func (a GapAggregates) strongestWeakest() (FunctionSummary, FunctionSummary) {
	fns := append([]FunctionSummary(nil), a.ByFunction...)
	sort.SliceStable(fns, func(i, j int) bool {
		return fns[i].AverageCurrentMaturity > fns[j].AverageCurrentMaturity
	})
	return fns[0], fns[len(fns)-1]
}

func (a GapAggregates) governanceGaps() int {
	n := 0
	for _, r := range a.Records {
		if r.Function == domain.FunctionGovern && r.GapScore >= 50 {
			n++
		}
	}
	return n
}

func topIDs(records []GapRecord, keep func(GapRecord) bool, limit int) string {
	var ids []string
	for _, r := range records {
		if len(ids) == limit {
			break
		}
		if keep(r) {
			ids = append(ids, r.SubcategoryID)
		}
	}
	return strings.Join(ids, ", ")
}

var gapRules = []rule[GapAggregates]{
	{
		audience: AudienceImmediate,
		applies:  func(a GapAggregates) bool { return a.ItemsWithGap == 0 },
		message: func(a GapAggregates) string {
			return "No gaps at or above the threshold; maintain the current posture and re-assess on schedule"
		},
	},
	{
		audience: AudienceImmediate,
		applies:  func(a GapAggregates) bool { return a.HighRiskCount > 0 },
		message: func(a GapAggregates) string {
			top := topIDs(a.Records, func(r GapRecord) bool { return r.RiskScore >= HighRiskThreshold }, 3)
			return fmt.Sprintf("Address %d high-risk gaps first, starting with %s", a.HighRiskCount, top)
		},
	},
	{
		audience: AudienceImmediate,
		applies:  func(a GapAggregates) bool { return a.governanceGaps() > 0 },
		message: func(a GapAggregates) string {
			return fmt.Sprintf("Establish governance foundations: %d GOVERN outcomes have gaps of 50%% or more", a.governanceGaps())
		},
	},
	{
		audience: AudienceShortTerm,
		applies:  func(a GapAggregates) bool { return a.MaturityVariance > 1.0 && len(a.ByFunction) > 1 },
		message: func(a GapAggregates) string {
			strong, weak := a.strongestWeakest()
			return fmt.Sprintf("High variance in maturity across functions (%.2f); share practices from %s with %s",
				a.MaturityVariance, strong.Function.FullName(), weak.Function.FullName())
		},
	},
	{
		audience: AudienceShortTerm,
		applies:  func(a GapAggregates) bool { return a.AverageGap >= 40 },
		message: func(a GapAggregates) string {
			return fmt.Sprintf("Average gap is %.0f%%; plan phased remediation of about %d effort hours", a.AverageGap, a.TotalEffortHours)
		},
	},
	{
		audience: AudienceLongTerm,
		applies:  func(a GapAggregates) bool { return a.ItemsWithGap > 0 },
		message: func(a GapAggregates) string {
			return fmt.Sprintf("Re-assess the %d open outcomes quarterly and track maturity progression", a.ItemsWithGap)
		},
	},
	{
		audience: AudienceLongTerm,
		applies:  func(a GapAggregates) bool { return a.TotalEffortHours > int(HoursPerFTEMonth)*6 },
		message: func(a GapAggregates) string {
			return fmt.Sprintf("Remediation exceeds %.0f FTE-months; budget a multi-year program", float64(a.TotalEffortHours)/HoursPerFTEMonth)
		},
	},
}

var matrixRules = []rule[MatrixResult]{
	{
		audience: AudienceImmediate,
		applies:  func(m MatrixResult) bool { return m.Quadrant(domain.QuadrantQuickWins).Count() > 0 },
		message: func(m MatrixResult) string {
			q := m.Quadrant(domain.QuadrantQuickWins)
			return fmt.Sprintf("Start with %d quick wins (%d hours) for immediate risk reduction", q.Count(), q.TotalHours)
		},
	},
	{
		audience: AudienceImmediate,
		applies: func(m MatrixResult) bool {
			q := m.Quadrant(domain.QuadrantQuickWins)
			return q.Count()+q.Overflow > 10
		},
		message: func(m MatrixResult) string {
			return "More than 10 quick wins identified; assign dedicated resources to clear them in parallel"
		},
	},
	{
		audience: AudienceShortTerm,
		applies:  func(m MatrixResult) bool { return m.Quadrant(domain.QuadrantStrategic).Count() > 0 },
		message: func(m MatrixResult) string {
			q := m.Quadrant(domain.QuadrantStrategic)
			return fmt.Sprintf("Plan %d strategic initiatives as funded projects over %s", q.Count(), q.RecommendedTimeline)
		},
	},
	{
		audience: AudienceShortTerm,
		applies:  func(m MatrixResult) bool { return m.OverflowItems > 0 },
		message: func(m MatrixResult) string {
			return fmt.Sprintf("%d items exceeded the per-quadrant limit; raise the limit or the minimum gap to review them", m.OverflowItems)
		},
	},
	{
		audience: AudienceLongTerm,
		applies:  func(m MatrixResult) bool { return m.Quadrant(domain.QuadrantFillIns).Count() > 0 },
		message: func(m MatrixResult) string {
			return fmt.Sprintf("Schedule %d fill-in items when capacity allows", m.Quadrant(domain.QuadrantFillIns).Count())
		},
	},
	{
		audience: AudienceLongTerm,
		applies:  func(m MatrixResult) bool { return m.Quadrant(domain.QuadrantAvoid).Count() > 0 },
		message: func(m MatrixResult) string {
			return fmt.Sprintf("Reassess %d low-value, high-effort items in the next planning cycle", m.Quadrant(domain.QuadrantAvoid).Count())
		},
	},
}

func planHasGovernance(p Plan) bool {
	for _, a := range p.Actions {
		if a.Gap.Function == domain.FunctionGovern {
			return true
		}
	}
	return false
}

// unblockTargets lists the distinct hard prerequisites across blocked actions.
func unblockTargets(p Plan) []string {
	seen := map[string]bool{}
	var ids []string
	for _, b := range p.Blocked {
		for _, bl := range b.Blockers {
			if bl.Hard && !seen[bl.DependsOn] {
				seen[bl.DependsOn] = true
				ids = append(ids, bl.DependsOn)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

var actionRules = []rule[Plan]{
	{
		audience: AudienceImmediatePriorities,
		applies:  func(p Plan) bool { return len(p.Actions) > 0 },
		message: func(p Plan) string {
			first := p.Actions[0]
			return fmt.Sprintf("Start with %s (%d hours, ROI %.2f)", first.Gap.SubcategoryID, first.Gap.EffortHours, first.ROI)
		},
	},
	{
		audience: AudienceImmediatePriorities,
		applies:  planHasGovernance,
		message: func(p Plan) string {
			return "Complete governance actions first; later functions build on them"
		},
	},
	{
		audience: AudienceImmediatePriorities,
		applies:  func(p Plan) bool { return len(p.Actions) == 0 && len(p.Blocked) == 0 },
		message: func(p Plan) string {
			return "No actionable gaps within the current thresholds"
		},
	},
	{
		audience: AudienceResource,
		applies:  func(p Plan) bool { return p.Capacity.UtilizationPercentage > 100 },
		message: func(p Plan) string {
			return fmt.Sprintf("Plan is overcommitted at %d%% utilization; add capacity or expect slippage", p.Capacity.UtilizationPercentage)
		},
	},
	{
		audience: AudienceResource,
		applies:  func(p Plan) bool { return p.Capacity.UnscheduledActions > 0 },
		message: func(p Plan) string {
			return fmt.Sprintf("%d admitted actions do not fit in %d weeks; extend the horizon", p.Capacity.UnscheduledActions, p.Capacity.HorizonWeeks)
		},
	},
	{
		audience: AudienceResource,
		applies:  func(p Plan) bool { return p.Capacity.DeferredActions > 0 },
		message: func(p Plan) string {
			return fmt.Sprintf("%d further candidates exceed the capacity budget; revisit after this cycle", p.Capacity.DeferredActions)
		},
	},
	{
		audience: AudienceResource,
		applies: func(p Plan) bool {
			return len(p.Actions) > 0 && p.Capacity.DeferredActions == 0 && p.Capacity.UtilizationPercentage < 50
		},
		message: func(p Plan) string {
			return fmt.Sprintf("Only %d%% of capacity is needed; consider a shorter horizon or lower gap threshold", p.Capacity.UtilizationPercentage)
		},
	},
	{
		audience: AudienceDependency,
		applies:  func(p Plan) bool { return len(p.Blocked) > 0 },
		message: func(p Plan) string {
			return fmt.Sprintf("Unblock %d items by implementing %s", len(p.Blocked), strings.Join(unblockTargets(p), ", "))
		},
	},
	{
		audience: AudienceDependency,
		applies:  func(p Plan) bool { return p.Capacity.StretchActions > 0 },
		message: func(p Plan) string {
			return fmt.Sprintf("%d actions have unmet soft dependencies; sequence them after their prerequisites", p.Capacity.StretchActions)
		},
	},
	{
		audience: AudienceSuccessFactors,
		applies:  func(p Plan) bool { return len(p.Weeks) > 0 },
		message: func(p Plan) string {
			return fmt.Sprintf("Review progress weekly against the %d-week timeline", len(p.Weeks))
		},
	},
	{
		audience: AudienceSuccessFactors,
		applies:  func(p Plan) bool { return true },
		message: func(p Plan) string {
			return "Update assessments as work completes and re-run planning"
		},
	},
}

// SynthesizeGapRecommendations derives guidance for a gap analysis.
func SynthesizeGapRecommendations(a GapAggregates) []Recommendation {
	return evaluate(gapRules, a)
}

// SynthesizeMatrixRecommendations derives guidance for a priority matrix.
func SynthesizeMatrixRecommendations(m MatrixResult) []Recommendation {
	return evaluate(matrixRules, m)
}

// SynthesizeActionRecommendations derives guidance for a next-actions plan.
func SynthesizeActionRecommendations(p Plan) []Recommendation {
	return evaluate(actionRules, p)
}

// GroupByAudience collects messages per audience, preserving rule order.
func GroupByAudience(recs []Recommendation) map[Audience][]string {
	out := map[Audience][]string{}
	for _, r := range recs {
		out[r.Audience] = append(out[r.Audience], r.Message)
	}
	return out
}
