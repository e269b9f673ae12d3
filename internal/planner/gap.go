package planner

import (
	"math"

	"github.com/alexanderramin/csfplan/internal/domain"
)

// GapRecord is the scored distance between current and target state for one
// subcategory. Records are built fresh per run and never mutated afterwards.
type GapRecord struct {
	SubcategoryID   string                     `json:"subcategory_id" yaml:"subcategory_id"`
	Function        domain.Function            `json:"function" yaml:"function"`
	Title           string                     `json:"title" yaml:"title"`
	CurrentLevel    domain.ImplementationLevel `json:"current_level" yaml:"current_level"`
	TargetLevel     domain.ImplementationLevel `json:"target_level" yaml:"target_level"`
	CurrentMaturity int                        `json:"current_maturity" yaml:"current_maturity"`
	TargetMaturity  int                        `json:"target_maturity" yaml:"target_maturity"`
	GapScore        float64                    `json:"gap_score" yaml:"gap_score"`
	RiskScore       float64                    `json:"risk_score" yaml:"risk_score"`
	EffortScore     int                        `json:"effort_score" yaml:"effort_score"`
	EffortHours     int                        `json:"effort_hours" yaml:"effort_hours"`
	PriorityRank    int                        `json:"priority_rank" yaml:"priority_rank"`
}

// HasGap reports whether any maturity distance remains.
func (g GapRecord) HasGap() bool {
	return g.GapScore > 0
}

// Impact is the 0-10 value of closing the gap.
func (g GapRecord) Impact() float64 {
	return math.Min(10, g.GapScore/10)
}

// MaturitySteps is the number of maturity levels still to climb.
func (g GapRecord) MaturitySteps() int {
	if d := g.TargetMaturity - g.CurrentMaturity; d > 0 {
		return d
	}
	return 0
}

// GapInput is the snapshot the scorer works on.
type GapInput struct {
	// Catalog holds the subcategories in scope. In single-profile mode every
	// entry is scored; otherwise it supplies titles and criticality weights.
	Catalog []domain.TaxonomyNode
	Current []domain.Assessment
	// Target is ignored when SingleProfile is set; the implicit target is
	// fully_implemented / maturity 5.
	Target        []domain.Assessment
	SingleProfile bool
	// Scope restricts scoring to the listed functions. Empty means all.
	Scope []domain.Function
}

// ScoreGaps computes one GapRecord per target subcategory, ordered by
// CanonicalGapSort and ranked from 1. Subcategories without a current
// assessment are scored from a zeroed not_implemented state.
func ScoreGaps(in GapInput) []GapRecord {
	inScope := scopeFilter(in.Scope)

	catalog := make(map[string]domain.TaxonomyNode, len(in.Catalog))
	for _, n := range in.Catalog {
		catalog[n.ID] = n
	}
	current := make(map[string]domain.Assessment, len(in.Current))
	for _, a := range in.Current {
		current[a.SubcategoryID] = a
	}

	var targets []domain.Assessment
	if in.SingleProfile {
		for _, n := range in.Catalog {
			if n.Type == domain.NodeSubcategory || domain.IsSubcategoryID(n.ID) {
				targets = append(targets, domain.FullyImplementedAssessment(n.ID))
			}
		}
	} else {
		targets = in.Target
	}

	records := make([]GapRecord, 0, len(targets))
	seen := make(map[string]bool, len(targets))
	for _, target := range targets {
		id := target.SubcategoryID
		if seen[id] || !inScope(domain.FunctionOf(id)) {
			continue
		}
		seen[id] = true

		cur, ok := current[id]
		if !ok {
			cur = domain.UnassessedAssessment("", id)
		}
		node := catalog[id]
		weight := domain.IntFromPtrWithDefault(DefaultCriticalityWeight, node.Criticality)
		records = append(records, scoreGap(id, node.Title, cur, target, weight))
	}

	CanonicalGapSort(records)
	for i := range records {
		records[i].PriorityRank = i + 1
	}
	return records
}

func scoreGap(id, title string, current, target domain.Assessment, weight int) GapRecord {
	gap := GapScore(current.MaturityScore, target.MaturityScore)
	effort := EffortScore(current.Level)
	return GapRecord{
		SubcategoryID:   id,
		Function:        domain.FunctionOf(id),
		Title:           title,
		CurrentLevel:    current.Level,
		TargetLevel:     target.Level,
		CurrentMaturity: current.MaturityScore,
		TargetMaturity:  target.MaturityScore,
		GapScore:        gap,
		RiskScore:       RiskScore(gap, weight),
		EffortScore:     effort,
		EffortHours:     EffortHours(effort),
	}
}

// GapScore normalizes the maturity distance onto 0-100.
func GapScore(currentMaturity, targetMaturity int) float64 {
	gap := float64(targetMaturity-currentMaturity) / domain.MaxMaturity * 100
	return math.Max(0, math.Min(100, gap))
}

// RiskScore weights the gap by a 1-10 criticality, capped at 10. With the
// default weight of 5 this is gap/10.
func RiskScore(gapScore float64, criticalityWeight int) float64 {
	return math.Min(10, gapScore*float64(criticalityWeight)/50)
}

// FilterGaps keeps records whose gap is positive and at least minimum,
// re-ranking the survivors from 1.
func FilterGaps(records []GapRecord, minimum float64) []GapRecord {
	out := make([]GapRecord, 0, len(records))
	for _, r := range records {
		if r.HasGap() && r.GapScore >= minimum {
			r.PriorityRank = len(out) + 1
			out = append(out, r)
		}
	}
	return out
}

func scopeFilter(scope []domain.Function) func(domain.Function) bool {
	if len(scope) == 0 {
		return func(domain.Function) bool { return true }
	}
	allowed := make(map[domain.Function]bool, len(scope))
	for _, f := range scope {
		allowed[f] = true
	}
	return func(f domain.Function) bool { return allowed[f] }
}
