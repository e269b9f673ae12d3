package planner

import (
	"fmt"
	"math"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultThreshold           = 5.0
	DefaultMaxItemsPerQuadrant = 10
)

// MatrixConfig selects the axis formulas and quadrant limits.
type MatrixConfig struct {
	Type                domain.MatrixType
	XThreshold          float64
	YThreshold          float64
	MaxItemsPerQuadrant int
	HourlyRate          decimal.Decimal
}

// DefaultMatrixConfig returns an effort/impact matrix with 5/5 thresholds.
func DefaultMatrixConfig() MatrixConfig {
	return MatrixConfig{
		Type:                domain.MatrixEffortImpact,
		XThreshold:          DefaultThreshold,
		YThreshold:          DefaultThreshold,
		MaxItemsPerQuadrant: DefaultMaxItemsPerQuadrant,
		HourlyRate:          decimal.NewFromInt(DefaultHourlyRate),
	}
}

// ClassifiedItem is a gap record placed on the matrix.
type ClassifiedItem struct {
	Gap           GapRecord         `json:"gap" yaml:"gap"`
	X             float64           `json:"x" yaml:"x"`
	Y             float64           `json:"y" yaml:"y"`
	PriorityScore float64           `json:"priority_score" yaml:"priority_score"`
	RiskReduction float64           `json:"risk_reduction" yaml:"risk_reduction"`
	Cost          decimal.Decimal   `json:"cost" yaml:"cost"`
	Quadrant      domain.QuadrantID `json:"quadrant" yaml:"quadrant"`
}

// Quadrant holds the admitted members of one bucket and their aggregates.
type Quadrant struct {
	ID                   domain.QuadrantID `json:"id" yaml:"id"`
	Label                string            `json:"label" yaml:"label"`
	Description          string            `json:"description" yaml:"description"`
	Items                []ClassifiedItem  `json:"items" yaml:"items"`
	Overflow             int               `json:"overflow" yaml:"overflow"`
	AverageGap           float64           `json:"average_gap" yaml:"average_gap"`
	TotalHours           int               `json:"total_hours" yaml:"total_hours"`
	TotalCost            decimal.Decimal   `json:"total_cost" yaml:"total_cost"`
	AverageRiskReduction float64           `json:"average_risk_reduction" yaml:"average_risk_reduction"`
	RecommendedTimeline  string            `json:"recommended_timeline" yaml:"recommended_timeline"`
}

// Count is the number of admitted members.
func (q Quadrant) Count() int {
	return len(q.Items)
}

// MatrixResult is one classification run.
type MatrixResult struct {
	Type       domain.MatrixType
	XAxis      string
	YAxis      string
	XThreshold float64
	YThreshold float64
	// Quadrants are listed in domain.Quadrants order.
	Quadrants     []Quadrant
	TotalItems    int
	AdmittedItems int
	OverflowItems int
}

// Quadrant returns the quadrant with the given identity.
func (m MatrixResult) Quadrant(id domain.QuadrantID) Quadrant {
	for _, q := range m.Quadrants {
		if q.ID == id {
			return q
		}
	}
	return Quadrant{ID: id}
}

// ResourceEstimate totals the admitted members of a matrix.
type ResourceEstimate struct {
	TotalHours int             `json:"total_hours" yaml:"total_hours"`
	TotalCost  decimal.Decimal `json:"total_cost" yaml:"total_cost"`
	FTEMonths  float64         `json:"fte_months" yaml:"fte_months"`
}

// AxisNames returns the x and y axis labels of a matrix type.
func AxisNames(t domain.MatrixType) (string, string) {
	switch t {
	case domain.MatrixRiskFeasibility:
		return "feasibility", "risk_reduction"
	case domain.MatrixCostBenefit:
		return "cost", "benefit"
	default:
		return "effort", "impact"
	}
}

// Feasibility rescales effort onto 0-10 with low effort scoring high.
func Feasibility(effortScore int) float64 {
	return clamp10(float64(10-effortScore) * 10 / 9)
}

// Complexity is twice the remaining maturity steps, 0-10.
func Complexity(g GapRecord) float64 {
	return clamp10(float64(2 * g.MaturitySteps()))
}

// AxisValues returns the (x, y) position of a record on a 0-10 scale.
func AxisValues(t domain.MatrixType, g GapRecord) (float64, float64) {
	effort := float64(g.EffortScore)
	impact := g.Impact()
	riskReduction := math.Min(10, g.RiskScore)

	switch t {
	case domain.MatrixRiskFeasibility:
		return Feasibility(g.EffortScore), riskReduction
	case domain.MatrixCostBenefit:
		cost := clamp10(effort * Complexity(g) / 10)
		return cost, (impact + riskReduction) / 2
	default:
		return clamp10(effort), impact
	}
}

// favorableHighX reports whether a high x value is the favorable side.
func favorableHighX(t domain.MatrixType) bool {
	return t == domain.MatrixRiskFeasibility
}

// QuadrantFor applies the 2x2 rule. y at or above the threshold is high
// value; x on the favorable side of the threshold (inclusive) is low effort.
func QuadrantFor(t domain.MatrixType, x, y, xThreshold, yThreshold float64) domain.QuadrantID {
	highValue := y >= yThreshold
	var lowEffort bool
	if favorableHighX(t) {
		lowEffort = x >= xThreshold
	} else {
		lowEffort = x <= xThreshold
	}

	switch {
	case highValue && lowEffort:
		return domain.QuadrantQuickWins
	case highValue:
		return domain.QuadrantStrategic
	case lowEffort:
		return domain.QuadrantFillIns
	default:
		return domain.QuadrantAvoid
	}
}

// PriorityScore ranks members within a quadrant.
func PriorityScore(t domain.MatrixType, x, y float64) float64 {
	if favorableHighX(t) {
		return y*10 + x*5
	}
	return y*10 + (10-x)*5
}

// Classify buckets records into the four quadrants. Each quadrant admits at
// most cfg.MaxItemsPerQuadrant records in input order; the rest are counted
// as overflow and left out. Members are then re-sorted by priority score.
func Classify(records []GapRecord, cfg MatrixConfig) MatrixResult {
	if cfg.MaxItemsPerQuadrant <= 0 {
		cfg.MaxItemsPerQuadrant = DefaultMaxItemsPerQuadrant
	}
	xName, yName := AxisNames(cfg.Type)
	result := MatrixResult{
		Type:       cfg.Type,
		XAxis:      xName,
		YAxis:      yName,
		XThreshold: cfg.XThreshold,
		YThreshold: cfg.YThreshold,
		TotalItems: len(records),
	}

	buckets := make(map[domain.QuadrantID]*Quadrant, len(domain.Quadrants))
	for _, id := range domain.Quadrants {
		info := quadrantTable[id]
		buckets[id] = &Quadrant{
			ID:                  id,
			Label:               info.label,
			Description:         info.description,
			Items:               []ClassifiedItem{},
			TotalCost:           decimal.Zero,
			RecommendedTimeline: info.timeline,
		}
	}

	for _, g := range records {
		x, y := AxisValues(cfg.Type, g)
		q := buckets[QuadrantFor(cfg.Type, x, y, cfg.XThreshold, cfg.YThreshold)]
		if len(q.Items) >= cfg.MaxItemsPerQuadrant {
			q.Overflow++
			result.OverflowItems++
			continue
		}
		q.Items = append(q.Items, ClassifiedItem{
			Gap:           g,
			X:             x,
			Y:             y,
			PriorityScore: PriorityScore(cfg.Type, x, y),
			RiskReduction: math.Min(10, g.RiskScore),
			Cost:          HoursCost(g.EffortHours, cfg.HourlyRate),
			Quadrant:      q.ID,
		})
	}

	for _, id := range domain.Quadrants {
		q := buckets[id]
		prioritySort(q.Items)
		aggregateQuadrant(q)
		result.AdmittedItems += len(q.Items)
		result.Quadrants = append(result.Quadrants, *q)
	}
	return result
}

func aggregateQuadrant(q *Quadrant) {
	if len(q.Items) == 0 {
		return
	}
	var gapSum, riskSum float64
	for _, it := range q.Items {
		gapSum += it.Gap.GapScore
		riskSum += it.RiskReduction
		q.TotalHours += it.Gap.EffortHours
		q.TotalCost = q.TotalCost.Add(it.Cost)
	}
	n := float64(len(q.Items))
	q.AverageGap = gapSum / n
	q.AverageRiskReduction = riskSum / n
}

// EstimateResources totals hours and cost over the admitted members.
func EstimateResources(m MatrixResult) ResourceEstimate {
	est := ResourceEstimate{TotalCost: decimal.Zero}
	for _, q := range m.Quadrants {
		est.TotalHours += q.TotalHours
		est.TotalCost = est.TotalCost.Add(q.TotalCost)
	}
	est.FTEMonths = math.Round(float64(est.TotalHours)/HoursPerFTEMonth*10) / 10
	return est
}

// HoursCost prices hours at the given hourly rate.
func HoursCost(hours int, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(hours)).Mul(rate)
}

// Members returns the identifiers of every admitted record across quadrants.
func (m MatrixResult) Members() []string {
	var ids []string
	for _, q := range m.Quadrants {
		for _, it := range q.Items {
			ids = append(ids, it.Gap.SubcategoryID)
		}
	}
	return ids
}

func (q Quadrant) String() string {
	return fmt.Sprintf("%s (%d)", q.Label, len(q.Items))
}

func clamp10(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}
