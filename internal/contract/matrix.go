package contract

import (
	"time"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/planner"
)

type PriorityMatrixRequest struct {
	ProfileID               string            `json:"profile_id" validate:"required"`
	TargetProfileID         string            `json:"target_profile_id"`
	MatrixType              domain.MatrixType `json:"matrix_type" validate:"oneof=effort_impact risk_feasibility cost_benefit"`
	XThreshold              float64           `json:"x_threshold" validate:"gte=0,lte=10"`
	YThreshold              float64           `json:"y_threshold" validate:"gte=0,lte=10"`
	MaxItemsPerQuadrant     int               `json:"max_items_per_quadrant" validate:"gte=1,lte=20"`
	MinimumGapScore         float64           `json:"minimum_gap_score" validate:"gte=0,lte=100"`
	FunctionScope           []domain.Function `json:"function_scope" validate:"dive,oneof=GV ID PR DE RS RC"`
	IncludeRecommendations  bool              `json:"include_recommendations"`
	IncludeResourceEstimate bool              `json:"include_resource_estimate"`
}

func NewPriorityMatrixRequest(profileID string) PriorityMatrixRequest {
	return PriorityMatrixRequest{
		ProfileID:              profileID,
		MatrixType:             domain.MatrixEffortImpact,
		XThreshold:             planner.DefaultThreshold,
		YThreshold:             planner.DefaultThreshold,
		MaxItemsPerQuadrant:    planner.DefaultMaxItemsPerQuadrant,
		IncludeRecommendations: true,
	}
}

func (r PriorityMatrixRequest) Validate() error {
	return validateRequest(r)
}

type MatrixSummary struct {
	TotalItems      int                       `json:"total_items" yaml:"total_items"`
	ClassifiedItems int                       `json:"classified_items" yaml:"classified_items"`
	OverflowItems   int                       `json:"overflow_items" yaml:"overflow_items"`
	QuadrantCounts  map[domain.QuadrantID]int `json:"quadrant_counts" yaml:"quadrant_counts"`
}

type PriorityMatrixResponse struct {
	Success     bool              `json:"success" yaml:"success"`
	Error       *PlanError        `json:"error,omitempty" yaml:"error,omitempty"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Profile     ProfileSummary    `json:"profile" yaml:"profile"`
	MatrixType  domain.MatrixType `json:"matrix_type" yaml:"matrix_type"`
	XAxis       string            `json:"x_axis" yaml:"x_axis"`
	YAxis       string            `json:"y_axis" yaml:"y_axis"`
	XThreshold  float64           `json:"x_threshold" yaml:"x_threshold"`
	YThreshold  float64           `json:"y_threshold" yaml:"y_threshold"`
	Quadrants   []Quadrant        `json:"quadrants" yaml:"quadrants"`
	Summary     MatrixSummary     `json:"summary" yaml:"summary"`
	// Recommendations and ResourceEstimate are nil unless requested.
	Recommendations  *Recommendations  `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
	ResourceEstimate *ResourceEstimate `json:"resource_estimate,omitempty" yaml:"resource_estimate,omitempty"`
}

// NewMatrixSummary counts members per quadrant.
func NewMatrixSummary(m planner.MatrixResult) MatrixSummary {
	s := MatrixSummary{
		TotalItems:      m.TotalItems,
		ClassifiedItems: m.AdmittedItems,
		OverflowItems:   m.OverflowItems,
		QuadrantCounts:  make(map[domain.QuadrantID]int, len(m.Quadrants)),
	}
	for _, q := range m.Quadrants {
		s.QuadrantCounts[q.ID] = q.Count()
	}
	return s
}

// FailedPriorityMatrix is the empty-valued response returned with an error.
func FailedPriorityMatrix(err *PlanError) PriorityMatrixResponse {
	return PriorityMatrixResponse{
		Error:     err,
		Quadrants: []Quadrant{},
		Summary:   MatrixSummary{QuadrantCounts: map[domain.QuadrantID]int{}},
	}
}
