package contract

import (
	"time"

	"github.com/alexanderramin/csfplan/internal/domain"
)

type GapAnalysisRequest struct {
	CurrentProfileID string `json:"current_profile_id" validate:"required"`
	// TargetProfileID is optional; empty selects single-profile mode with an
	// implicit fully implemented target.
	TargetProfileID        string            `json:"target_profile_id"`
	FunctionScope          []domain.Function `json:"function_scope" validate:"dive,oneof=GV ID PR DE RS RC"`
	MinimumGapScore        float64           `json:"minimum_gap_score" validate:"gte=0,lte=100"`
	IncludeRecommendations bool              `json:"include_recommendations"`
}

func NewGapAnalysisRequest(currentProfileID string) GapAnalysisRequest {
	return GapAnalysisRequest{
		CurrentProfileID:       currentProfileID,
		IncludeRecommendations: true,
	}
}

func (r GapAnalysisRequest) Validate() error {
	return validateRequest(r)
}

type GapSummary struct {
	TotalItems       int               `json:"total_items" yaml:"total_items"`
	ItemsWithGap     int               `json:"items_with_gap" yaml:"items_with_gap"`
	AverageGap       float64           `json:"average_gap" yaml:"average_gap"`
	AverageRisk      float64           `json:"average_risk" yaml:"average_risk"`
	TotalEffortHours int               `json:"total_effort_hours" yaml:"total_effort_hours"`
	HighRiskCount    int               `json:"high_risk_count" yaml:"high_risk_count"`
	ByFunction       []FunctionSummary `json:"by_function" yaml:"by_function"`
}

type GapAnalysisResponse struct {
	Success         bool            `json:"success" yaml:"success"`
	Error           *PlanError      `json:"error,omitempty" yaml:"error,omitempty"`
	GeneratedAt     time.Time       `json:"generated_at" yaml:"generated_at"`
	CurrentProfile  ProfileSummary  `json:"current_profile" yaml:"current_profile"`
	TargetProfile   *ProfileSummary `json:"target_profile,omitempty" yaml:"target_profile,omitempty"`
	Summary         GapSummary      `json:"summary" yaml:"summary"`
	Gaps            []GapRecord     `json:"gaps" yaml:"gaps"`
	Recommendations Recommendations `json:"recommendations" yaml:"recommendations"`
}

// FailedGapAnalysis is the empty-valued response returned with an error.
func FailedGapAnalysis(err *PlanError) GapAnalysisResponse {
	return GapAnalysisResponse{
		Error:           err,
		Summary:         GapSummary{ByFunction: []FunctionSummary{}},
		Gaps:            []GapRecord{},
		Recommendations: EmptyRecommendations(),
	}
}
