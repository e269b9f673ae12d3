package contract

import (
	"time"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/planner"
)

const (
	DefaultCapacityHoursPerWeek = 40
	DefaultHorizonWeeks         = 4
)

type NextActionsRequest struct {
	ProfileID            string                  `json:"profile_id" validate:"required"`
	TargetProfileID      string                  `json:"target_profile_id"`
	CapacityHoursPerWeek int                     `json:"capacity_hours_per_week" validate:"gte=1,lte=168"`
	HorizonWeeks         int                     `json:"horizon_weeks" validate:"gte=1,lte=12"`
	OptimizationGoal     domain.OptimizationGoal `json:"optimization_goal" validate:"oneof=quick_wins risk_reduction compliance balanced"`
	MinimumGapScore      float64                 `json:"minimum_gap_score" validate:"gte=0,lte=100"`
	FunctionScope        []domain.Function       `json:"function_scope" validate:"dive,oneof=GV ID PR DE RS RC"`
}

func NewNextActionsRequest(profileID string) NextActionsRequest {
	return NextActionsRequest{
		ProfileID:            profileID,
		CapacityHoursPerWeek: DefaultCapacityHoursPerWeek,
		HorizonWeeks:         DefaultHorizonWeeks,
		OptimizationGoal:     domain.GoalBalanced,
	}
}

func (r NextActionsRequest) Validate() error {
	return validateRequest(r)
}

// SuggestedAction is one ranked remediation step.
type SuggestedAction struct {
	Rank             int                    `json:"rank" yaml:"rank"`
	SubcategoryID    string                 `json:"subcategory_id" yaml:"subcategory_id"`
	Function         domain.Function        `json:"function" yaml:"function"`
	Title            string                 `json:"title" yaml:"title"`
	GapScore         float64                `json:"gap_score" yaml:"gap_score"`
	RiskScore        float64                `json:"risk_score" yaml:"risk_score"`
	EffortHours      int                    `json:"effort_hours" yaml:"effort_hours"`
	ROI              float64                `json:"roi" yaml:"roi"`
	DependencyStatus domain.ReadinessStatus `json:"dependency_status" yaml:"dependency_status"`
	Blockers         []string               `json:"blockers" yaml:"blockers"`
	Impact           string                 `json:"impact" yaml:"impact"`
	Justification    string                 `json:"justification" yaml:"justification"`
	// Week is 0 when the action was admitted but falls beyond the horizon.
	Week int `json:"week" yaml:"week"`
}

// BlockedAction is a candidate held back by hard-blocking prerequisites.
type BlockedAction struct {
	SubcategoryID string   `json:"subcategory_id" yaml:"subcategory_id"`
	Title         string   `json:"title" yaml:"title"`
	GapScore      float64  `json:"gap_score" yaml:"gap_score"`
	EffortHours   int      `json:"effort_hours" yaml:"effort_hours"`
	Blockers      []string `json:"blockers" yaml:"blockers"`
}

type NextActionsResponse struct {
	Success          bool                    `json:"success" yaml:"success"`
	Error            *PlanError              `json:"error,omitempty" yaml:"error,omitempty"`
	GeneratedAt      time.Time               `json:"generated_at" yaml:"generated_at"`
	Profile          ProfileSummary          `json:"profile" yaml:"profile"`
	OptimizationGoal domain.OptimizationGoal `json:"optimization_goal" yaml:"optimization_goal"`
	Capacity         CapacitySummary         `json:"capacity" yaml:"capacity"`
	SuggestedActions []SuggestedAction       `json:"suggested_actions" yaml:"suggested_actions"`
	BlockedActions   []BlockedAction         `json:"blocked_actions" yaml:"blocked_actions"`
	Timeline         []ScheduledWeek         `json:"timeline" yaml:"timeline"`
	Recommendations  ActionRecommendations   `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`
}

func blockerDescriptions(blockers []planner.Blocker) []string {
	out := make([]string, len(blockers))
	for i, b := range blockers {
		out[i] = b.Description()
	}
	return out
}

// NewSuggestedAction flattens a scheduled action.
func NewSuggestedAction(a planner.Action) SuggestedAction {
	return SuggestedAction{
		Rank:             a.Rank,
		SubcategoryID:    a.Gap.SubcategoryID,
		Function:         a.Gap.Function,
		Title:            a.Gap.Title,
		GapScore:         a.Gap.GapScore,
		RiskScore:        a.Gap.RiskScore,
		EffortHours:      a.Gap.EffortHours,
		ROI:              a.ROI,
		DependencyStatus: a.Readiness.Status,
		Blockers:         blockerDescriptions(a.Readiness.Blockers()),
		Impact:           a.Impact,
		Justification:    a.Justification,
		Week:             a.Week,
	}
}

// NewBlockedAction flattens a blocked candidate.
func NewBlockedAction(b planner.BlockedAction) BlockedAction {
	return BlockedAction{
		SubcategoryID: b.Gap.SubcategoryID,
		Title:         b.Gap.Title,
		GapScore:      b.Gap.GapScore,
		EffortHours:   b.Gap.EffortHours,
		Blockers:      blockerDescriptions(b.Blockers),
	}
}

// FailedNextActions is the empty-valued response returned with an error.
func FailedNextActions(err *PlanError) NextActionsResponse {
	return NextActionsResponse{
		Error:            err,
		SuggestedActions: []SuggestedAction{},
		BlockedActions:   []BlockedAction{},
		Timeline:         []ScheduledWeek{},
		Recommendations:  NewActionRecommendations(nil),
	}
}
