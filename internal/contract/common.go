package contract

import (
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/planner"
)

type GapRecord = planner.GapRecord

type FunctionSummary = planner.FunctionSummary

type Quadrant = planner.Quadrant

type ClassifiedItem = planner.ClassifiedItem

type ResourceEstimate = planner.ResourceEstimate

type CapacitySummary = planner.CapacitySummary

type ScheduledWeek = planner.ScheduledWeek

// ProfileSummary identifies a profile in responses.
type ProfileSummary struct {
	ID              string             `json:"id" yaml:"id"`
	Name            string             `json:"name" yaml:"name"`
	Kind            domain.ProfileKind `json:"kind" yaml:"kind"`
	OrgName         string             `json:"org_name" yaml:"org_name"`
	AssessmentCount int                `json:"assessment_count" yaml:"assessment_count"`
}

// NewProfileSummary builds a summary from a stored profile.
func NewProfileSummary(p *domain.Profile, assessments int) ProfileSummary {
	return ProfileSummary{
		ID:              p.ID,
		Name:            p.Name,
		Kind:            p.Kind,
		OrgName:         p.OrgName,
		AssessmentCount: assessments,
	}
}

// Recommendations groups gap-analysis and matrix guidance by time horizon.
type Recommendations struct {
	Immediate []string `json:"immediate" yaml:"immediate"`
	ShortTerm []string `json:"short_term" yaml:"short_term"`
	LongTerm  []string `json:"long_term" yaml:"long_term"`
}

// NewRecommendations groups synthesized messages. Every slice is non-nil.
func NewRecommendations(recs []planner.Recommendation) Recommendations {
	g := planner.GroupByAudience(recs)
	return Recommendations{
		Immediate: nonNil(g[planner.AudienceImmediate]),
		ShortTerm: nonNil(g[planner.AudienceShortTerm]),
		LongTerm:  nonNil(g[planner.AudienceLongTerm]),
	}
}

// EmptyRecommendations has every group present and empty.
func EmptyRecommendations() Recommendations {
	return NewRecommendations(nil)
}

// Count is the total number of messages.
func (r Recommendations) Count() int {
	return len(r.Immediate) + len(r.ShortTerm) + len(r.LongTerm)
}

// ActionRecommendations groups next-actions guidance by concern.
type ActionRecommendations struct {
	ImmediatePriorities []string `json:"immediate_priorities" yaml:"immediate_priorities"`
	Resource            []string `json:"resource" yaml:"resource"`
	Dependency          []string `json:"dependency" yaml:"dependency"`
	SuccessFactors      []string `json:"success_factors" yaml:"success_factors"`
}

// NewActionRecommendations groups synthesized messages. Every slice is non-nil.
func NewActionRecommendations(recs []planner.Recommendation) ActionRecommendations {
	g := planner.GroupByAudience(recs)
	return ActionRecommendations{
		ImmediatePriorities: nonNil(g[planner.AudienceImmediatePriorities]),
		Resource:            nonNil(g[planner.AudienceResource]),
		Dependency:          nonNil(g[planner.AudienceDependency]),
		SuccessFactors:      nonNil(g[planner.AudienceSuccessFactors]),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
