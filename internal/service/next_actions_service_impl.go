package service

import (
	"context"
	"time"

	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/alexanderramin/csfplan/internal/planner"
	"github.com/alexanderramin/csfplan/internal/repository"
)

type nextActionsService struct {
	loader   *SnapshotLoader
	observer UseCaseObserver
	now      func() time.Time
}

func NewNextActionsService(
	taxonomy repository.TaxonomyReader,
	profiles repository.ProfileReader,
	assessments repository.AssessmentReader,
	deps repository.DependencyReader,
	observers ...UseCaseObserver,
) NextActionsService {
	return &nextActionsService{
		loader:   NewSnapshotLoader(taxonomy, profiles, assessments, deps),
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
	}
}

func (s *nextActionsService) Plan(ctx context.Context, req contract.NextActionsRequest) (*contract.NextActionsResponse, error) {
	fields := useCaseFields(req.ProfileID, req.TargetProfileID, req.FunctionScope)
	fields["goal"] = string(req.OptimizationGoal)
	fields["capacity"] = req.CapacityHoursPerWeek
	fields["horizon"] = req.HorizonWeeks
	return runUseCase(ctx, s.observer, "next_actions", fields, contract.FailedNextActions,
		func(ctx context.Context) (*contract.NextActionsResponse, error) {
			if err := req.Validate(); err != nil {
				return nil, err
			}
			snap, err := s.loader.Load(ctx, req.ProfileID, req.TargetProfileID, req.FunctionScope, true)
			if err != nil {
				return nil, err
			}

			records := planner.ScoreGaps(snap.gapInput(req.FunctionScope))
			ids := make([]string, len(records))
			for i, r := range records {
				ids[i] = r.SubcategoryID
			}
			readiness := planner.ResolveReadiness(ids, snap.currentAssessments, snap.edges)

			plan := planner.Schedule(records, readiness, planner.ScheduleConfig{
				CapacityHoursPerWeek: req.CapacityHoursPerWeek,
				HorizonWeeks:         req.HorizonWeeks,
				Goal:                 req.OptimizationGoal,
				MinimumGapScore:      req.MinimumGapScore,
			})
			fields["admitted"] = len(plan.Actions)
			fields["blocked"] = len(plan.Blocked)

			resp := &contract.NextActionsResponse{
				Success:          true,
				GeneratedAt:      s.now(),
				Profile:          snap.currentSummary(),
				OptimizationGoal: plan.Goal,
				Capacity:         plan.Capacity,
				SuggestedActions: make([]contract.SuggestedAction, len(plan.Actions)),
				BlockedActions:   make([]contract.BlockedAction, len(plan.Blocked)),
				Timeline:         plan.Weeks,
				Recommendations:  contract.NewActionRecommendations(planner.SynthesizeActionRecommendations(plan)),
			}
			for i, a := range plan.Actions {
				resp.SuggestedActions[i] = contract.NewSuggestedAction(a)
			}
			for i, b := range plan.Blocked {
				resp.BlockedActions[i] = contract.NewBlockedAction(b)
			}
			return resp, nil
		})
}
