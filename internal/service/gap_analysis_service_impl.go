package service

import (
	"context"
	"time"

	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/alexanderramin/csfplan/internal/planner"
	"github.com/alexanderramin/csfplan/internal/repository"
)

type gapAnalysisService struct {
	loader   *SnapshotLoader
	observer UseCaseObserver
	now      func() time.Time
}

func NewGapAnalysisService(
	taxonomy repository.TaxonomyReader,
	profiles repository.ProfileReader,
	assessments repository.AssessmentReader,
	observers ...UseCaseObserver,
) GapAnalysisService {
	return &gapAnalysisService{
		loader:   NewSnapshotLoader(taxonomy, profiles, assessments, nil),
		observer: useCaseObserverOrNoop(observers),
		now:      utcNow,
	}
}

func (s *gapAnalysisService) Analyze(ctx context.Context, req contract.GapAnalysisRequest) (*contract.GapAnalysisResponse, error) {
	fields := useCaseFields(req.CurrentProfileID, req.TargetProfileID, req.FunctionScope)
	return runUseCase(ctx, s.observer, "gap_analysis", fields, contract.FailedGapAnalysis,
		func(ctx context.Context) (*contract.GapAnalysisResponse, error) {
			if err := req.Validate(); err != nil {
				return nil, err
			}
			snap, err := s.loader.Load(ctx, req.CurrentProfileID, req.TargetProfileID, req.FunctionScope, false)
			if err != nil {
				return nil, err
			}

			records := planner.ScoreGaps(snap.gapInput(req.FunctionScope))
			agg := planner.AggregateGaps(records)
			fields["items"] = len(records)

			resp := &contract.GapAnalysisResponse{
				Success:        true,
				GeneratedAt:    s.now(),
				CurrentProfile: snap.currentSummary(),
				TargetProfile:  snap.targetSummary(),
				Summary: contract.GapSummary{
					TotalItems:       len(records),
					ItemsWithGap:     agg.ItemsWithGap,
					AverageGap:       agg.AverageGap,
					AverageRisk:      agg.AverageRisk,
					TotalEffortHours: agg.TotalEffortHours,
					HighRiskCount:    agg.HighRiskCount,
					ByFunction:       agg.ByFunction,
				},
				Gaps:            atLeastGap(records, req.MinimumGapScore),
				Recommendations: contract.EmptyRecommendations(),
			}
			if req.IncludeRecommendations {
				resp.Recommendations = contract.NewRecommendations(planner.SynthesizeGapRecommendations(agg))
			}
			return resp, nil
		})
}
