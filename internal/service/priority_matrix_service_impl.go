package service

import (
	"context"
	"time"

	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/alexanderramin/csfplan/internal/planner"
	"github.com/alexanderramin/csfplan/internal/repository"
	"github.com/shopspring/decimal"
)

type priorityMatrixService struct {
	loader     *SnapshotLoader
	hourlyRate decimal.Decimal
	observer   UseCaseObserver
	now        func() time.Time
}

// NewPriorityMatrixService prices effort at hourlyRate; a non-positive rate
// falls back to planner.DefaultHourlyRate.
func NewPriorityMatrixService(
	taxonomy repository.TaxonomyReader,
	profiles repository.ProfileReader,
	assessments repository.AssessmentReader,
	hourlyRate decimal.Decimal,
	observers ...UseCaseObserver,
) PriorityMatrixService {
	if !hourlyRate.IsPositive() {
		hourlyRate = decimal.NewFromInt(planner.DefaultHourlyRate)
	}
	return &priorityMatrixService{
		loader:     NewSnapshotLoader(taxonomy, profiles, assessments, nil),
		hourlyRate: hourlyRate,
		observer:   useCaseObserverOrNoop(observers),
		now:        utcNow,
	}
}

func (s *priorityMatrixService) Build(ctx context.Context, req contract.PriorityMatrixRequest) (*contract.PriorityMatrixResponse, error) {
	fields := useCaseFields(req.ProfileID, req.TargetProfileID, req.FunctionScope)
	fields["matrix_type"] = string(req.MatrixType)
	return runUseCase(ctx, s.observer, "priority_matrix", fields, contract.FailedPriorityMatrix,
		func(ctx context.Context) (*contract.PriorityMatrixResponse, error) {
			if err := req.Validate(); err != nil {
				return nil, err
			}
			snap, err := s.loader.Load(ctx, req.ProfileID, req.TargetProfileID, req.FunctionScope, false)
			if err != nil {
				return nil, err
			}

			records := planner.FilterGaps(planner.ScoreGaps(snap.gapInput(req.FunctionScope)), req.MinimumGapScore)
			m := planner.Classify(records, planner.MatrixConfig{
				Type:                req.MatrixType,
				XThreshold:          req.XThreshold,
				YThreshold:          req.YThreshold,
				MaxItemsPerQuadrant: req.MaxItemsPerQuadrant,
				HourlyRate:          s.hourlyRate,
			})
			fields["items"] = m.TotalItems
			fields["overflow"] = m.OverflowItems

			resp := &contract.PriorityMatrixResponse{
				Success:     true,
				GeneratedAt: s.now(),
				Profile:     snap.currentSummary(),
				MatrixType:  m.Type,
				XAxis:       m.XAxis,
				YAxis:       m.YAxis,
				XThreshold:  m.XThreshold,
				YThreshold:  m.YThreshold,
				Quadrants:   m.Quadrants,
				Summary:     contract.NewMatrixSummary(m),
			}
			if req.IncludeRecommendations {
				recs := contract.NewRecommendations(planner.SynthesizeMatrixRecommendations(m))
				resp.Recommendations = &recs
			}
			if req.IncludeResourceEstimate {
				est := planner.EstimateResources(m)
				resp.ResourceEstimate = &est
			}
			return resp, nil
		})
}
