package planner

import (
	"testing"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipelineOutput struct {
	gaps   []GapRecord
	matrix MatrixResult
	plan   Plan
	recs   []Recommendation
}

func runPipeline(in GapInput, edges []domain.DependencyEdge) pipelineOutput {
	gaps := ScoreGaps(in)
	ids := make([]string, len(gaps))
	for i, g := range gaps {
		ids[i] = g.SubcategoryID
	}
	readiness := ResolveReadiness(ids, in.Current, edges)
	plan := Schedule(gaps, readiness, ScheduleConfig{CapacityHoursPerWeek: 40, HorizonWeeks: 6, Goal: domain.GoalBalanced})
	return pipelineOutput{
		gaps:   gaps,
		matrix: Classify(FilterGaps(gaps, 0), DefaultMatrixConfig()),
		plan:   plan,
		recs:   SynthesizeActionRecommendations(plan),
	}
}

func TestPipeline_IdempotentOnUnchangedSnapshot(t *testing.T) {
	catalog := []domain.TaxonomyNode{
		subcategory("GV.OC-01"), subcategory("GV.RM-01"), subcategory("ID.AM-01"),
		subcategory("PR.AA-01"), subcategory("PR.DS-01"), subcategory("DE.CM-01"),
		subcategory("RS.MA-01"), subcategory("RC.RP-01"),
	}
	in := GapInput{
		Catalog: catalog,
		Current: []domain.Assessment{
			assess("GV.OC-01", domain.LevelPartiallyImplemented, 2),
			assess("ID.AM-01", domain.LevelLargelyImplemented, 3),
			assess("PR.AA-01", domain.LevelNotImplemented, 0),
			assess("DE.CM-01", domain.LevelFullyImplemented, 5),
		},
		SingleProfile: true,
	}
	edges := []domain.DependencyEdge{
		{SubcategoryID: "PR.DS-01", DependsOnID: "PR.AA-01", Strength: 9, Type: domain.DependencyPrerequisite},
		{SubcategoryID: "RS.MA-01", DependsOnID: "DE.CM-01", Strength: 9, Type: domain.DependencyPrerequisite},
	}

	first := runPipeline(in, edges)
	second := runPipeline(in, edges)

	assert.Equal(t, first, second)
	require.Len(t, first.gaps, 8)
	require.Len(t, first.plan.Blocked, 1)
	assert.Equal(t, "PR.DS-01", first.plan.Blocked[0].Gap.SubcategoryID)
	assert.Equal(t, 7, first.matrix.AdmittedItems, "DE.CM-01 has no gap")
}
