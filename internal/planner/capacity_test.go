package planner

import (
	"testing"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ready(records ...GapRecord) map[string]Readiness {
	out := map[string]Readiness{}
	for _, r := range records {
		out[r.SubcategoryID] = Readiness{SubcategoryID: r.SubcategoryID, Status: domain.StatusReady}
	}
	return out
}

func TestSchedule_AdmissionLimitWithOvercommit(t *testing.T) {
	records := []GapRecord{
		gapRecord("PR.AA-01", 80, domain.LevelLargelyImplemented),
		gapRecord("PR.AA-02", 80, domain.LevelLargelyImplemented),
		gapRecord("PR.AA-03", 80, domain.LevelLargelyImplemented),
	}

	plan := Schedule(records, ready(records...), ScheduleConfig{
		CapacityHoursPerWeek: 20, HorizonWeeks: 4, Goal: domain.GoalBalanced,
	})

	assert.Equal(t, 80, plan.Capacity.TotalCapacityHours)
	assert.InDelta(t, 96.0, plan.Capacity.AdmissionLimitHours, 1e-9)
	require.Len(t, plan.Actions, 2, "a third 42h item would exceed 96h")
	assert.Equal(t, 84, plan.Capacity.AllocatedHours)
	assert.Equal(t, 105, plan.Capacity.UtilizationPercentage)
	assert.Equal(t, 1, plan.Capacity.DeferredActions)
	assert.Equal(t, 2, plan.Capacity.FeasibleActions)
}

func TestSchedule_StopsAtFirstOverflow(t *testing.T) {
	first := gapRecord("PR.AA-01", 100, domain.LevelLargelyImplemented)  // ROI 33.3, 42h
	second := gapRecord("PR.AA-02", 100, domain.LevelNotImplemented)    // ROI 12.5, 127h
	third := gapRecord("PR.AA-03", 20, domain.LevelPartiallyImplemented) // ROI 4, 76h
	records := []GapRecord{third, second, first}

	plan := Schedule(records, ready(records...), ScheduleConfig{
		CapacityHoursPerWeek: 30, HorizonWeeks: 4, Goal: domain.GoalBalanced,
	})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, "PR.AA-01", plan.Actions[0].Gap.SubcategoryID)
	assert.Equal(t, 1, plan.Actions[0].Rank)
	assert.Equal(t, 2, plan.Capacity.DeferredActions, "later items are not admitted even if they would fit")
}

func TestSchedule_BlockedItemsNeverAdmitted(t *testing.T) {
	blocked := gapRecord("PR.AA-01", 100, domain.LevelLargelyImplemented)
	open := gapRecord("PR.AA-02", 60, domain.LevelLargelyImplemented)
	readiness := ResolveReadiness(
		[]string{"PR.AA-01", "PR.AA-02"},
		append([]domain.Assessment{assess("ID.AM-02", domain.LevelNotImplemented, 0)}, foundation...),
		[]domain.DependencyEdge{{SubcategoryID: "PR.AA-01", DependsOnID: "ID.AM-02", Strength: 9, Type: domain.DependencyPrerequisite}},
	)

	plan := Schedule([]GapRecord{blocked, open}, readiness, ScheduleConfig{
		CapacityHoursPerWeek: 40, HorizonWeeks: 4, Goal: domain.GoalBalanced,
	})

	require.Len(t, plan.Blocked, 1)
	assert.Equal(t, "PR.AA-01", plan.Blocked[0].Gap.SubcategoryID)
	require.Len(t, plan.Blocked[0].Blockers, 1)
	assert.Equal(t, "ID.AM-02", plan.Blocked[0].Blockers[0].DependsOn)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, "PR.AA-02", plan.Actions[0].Gap.SubcategoryID)
	assert.Equal(t, 1, plan.Capacity.FeasibleActions)
	assert.Equal(t, 1, plan.Capacity.BlockedActions)
}

func TestSchedule_MinimumGapAndZeroGapExcluded(t *testing.T) {
	records := []GapRecord{
		gapRecord("GV.OC-01", 0, domain.LevelFullyImplemented),
		gapRecord("GV.OC-02", 20, domain.LevelLargelyImplemented),
		gapRecord("GV.OC-03", 60, domain.LevelLargelyImplemented),
	}

	plan := Schedule(records, ready(records...), ScheduleConfig{
		CapacityHoursPerWeek: 40, HorizonWeeks: 4, Goal: domain.GoalBalanced, MinimumGapScore: 30,
	})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, "GV.OC-03", plan.Actions[0].Gap.SubcategoryID)
	assert.Equal(t, 1, plan.Capacity.Candidates)
}

func TestSchedule_GoalReordersByFunction(t *testing.T) {
	gv := gapRecord("GV.OC-01", 60, domain.LevelLargelyImplemented)
	pr := gapRecord("PR.AA-01", 60, domain.LevelLargelyImplemented)
	records := []GapRecord{gv, pr}
	cfg := ScheduleConfig{CapacityHoursPerWeek: 40, HorizonWeeks: 4}

	cfg.Goal = domain.GoalCompliance
	plan := Schedule(records, ready(records...), cfg)
	require.Len(t, plan.Actions, 2)
	assert.Equal(t, "GV.OC-01", plan.Actions[0].Gap.SubcategoryID)
	assert.Contains(t, plan.Actions[0].Justification, "GV weighted x1.5")

	cfg.Goal = domain.GoalRiskReduction
	plan = Schedule(records, ready(records...), cfg)
	require.Len(t, plan.Actions, 2)
	assert.Equal(t, "PR.AA-01", plan.Actions[0].Gap.SubcategoryID)
}

func TestSchedule_WeeksAndMilestones(t *testing.T) {
	// Fully implemented but immature items cost 8h each.
	records := []GapRecord{
		gapRecord("GV.OC-01", 60, domain.LevelFullyImplemented),
		gapRecord("ID.AM-01", 60, domain.LevelFullyImplemented),
		gapRecord("ID.AM-02", 60, domain.LevelFullyImplemented),
		gapRecord("ID.AM-03", 60, domain.LevelFullyImplemented),
	}

	plan := Schedule(records, ready(records...), ScheduleConfig{
		CapacityHoursPerWeek: 30, HorizonWeeks: 2, Goal: domain.GoalBalanced,
	})

	require.Len(t, plan.Weeks, 2)
	w1 := plan.Weeks[0]
	assert.Equal(t, 1, w1.WeekIndex)
	assert.Equal(t, []string{"GV.OC-01", "ID.AM-01", "ID.AM-02"}, w1.SubcategoryIDs)
	assert.Equal(t, 24, w1.HoursAllocated)
	assert.Equal(t, []string{
		"Kickoff: remediation program start",
		"Governance framework update",
		"Complete 3 implementations",
	}, w1.Milestones)

	w2 := plan.Weeks[1]
	assert.Equal(t, []string{"ID.AM-03"}, w2.SubcategoryIDs)
	assert.Empty(t, w2.Milestones)
	assert.Equal(t, 2, plan.Actions[3].Week)
}

func TestSchedule_HorizonCutOff(t *testing.T) {
	records := []GapRecord{
		gapRecord("DE.CM-01", 60, domain.LevelFullyImplemented),
		gapRecord("DE.CM-02", 60, domain.LevelFullyImplemented),
		gapRecord("DE.CM-03", 60, domain.LevelFullyImplemented),
	}

	plan := Schedule(records, ready(records...), ScheduleConfig{
		CapacityHoursPerWeek: 10, HorizonWeeks: 2, Goal: domain.GoalBalanced,
	})

	require.Len(t, plan.Actions, 3, "24h fits the 24h admission limit")
	require.Len(t, plan.Weeks, 2)
	assert.Equal(t, 0, plan.Actions[2].Week)
	assert.Equal(t, 1, plan.Capacity.UnscheduledActions)
	assert.Equal(t, 16, plan.Capacity.ScheduledHours)
	assert.Equal(t, 24, plan.Capacity.AllocatedHours)
}

func TestSchedule_OversizedItemFillsItsOwnWeek(t *testing.T) {
	big := gapRecord("RS.MA-01", 100, domain.LevelNotImplemented)
	small := gapRecord("RS.MA-02", 20, domain.LevelFullyImplemented)
	records := []GapRecord{big, small}

	plan := Schedule(records, ready(records...), ScheduleConfig{
		CapacityHoursPerWeek: 20, HorizonWeeks: 12, Goal: domain.GoalBalanced,
	})

	require.Len(t, plan.Weeks, 2)
	for _, w := range plan.Weeks {
		assert.Len(t, w.SubcategoryIDs, 1)
	}
	assert.Contains(t, []int{127, 8}, plan.Weeks[0].HoursAllocated)
}

func TestSchedule_PartialItemsAreStretch(t *testing.T) {
	rec := gapRecord("PR.DS-01", 60, domain.LevelLargelyImplemented)
	readiness := ResolveReadiness([]string{"PR.DS-01"}, nil, nil)

	plan := Schedule([]GapRecord{rec}, readiness, ScheduleConfig{
		CapacityHoursPerWeek: 40, HorizonWeeks: 1, Goal: domain.GoalBalanced,
	})

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, 0, plan.Capacity.FeasibleActions)
	assert.Equal(t, 1, plan.Capacity.StretchActions)
	assert.Contains(t, plan.Actions[0].Justification, "soft dependencies: GV foundation; ID foundation")
	assert.Contains(t, plan.Actions[0].Impact, "60% maturity gap")
}

func TestSchedule_NoCandidates(t *testing.T) {
	plan := Schedule(nil, nil, ScheduleConfig{CapacityHoursPerWeek: 40, HorizonWeeks: 4, Goal: domain.GoalQuickWins})

	assert.NotNil(t, plan.Actions)
	assert.NotNil(t, plan.Blocked)
	assert.NotNil(t, plan.Weeks)
	assert.Equal(t, 0, plan.Capacity.UtilizationPercentage)
	assert.Equal(t, 160, plan.Capacity.TotalCapacityHours)
}
