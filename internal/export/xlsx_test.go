package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/planner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleActions() *contract.NextActionsResponse {
	resp := contract.FailedNextActions(nil)
	resp.Success = true
	resp.Error = nil
	resp.GeneratedAt = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	resp.Profile = contract.ProfileSummary{ID: "p1", Name: "Acme current"}
	resp.OptimizationGoal = domain.GoalBalanced
	resp.Capacity = planner.CapacitySummary{CapacityHoursPerWeek: 40, HorizonWeeks: 2, TotalCapacityHours: 80, AllocatedHours: 84}
	resp.SuggestedActions = []contract.SuggestedAction{
		{Rank: 1, SubcategoryID: "GV.OC-01", Function: domain.FunctionGovern, Title: "Mission", GapScore: 60, EffortHours: 42, DependencyStatus: domain.StatusReady, Week: 1},
		{Rank: 2, SubcategoryID: "PR.AA-01", Function: domain.FunctionProtect, GapScore: 100, EffortHours: 42, DependencyStatus: domain.StatusPartial, Blockers: []string{"GV foundation"}},
	}
	resp.BlockedActions = []contract.BlockedAction{
		{SubcategoryID: "PR.DS-01", GapScore: 80, EffortHours: 127, Blockers: []string{"PR.AA-01 (hard prerequisite, strength 9)"}},
	}
	resp.Timeline = []contract.ScheduledWeek{
		{WeekIndex: 1, HoursAllocated: 42, SubcategoryIDs: []string{"GV.OC-01"}, Milestones: []string{"Kickoff: remediation program start", "Governance framework update"}},
	}
	return &resp
}

func sampleMatrix() *contract.PriorityMatrixResponse {
	resp := contract.FailedPriorityMatrix(nil)
	resp.Quadrants = []contract.Quadrant{
		{ID: domain.QuadrantQuickWins, Label: "Quick Wins", Items: []planner.ClassifiedItem{
			{Gap: planner.GapRecord{SubcategoryID: "GV.OC-01", GapScore: 60, EffortHours: 42}, X: 3, Y: 6, PriorityScore: 95, Cost: decimal.NewFromInt(6300)},
		}},
		{ID: domain.QuadrantStrategic, Label: "Strategic Initiatives", Items: []planner.ClassifiedItem{}},
	}
	return &resp
}

func openWorkbook(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestPlanWorkbook_WritesAllSheets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PlanWorkbook{Actions: sampleActions(), Matrix: sampleMatrix()}.Write(&buf))

	f := openWorkbook(t, &buf)
	assert.Equal(t, []string{SheetSummary, SheetActions, SheetTimeline, SheetMatrix}, f.GetSheetList())

	rows, err := f.GetRows(SheetActions)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Subcategory", rows[0][1])
	assert.Equal(t, "GV.OC-01", rows[1][1])
	assert.Equal(t, "1", rows[1][9])
	assert.Equal(t, "unscheduled", rows[2][9])
	assert.Equal(t, "GV foundation", rows[2][10])
	assert.Equal(t, "blocked", rows[3][8])

	timeline, err := f.GetRows(SheetTimeline)
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Equal(t, "Kickoff: remediation program start; Governance framework update", timeline[1][3])

	matrix, err := f.GetRows(SheetMatrix)
	require.NoError(t, err)
	require.Len(t, matrix, 2)
	assert.Equal(t, "Quick Wins", matrix[1][0])
	assert.Equal(t, "6300", matrix[1][8])

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Profile", "Acme current"}, summary[0])
}

func TestPlanWorkbook_WithoutMatrix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	require.NoError(t, PlanWorkbook{Actions: sampleActions()}.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetSummary, SheetActions, SheetTimeline}, f.GetSheetList())
}

func TestPlanWorkbook_RequiresActions(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, PlanWorkbook{}.Write(&buf))
}
