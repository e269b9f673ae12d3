package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/repository"
	"github.com/alexanderramin/csfplan/internal/service"
	"github.com/alexanderramin/csfplan/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testFramework = "Function,Category,Subcategory\n" +
	`"GOVERN (GV): Strategy","Organizational Context (GV.OC): Circumstances","GV.OC-01: Mission is understood"` + "\n" +
	`"IDENTIFY (ID): Risk","Asset Management (ID.AM): Assets","ID.AM-01: Hardware inventories are maintained"` + "\n" +
	`"PROTECT (PR): Safeguards","Identity Management (PR.AA): Access","PR.AA-01: Identities are managed"` + "\n"

func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	taxonomy := repository.NewSQLiteTaxonomyRepo(database)
	profiles := repository.NewSQLiteProfileRepo(database)
	assessments := repository.NewSQLiteAssessmentRepo(database)
	deps := repository.NewSQLiteDependencyRepo(database)

	return &App{
		Catalog:      service.NewCatalogService(taxonomy, uow),
		Profiles:     service.NewProfileService(profiles, uow),
		Assessments:  service.NewAssessmentService(assessments, profiles, taxonomy),
		Dependencies: service.NewDependencyService(deps, taxonomy),
		Import:       service.NewImportService(taxonomy, uow),
		Gaps:         service.NewGapAnalysisService(taxonomy, profiles, assessments),
		Matrix:       service.NewPriorityMatrixService(taxonomy, profiles, assessments, decimal.Zero),
		NextActions:  service.NewNextActionsService(taxonomy, profiles, assessments, deps),
	}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// seededApp imports the three-subcategory catalog and creates profile
// "acme" with GV.OC-01 partially implemented.
func seededApp(t *testing.T) *App {
	t.Helper()
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "framework.csv")
	require.NoError(t, os.WriteFile(path, []byte(testFramework), 0o600))

	out, err := executeCmd(t, app, "catalog", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "3 subcategories")

	out, err = executeCmd(t, app, "profile", "create", "--name", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "Created current profile acme")

	out, err = executeCmd(t, app, "assess", "set", "acme", "GV.OC-01", "--level", "partially_implemented")
	require.NoError(t, err)
	assert.Contains(t, out, "GV.OC-01")
	return app
}

func TestProfileList_ShowsCreatedProfile(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "acme")
}

func TestProfileList_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No profiles found.")
}

func TestGapsCmd_JSON(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "gaps", "acme", "-o", "json")
	require.NoError(t, err)

	var resp contract.GapAnalysisResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Gaps, 3)
	assert.Equal(t, "ID.AM-01", resp.Gaps[0].SubcategoryID)
	assert.Equal(t, 100.0, resp.Gaps[0].GapScore)
}

func TestGapsCmd_FunctionScope(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "gaps", "acme", "--function", "GV", "-o", "json")
	require.NoError(t, err)

	var resp contract.GapAnalysisResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Gaps, 1)
	assert.Equal(t, "GV.OC-01", resp.Gaps[0].SubcategoryID)
}

func TestGapsCmd_UnknownProfile(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "gaps", "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nobody")
}

func TestGapsCmd_RejectsBadFunction(t *testing.T) {
	app := seededApp(t)

	_, err := executeCmd(t, app, "gaps", "acme", "--function", "XX")
	require.Error(t, err)
}

func TestMatrixCmd_RejectsBadType(t *testing.T) {
	app := seededApp(t)

	_, err := executeCmd(t, app, "matrix", "acme", "--type", "diagonal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "effort_impact")
}

func TestMatrixCmd_ValidationError(t *testing.T) {
	app := seededApp(t)

	_, err := executeCmd(t, app, "matrix", "acme", "--max-items", "50")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_items_per_quadrant")
}

func TestMatrixCmd_YAML(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "matrix", "acme", "-o", "yaml", "--estimate")
	require.NoError(t, err)
	assert.Contains(t, out, "success: true")
}

func TestNextCmd_JSON(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "next", "acme", "-o", "json")
	require.NoError(t, err)

	var resp contract.NextActionsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.SuggestedActions)
	assert.Equal(t, "GV.OC-01", resp.SuggestedActions[0].SubcategoryID)
	assert.Equal(t, domain.GoalBalanced, resp.OptimizationGoal)
}

func TestNextCmd_UsesAppDefaults(t *testing.T) {
	app := seededApp(t)
	app.DefaultCapacity = 10
	app.DefaultHorizon = 2

	out, err := executeCmd(t, app, "next", "acme", "-o", "json")
	require.NoError(t, err)

	var resp contract.NextActionsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 20, resp.Capacity.TotalCapacityHours)
}

func TestNextCmd_InvalidCapacity(t *testing.T) {
	app := seededApp(t)

	_, err := executeCmd(t, app, "next", "acme", "--capacity", "500")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity_hours_per_week")
}

func TestNextCmd_ExplicitZeroIsRejected(t *testing.T) {
	app := seededApp(t)
	app.DefaultCapacity = 40
	app.DefaultHorizon = 4

	out, err := executeCmd(t, app, "next", "acme", "--capacity", "0", "--horizon", "0", "-o", "json")
	require.Error(t, err)
	assert.Equal(t, contract.ErrValidation, contract.CodeOf(err))
	assert.Contains(t, err.Error(), "capacity_hours_per_week")
	assert.Contains(t, err.Error(), "horizon_weeks")
	assert.Empty(t, out)
}

func TestNextCmd_ExplicitFlagBeatsAppDefault(t *testing.T) {
	app := seededApp(t)
	app.DefaultCapacity = 10
	app.DefaultHorizon = 2

	out, err := executeCmd(t, app, "next", "acme", "--capacity", "30", "-o", "json")
	require.NoError(t, err)

	var resp contract.NextActionsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 30, resp.Capacity.CapacityHoursPerWeek)
	assert.Equal(t, 2, resp.Capacity.HorizonWeeks)
	assert.Equal(t, 60, resp.Capacity.TotalCapacityHours)
}

func TestExportCmd_ExplicitZeroHorizonIsRejected(t *testing.T) {
	app := seededApp(t)
	path := filepath.Join(t.TempDir(), "plan.xlsx")

	_, err := executeCmd(t, app, "export", "acme", "--horizon", "0", "--out", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horizon_weeks")
	assert.NoFileExists(t, path)
}

func TestNextCmd_JSONUsesSnakeCase(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "next", "acme", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_capacity_hours": 160`)
	assert.Contains(t, out, `"suggested_actions"`)
	assert.NotContains(t, out, "TotalCapacityHours")
}

const weightedFramework = "Function,Category,Subcategory,Criticality\n" +
	`"PROTECT (PR): Safeguards","Identity Management (PR.AA): Access","PR.AA-01: Identities are managed",2` + "\n" +
	`"PROTECT (PR): Safeguards","Identity Management (PR.AA): Access","PR.AA-02: Identities are proofed",` + "\n"

func TestCatalogImport_CriticalityDrivesRisk(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "framework.csv")
	require.NoError(t, os.WriteFile(path, []byte(weightedFramework), 0o600))

	_, err := executeCmd(t, app, "catalog", "import", path)
	require.NoError(t, err)
	_, err = executeCmd(t, app, "profile", "create", "--name", "acme")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "gaps", "acme", "-o", "json")
	require.NoError(t, err)

	var resp contract.GapAnalysisResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Gaps, 2)
	risk := map[string]float64{}
	for _, g := range resp.Gaps {
		risk[g.SubcategoryID] = g.RiskScore
	}
	assert.Equal(t, 4.0, risk["PR.AA-01"], "100 x 2 / 50")
	assert.Equal(t, 10.0, risk["PR.AA-02"], "default weight 5")
}

func TestCatalogImport_CriticalityOutOfRangeIsRefused(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "framework.csv")
	csv := "Function,Category,Subcategory,Criticality\n" +
		`"PROTECT (PR): Safeguards","Identity Management (PR.AA): Access","PR.AA-01: Identities are managed",12` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	_, err := executeCmd(t, app, "catalog", "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "criticality for PR.AA-01")
}

func TestNextCmd_InteractiveNeedsTerminal(t *testing.T) {
	app := seededApp(t)

	_, err := executeCmd(t, app, "next", "acme", "--interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestExportCmd_WritesWorkbook(t *testing.T) {
	app := seededApp(t)
	path := filepath.Join(t.TempDir(), "plan.xlsx")

	out, err := executeCmd(t, app, "export", "acme", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Matrix")
}

func TestDepCmd_AddListRemove(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "dep", "add", "PR.AA-01", "ID.AM-01", "--strength", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "PR.AA-01 now depends on ID.AM-01")

	out, err = executeCmd(t, app, "dep", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ID.AM-01")

	_, err = executeCmd(t, app, "dep", "remove", "PR.AA-01", "ID.AM-01")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "dep", "remove", "PR.AA-01", "ID.AM-01")
	require.Error(t, err)
}

func TestProfileClone_WithAdjustments(t *testing.T) {
	app := seededApp(t)

	out, err := executeCmd(t, app, "profile", "clone", "acme", "--name", "acme-2027", "--kind", "target",
		"--set", "PR.AA-01=fully_implemented")
	require.NoError(t, err)
	assert.Contains(t, out, "1 adjustments")

	out, err = executeCmd(t, app, "gaps", "acme", "--target", "acme-2027", "-o", "json")
	require.NoError(t, err)

	var resp contract.GapAnalysisResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Gaps, 2)
	assert.Equal(t, "PR.AA-01", resp.Gaps[0].SubcategoryID)
	assert.Equal(t, "GV.OC-01", resp.Gaps[1].SubcategoryID)
	assert.Zero(t, resp.Gaps[1].GapScore)
}

func TestParseAdjustments(t *testing.T) {
	got, err := parseAdjustments([]string{"pr.aa-01=largely_implemented", "GV.OC-01=partially_implemented:3"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "PR.AA-01", got[0].SubcategoryID)
	assert.Equal(t, domain.LevelLargelyImplemented, got[0].Level)
	assert.Equal(t, domain.LevelLargelyImplemented.DefaultMaturity(), got[0].MaturityScore)
	assert.Equal(t, 3, got[1].MaturityScore)

	_, err = parseAdjustments([]string{"PR.AA-01"})
	assert.Error(t, err)
	_, err = parseAdjustments([]string{"PR.AA-01=sort_of"})
	assert.Error(t, err)
	_, err = parseAdjustments([]string{"PR.AA-01=fully_implemented:x"})
	assert.Error(t, err)
}

func TestPlanWizard_Apply(t *testing.T) {
	req := contract.NewNextActionsRequest("p1")
	wiz := newPlanWizard(req)
	assert.Equal(t, "40", wiz.capacity)

	wiz.goal = domain.GoalQuickWins
	wiz.capacity = "20"
	wiz.horizon = "6"
	require.NoError(t, wiz.apply(&req))
	assert.Equal(t, domain.GoalQuickWins, req.OptimizationGoal)
	assert.Equal(t, 20, req.CapacityHoursPerWeek)
	assert.Equal(t, 6, req.HorizonWeeks)

	assert.NotNil(t, wiz.form(&bytes.Buffer{}))
	assert.True(t, wizardKeyMap().Quit.Enabled())

	assert.Error(t, intInRange(1, 12)("13"))
	assert.Error(t, intInRange(1, 12)("abc"))
	assert.NoError(t, intInRange(1, 12)("12"))
}
