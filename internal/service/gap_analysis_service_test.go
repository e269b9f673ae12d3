package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/csfplan/internal/config"
	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/repository"
	"github.com/alexanderramin/csfplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeGapService(store *fakeStore, obs ...UseCaseObserver) GapAnalysisService {
	return NewGapAnalysisService(fakeTaxonomy{store}, fakeProfiles{store}, store, obs...)
}

func TestGapAnalysis_SingleProfileAgainstStoredCatalog(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.SeedCatalog(t, database, "GV.OC-01", "PR.AA-01", "DE.CM-01")

	profiles := repository.NewSQLiteProfileRepo(database)
	assessments := repository.NewSQLiteAssessmentRepo(database)
	cur := testutil.NewTestProfile("Acme current")
	require.NoError(t, profiles.Create(ctx, cur))
	require.NoError(t, assessments.Upsert(ctx, testutil.NewTestAssessment(cur.ID, "GV.OC-01", domain.LevelPartiallyImplemented, 2)))
	require.NoError(t, assessments.Upsert(ctx, testutil.NewTestAssessment(cur.ID, "DE.CM-01", domain.LevelFullyImplemented, 5)))

	svc := NewGapAnalysisService(repository.NewSQLiteTaxonomyRepo(database), profiles, assessments)
	resp, err := svc.Analyze(ctx, contract.NewGapAnalysisRequest(cur.ID))
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.TargetProfile)
	assert.Equal(t, 2, resp.CurrentProfile.AssessmentCount)

	require.Len(t, resp.Gaps, 3)
	assert.Equal(t, "PR.AA-01", resp.Gaps[0].SubcategoryID)
	assert.Equal(t, 100.0, resp.Gaps[0].GapScore)
	assert.Equal(t, 127, resp.Gaps[0].EffortHours)
	assert.Equal(t, "GV.OC-01", resp.Gaps[1].SubcategoryID)
	assert.Equal(t, 60.0, resp.Gaps[1].GapScore)
	assert.Equal(t, "DE.CM-01", resp.Gaps[2].SubcategoryID)
	assert.Zero(t, resp.Gaps[2].GapScore)

	s := resp.Summary
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, 2, s.ItemsWithGap)
	assert.InDelta(t, 53.33, s.AverageGap, 0.01)
	assert.Equal(t, 203, s.TotalEffortHours)
	assert.Equal(t, 1, s.HighRiskCount)
	require.Len(t, s.ByFunction, 3)
	assert.Equal(t, domain.FunctionGovern, s.ByFunction[0].Function)

	assert.Contains(t, resp.Recommendations.Immediate, "Address 1 high-risk gaps first, starting with PR.AA-01")
	assert.Len(t, resp.Recommendations.ShortTerm, 2)
	assert.Len(t, resp.Recommendations.LongTerm, 1)
}

func TestGapAnalysis_TwoProfilesScoresTargetSubcategoriesOnly(t *testing.T) {
	store := newFakeStore()
	store.addSubcategories("GV.OC-01", "PR.AA-01", "DE.CM-01")
	store.addProfile("cur", domain.ProfileCurrent,
		assessed("GV.OC-01", domain.LevelPartiallyImplemented, 2),
		assessed("DE.CM-01", domain.LevelFullyImplemented, 5))
	store.addProfile("tgt", domain.ProfileTarget,
		assessed("GV.OC-01", domain.LevelFullyImplemented, 5),
		assessed("PR.AA-01", domain.LevelLargelyImplemented, 4))

	req := contract.NewGapAnalysisRequest("cur")
	req.TargetProfileID = "tgt"
	resp, err := newFakeGapService(store).Analyze(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.TargetProfile)
	assert.Equal(t, "tgt", resp.TargetProfile.ID)
	require.Len(t, resp.Gaps, 2)
	assert.Equal(t, "PR.AA-01", resp.Gaps[0].SubcategoryID)
	assert.Equal(t, 80.0, resp.Gaps[0].GapScore)
	assert.Equal(t, domain.LevelLargelyImplemented, resp.Gaps[0].TargetLevel)
	assert.Equal(t, "GV.OC-01", resp.Gaps[1].SubcategoryID)
}

func TestGapAnalysis_ScopeAndMinimumGap(t *testing.T) {
	store := newFakeStore()
	store.addSubcategories("GV.OC-01", "GV.RM-01", "PR.AA-01")
	store.addProfile("cur", domain.ProfileCurrent,
		assessed("GV.OC-01", domain.LevelLargelyImplemented, 4))

	req := contract.NewGapAnalysisRequest("cur")
	req.FunctionScope = []domain.Function{domain.FunctionGovern}
	req.MinimumGapScore = 50
	resp, err := newFakeGapService(store).Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Summary.TotalItems, "summary covers every scored item in scope")
	require.Len(t, resp.Gaps, 1)
	assert.Equal(t, "GV.RM-01", resp.Gaps[0].SubcategoryID)
}

func TestGapAnalysis_RecommendationsCanBeSkipped(t *testing.T) {
	store := newFakeStore()
	store.addSubcategories("GV.OC-01")
	store.addProfile("cur", domain.ProfileCurrent)

	req := contract.NewGapAnalysisRequest("cur")
	req.IncludeRecommendations = false
	resp, err := newFakeGapService(store).Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, resp.Recommendations.Count())
	assert.NotNil(t, resp.Recommendations.Immediate)
}

func TestGapAnalysis_ValidationRunsBeforeAnyRead(t *testing.T) {
	store := newFakeStore()
	req := contract.NewGapAnalysisRequest("")
	req.MinimumGapScore = 120

	resp, err := newFakeGapService(store).Analyze(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, contract.ErrValidation, contract.CodeOf(err))
	assert.Zero(t, store.reads)

	require.NotNil(t, resp)
	assert.False(t, resp.Success)
	assert.Equal(t, err, resp.Error)
	assert.NotNil(t, resp.Gaps)
	assert.Empty(t, resp.Gaps)
}

func TestGapAnalysis_UnknownProfiles(t *testing.T) {
	store := newFakeStore()
	store.addProfile("cur", domain.ProfileCurrent)
	svc := newFakeGapService(store)

	_, err := svc.Analyze(context.Background(), contract.NewGapAnalysisRequest("ghost"))
	assert.Equal(t, contract.ErrNotFound, contract.CodeOf(err))
	assert.EqualError(t, err, "NOT_FOUND: profile ghost not found")

	req := contract.NewGapAnalysisRequest("cur")
	req.TargetProfileID = "ghost-target"
	_, err = svc.Analyze(context.Background(), req)
	assert.Equal(t, contract.ErrNotFound, contract.CodeOf(err))
}

func TestGapAnalysis_StorageFailureIsInternal(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("disk I/O error")
	obs := &recordingObserver{}

	resp, err := newFakeGapService(store, obs).Analyze(context.Background(), contract.NewGapAnalysisRequest("cur"))
	require.Error(t, err)
	assert.Equal(t, contract.ErrInternal, contract.CodeOf(err))
	assert.NotContains(t, err.Error(), "disk")
	assert.False(t, resp.Success)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "gap_analysis", obs.events[0].Name)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, contract.ErrInternal, obs.events[0].Code)
	assert.ErrorContains(t, obs.events[0].Err, "disk I/O error")
}

func TestGapAnalysis_DefaultLoggerRecordsInternalCause(t *testing.T) {
	cfg, err := config.Parse(map[string]string{"CSFPLAN_DB": "/tmp/csfplan.db"})
	require.NoError(t, err)
	var buf bytes.Buffer
	store := newFakeStore()
	store.err = errors.New("disk I/O error")

	svc := newFakeGapService(store, NewSlogUseCaseObserver(cfg.Logger(&buf)))
	_, err = svc.Analyze(context.Background(), contract.NewGapAnalysisRequest("cur"))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "disk")

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "use_case=gap_analysis")
	assert.Contains(t, out, "code=INTERNAL_ERROR")
	assert.Contains(t, out, `error="disk I/O error"`)
}

func TestGapAnalysis_DefaultLoggerSkipsSuccess(t *testing.T) {
	cfg, err := config.Parse(map[string]string{"CSFPLAN_DB": "/tmp/csfplan.db"})
	require.NoError(t, err)
	var buf bytes.Buffer
	store := newFakeStore()
	store.profiles["cur"] = &domain.Profile{ID: "cur", Name: "cur", Kind: domain.ProfileCurrent}

	svc := newFakeGapService(store, NewSlogUseCaseObserver(cfg.Logger(&buf)))
	_, err = svc.Analyze(context.Background(), contract.NewGapAnalysisRequest("cur"))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestGapAnalysis_PanicIsRecovered(t *testing.T) {
	store := newFakeStore()
	store.panicMsg = "corrupt snapshot"
	obs := &recordingObserver{}

	var (
		resp *contract.GapAnalysisResponse
		err  error
	)
	require.NotPanics(t, func() {
		resp, err = newFakeGapService(store, obs).Analyze(context.Background(), contract.NewGapAnalysisRequest("cur"))
	})
	assert.EqualError(t, err, "INTERNAL_ERROR: gap_analysis failed unexpectedly")
	require.NotNil(t, resp)
	assert.NotNil(t, resp.Gaps)
	require.Len(t, obs.events, 1)
	assert.ErrorContains(t, obs.events[0].Err, "corrupt snapshot")
}

func TestGapAnalysis_ObserverSeesSuccess(t *testing.T) {
	store := newFakeStore()
	store.addSubcategories("GV.OC-01", "ID.AM-01")
	store.addProfile("cur", domain.ProfileCurrent)
	obs := &recordingObserver{}

	_, err := newFakeGapService(store, obs).Analyze(context.Background(), contract.NewGapAnalysisRequest("cur"))
	require.NoError(t, err)
	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, "cur", obs.events[0].Fields["profile_id"])
	assert.Equal(t, 2, obs.events[0].Fields["items"])
}
