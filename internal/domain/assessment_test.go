package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImplementationLevel_Order(t *testing.T) {
	assert.Less(t, LevelNotImplemented.Rank(), LevelPartiallyImplemented.Rank())
	assert.Less(t, LevelPartiallyImplemented.Rank(), LevelLargelyImplemented.Rank())
	assert.Less(t, LevelLargelyImplemented.Rank(), LevelFullyImplemented.Rank())
	assert.Equal(t, -1, ImplementationLevel("mostly").Rank())
}

func TestImplementationLevel_HasProgress(t *testing.T) {
	assert.False(t, LevelNotImplemented.HasProgress())
	assert.True(t, LevelPartiallyImplemented.HasProgress())
	assert.False(t, ImplementationLevel("bogus").HasProgress())
}

func TestParseImplementationLevel_Spellings(t *testing.T) {
	cases := map[string]ImplementationLevel{
		"not_implemented":       LevelNotImplemented,
		"Partially Implemented": LevelPartiallyImplemented,
		"largely-implemented":   LevelLargelyImplemented,
		" FULLY_IMPLEMENTED ":   LevelFullyImplemented,
	}
	for in, want := range cases {
		got, err := ParseImplementationLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseImplementationLevel("done")
	require.Error(t, err)
}

func TestAssessmentValidate(t *testing.T) {
	a := &Assessment{ProfileID: "p1", SubcategoryID: "GV.OC-01", Level: LevelLargelyImplemented, MaturityScore: 3}
	require.NoError(t, a.Validate())

	bad := *a
	bad.MaturityScore = 6
	assert.Error(t, bad.Validate())

	bad = *a
	bad.SubcategoryID = "GV.OC-1"
	assert.Error(t, bad.Validate())

	bad = *a
	bad.Level = "done"
	assert.Error(t, bad.Validate())

	bad = *a
	bad.ConfidenceLevel = "certain"
	assert.Error(t, bad.Validate())
}

func TestUnassessedAndFullyImplemented(t *testing.T) {
	u := UnassessedAssessment("p1", "ID.AM-01")
	assert.Equal(t, LevelNotImplemented, u.Level)
	assert.Equal(t, 0, u.MaturityScore)

	f := FullyImplementedAssessment("ID.AM-01")
	assert.Equal(t, LevelFullyImplemented, f.Level)
	assert.Equal(t, MaxMaturity, f.MaturityScore)
}

func TestDependencyEdgeValidate(t *testing.T) {
	e := &DependencyEdge{SubcategoryID: "PR.AA-01", DependsOnID: "GV.RR-02", Strength: 9, Type: DependencyPrerequisite}
	require.NoError(t, e.Validate())
	assert.True(t, e.IsHard())

	soft := *e
	soft.Strength = 7
	assert.False(t, soft.IsHard())

	self := *e
	self.DependsOnID = self.SubcategoryID
	assert.Error(t, self.Validate())

	weak := *e
	weak.Strength = 0
	assert.Error(t, weak.Validate())
}

func TestProfileValidate(t *testing.T) {
	p := &Profile{Name: "Baseline", Kind: ProfileCurrent}
	require.NoError(t, p.Validate())

	p.Kind = "future"
	assert.Error(t, p.Validate())

	p = &Profile{Name: "  ", Kind: ProfileTarget}
	assert.Error(t, p.Validate())
}
