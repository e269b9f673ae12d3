package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestTaxonomyNodeValidate_Valid(t *testing.T) {
	cases := []TaxonomyNode{
		{ID: "GV", Type: NodeFunction},
		{ID: "GV.OC", Type: NodeCategory, ParentID: "GV"},
		{ID: "GV.OC-01", Type: NodeSubcategory, ParentID: "GV.OC"},
		{ID: "PR.AA-05", Type: NodeSubcategory, ParentID: "PR.AA", Criticality: intPtr(9)},
	}
	for _, n := range cases {
		assert.NoError(t, n.Validate(), "should accept %s", n.ID)
	}
}

func TestTaxonomyNodeValidate_BadFunction(t *testing.T) {
	n := &TaxonomyNode{ID: "XX", Type: NodeFunction}
	err := n.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GV, ID, PR")
}

func TestTaxonomyNodeValidate_BadCategoryFormat(t *testing.T) {
	n := &TaxonomyNode{ID: "GV-OC", Type: NodeCategory, ParentID: "GV"}
	err := n.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XX.YY")
}

func TestTaxonomyNodeValidate_WrongParent(t *testing.T) {
	n := &TaxonomyNode{ID: "GV.OC-01", Type: NodeSubcategory, ParentID: "GV.RM"}
	err := n.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must have parent GV.OC")
}

func TestTaxonomyNodeValidate_CriticalityOutOfRange(t *testing.T) {
	n := &TaxonomyNode{ID: "GV.OC-01", Type: NodeSubcategory, ParentID: "GV.OC", Criticality: intPtr(11)}
	require.Error(t, n.Validate())
}

func TestParentOf(t *testing.T) {
	assert.Equal(t, "GV.OC", ParentOf("GV.OC-01"))
	assert.Equal(t, "GV", ParentOf("GV.OC"))
	assert.Equal(t, "", ParentOf("GV"))
}

func TestNodeTypeOf(t *testing.T) {
	typ, ok := NodeTypeOf("DE.CM-09")
	require.True(t, ok)
	assert.Equal(t, NodeSubcategory, typ)

	typ, ok = NodeTypeOf("DE.CM")
	require.True(t, ok)
	assert.Equal(t, NodeCategory, typ)

	_, ok = NodeTypeOf("de.cm-09")
	assert.False(t, ok)
}

func TestFunctionOf(t *testing.T) {
	assert.Equal(t, FunctionRespond, FunctionOf("RS.MA-01"))
	assert.Equal(t, FunctionGovern, FunctionOf("GV"))
	assert.Equal(t, Function(""), FunctionOf("ZZ.AA-01"))
	assert.Equal(t, Function(""), FunctionOf("G"))
}

func TestParseFunction_CodeAndName(t *testing.T) {
	f, err := ParseFunction("protect")
	require.NoError(t, err)
	assert.Equal(t, FunctionProtect, f)

	f, err = ParseFunction("rc")
	require.NoError(t, err)
	assert.Equal(t, FunctionRecover, f)

	_, err = ParseFunction("MONITOR")
	require.Error(t, err)
}
