package planner

import (
	"github.com/alexanderramin/csfplan/internal/domain"
)

func assess(id string, level domain.ImplementationLevel, maturity int) domain.Assessment {
	return domain.Assessment{ProfileID: "p", SubcategoryID: id, Level: level, MaturityScore: maturity}
}

func subcategory(id string) domain.TaxonomyNode {
	return domain.TaxonomyNode{ID: id, Type: domain.NodeSubcategory, ParentID: domain.ParentOf(id), Title: id}
}

// gapRecord builds a record directly from a gap score and current level.
func gapRecord(id string, gap float64, level domain.ImplementationLevel) GapRecord {
	effort := EffortScore(level)
	return GapRecord{
		SubcategoryID:  id,
		Function:       domain.FunctionOf(id),
		CurrentLevel:   level,
		TargetLevel:    domain.LevelFullyImplemented,
		TargetMaturity: domain.MaxMaturity,
		GapScore:       gap,
		RiskScore:      RiskScore(gap, DefaultCriticalityWeight),
		EffortScore:    effort,
		EffortHours:    EffortHours(effort),
	}
}

func ids(records []GapRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.SubcategoryID
	}
	return out
}
