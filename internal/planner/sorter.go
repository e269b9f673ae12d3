package planner

import "sort"

// CanonicalGapSort orders gap records deterministically:
// 1. Gap score: higher first
// 2. Risk score: higher first
// 3. Effort hours: fewer first
// 4. Subcategory ID: lexical ascending
func CanonicalGapSort(records []GapRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]

		if a.GapScore != b.GapScore {
			return a.GapScore > b.GapScore
		}
		if a.RiskScore != b.RiskScore {
			return a.RiskScore > b.RiskScore
		}
		if a.EffortHours != b.EffortHours {
			return a.EffortHours < b.EffortHours
		}
		return a.SubcategoryID < b.SubcategoryID
	})
}

// roiSort orders scheduling candidates by ROI, then gap, then identifier.
func roiSort(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]

		if a.roi != b.roi {
			return a.roi > b.roi
		}
		if a.gap.GapScore != b.gap.GapScore {
			return a.gap.GapScore > b.gap.GapScore
		}
		return a.gap.SubcategoryID < b.gap.SubcategoryID
	})
}

// prioritySort orders quadrant members by priority score, keeping input order
// for ties.
func prioritySort(items []ClassifiedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PriorityScore > items[j].PriorityScore
	})
}
