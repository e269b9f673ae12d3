package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/csfplan/internal/contract"
)

// FormatGapAnalysis renders the gap list, per-function summary and guidance.
func FormatGapAnalysis(resp *contract.GapAnalysisResponse) string {
	var b strings.Builder

	target := "fully implemented"
	if resp.TargetProfile != nil {
		target = resp.TargetProfile.Name
	}
	b.WriteString(fmt.Sprintf("%s %s %s %s\n\n",
		Bold(resp.CurrentProfile.Name), Dim("→"), StyleBlue.Render(target),
		Dim(fmt.Sprintf("(%d assessed)", resp.CurrentProfile.AssessmentCount))))

	s := resp.Summary
	b.WriteString(fmt.Sprintf("%s %d of %d outcomes  %s %s  %s %.1f  %s %s  %s %d\n\n",
		Dim("Gaps:"), s.ItemsWithGap, s.TotalItems,
		Dim("Avg gap:"), FormatGap(s.AverageGap),
		Dim("Avg risk:"), s.AverageRisk,
		Dim("Effort:"), FormatHours(s.TotalEffortHours),
		Dim("High risk:"), s.HighRiskCount,
	))

	if len(s.ByFunction) > 0 {
		rows := make([][]string, 0, len(s.ByFunction))
		for _, fs := range s.ByFunction {
			rows = append(rows, []string{
				FunctionBadge(fs.Function),
				fmt.Sprintf("%d/%d", fs.ItemsWithGap, fs.Items),
				FormatGap(fs.AverageGap),
				fmt.Sprintf("%.1f", fs.AverageCurrentMaturity),
				FormatHours(fs.TotalEffortHours),
			})
		}
		b.WriteString(RenderTable([]string{"FN", "GAPS", "AVG GAP", "MATURITY", "EFFORT"}, rows))
		b.WriteString("\n")
	}

	if len(resp.Gaps) == 0 {
		b.WriteString(Dim("No gaps at or above the threshold.") + "\n")
	} else {
		rows := make([][]string, 0, len(resp.Gaps))
		for _, g := range resp.Gaps {
			rows = append(rows, []string{
				fmt.Sprintf("%d", g.PriorityRank),
				g.SubcategoryID,
				LevelLabel(g.CurrentLevel) + Dim(" → ") + LevelLabel(g.TargetLevel),
				FormatGap(g.GapScore),
				RiskColor(g.RiskScore).Render(fmt.Sprintf("%.1f", g.RiskScore)),
				FormatHours(g.EffortHours),
			})
		}
		b.WriteString(RenderTable([]string{"#", "OUTCOME", "LEVEL", "GAP", "RISK", "EFFORT"}, rows))
	}

	recs := resp.Recommendations
	if recs.Count() > 0 {
		b.WriteString("\n")
		bulletList(&b, "Immediate", recs.Immediate)
		bulletList(&b, "Short term", recs.ShortTerm)
		bulletList(&b, "Long term", recs.LongTerm)
	}

	return RenderBox("Gap Analysis", strings.TrimRight(b.String(), "\n"))
}
