package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/csfplan/internal/contract"
)

// FormatPriorityMatrix renders each quadrant with its members and totals.
func FormatPriorityMatrix(resp *contract.PriorityMatrixResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s  %s\n\n",
		Bold(resp.Profile.Name),
		StylePurple.Render(string(resp.MatrixType)),
		Dim(fmt.Sprintf("x=%s (%.1f)  y=%s (%.1f)", resp.XAxis, resp.XThreshold, resp.YAxis, resp.YThreshold)),
	))

	for _, q := range resp.Quadrants {
		title := fmt.Sprintf("%s  %s", q.Label, Dim(fmt.Sprintf("%d items, %s, %s", q.Count(), FormatHours(q.TotalHours), FormatCost(q.TotalCost))))
		b.WriteString(StyleHeader.Render("▌") + " " + Bold(title) + "\n")
		if q.Count() == 0 {
			b.WriteString("  " + Dim("none") + "\n\n")
			continue
		}
		b.WriteString("  " + Dim(q.Description+"; "+q.RecommendedTimeline) + "\n")
		for _, it := range q.Items {
			b.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
				FunctionBadge(it.Gap.Function),
				it.Gap.SubcategoryID,
				Dim(fmt.Sprintf("x %.1f y %.1f score %.1f", it.X, it.Y, it.PriorityScore)),
				FormatHours(it.Gap.EffortHours),
			))
		}
		if q.Overflow > 0 {
			b.WriteString("  " + StyleYellow.Render(fmt.Sprintf("+%d more over the limit", q.Overflow)) + "\n")
		}
		b.WriteString("\n")
	}

	if est := resp.ResourceEstimate; est != nil {
		b.WriteString(fmt.Sprintf("%s %s  %s  %.1f FTE-months\n",
			Dim("Estimate:"), FormatHours(est.TotalHours), FormatCost(est.TotalCost), est.FTEMonths))
	}
	if recs := resp.Recommendations; recs != nil && recs.Count() > 0 {
		b.WriteString("\n")
		bulletList(&b, "Immediate", recs.Immediate)
		bulletList(&b, "Short term", recs.ShortTerm)
		bulletList(&b, "Long term", recs.LongTerm)
	}

	return RenderBox("Priority Matrix", strings.TrimRight(b.String(), "\n"))
}
