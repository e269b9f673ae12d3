package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/csfplan/internal/contract"
)

// FormatNextActions renders ranked actions, the weekly timeline, blocked
// items and guidance.
func FormatNextActions(resp *contract.NextActionsResponse) string {
	var b strings.Builder
	c := resp.Capacity

	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		Bold(resp.Profile.Name),
		StylePurple.Render(strings.ToUpper(string(resp.OptimizationGoal))),
		Dim(fmt.Sprintf("%dh/week × %d weeks", c.CapacityHoursPerWeek, c.HorizonWeeks)),
	))
	b.WriteString(fmt.Sprintf("%s %s  %s\n\n",
		Dim("Capacity:"), RenderUtilization(c.UtilizationPercentage, 20),
		Dim(fmt.Sprintf("%d of %dh allocated", c.AllocatedHours, c.TotalCapacityHours))))

	if len(resp.SuggestedActions) == 0 {
		b.WriteString(Dim("No actions fit the current thresholds.") + "\n")
	}
	for i, a := range resp.SuggestedActions {
		week := Dim("unscheduled")
		if a.Week > 0 {
			week = StyleBlue.Render(fmt.Sprintf("week %d", a.Week))
		}
		b.WriteString(fmt.Sprintf("%s %s %s  %s  %s  %s\n",
			Bold(fmt.Sprintf("%d.", a.Rank)),
			FunctionBadge(a.Function),
			StyleFg.Render(a.SubcategoryID),
			StyleBlue.Render(fmt.Sprintf("(%s)", FormatHours(a.EffortHours))),
			week,
			ReadinessPill(a.DependencyStatus),
		))
		b.WriteString(fmt.Sprintf("   %s %s\n", StyleYellow.Render("WHY:"), Dim(a.Justification)))
		b.WriteString(fmt.Sprintf("   %s\n", Dim(a.Impact)))
		if i < len(resp.SuggestedActions)-1 {
			b.WriteString("\n")
		}
	}

	if len(resp.Timeline) > 0 {
		b.WriteString("\n" + Header("Timeline") + "\n")
		for _, w := range resp.Timeline {
			b.WriteString(fmt.Sprintf("%s %s  %s\n",
				Bold(fmt.Sprintf("W%d", w.WeekIndex)),
				strings.Join(w.SubcategoryIDs, ", "),
				Dim(FormatHours(w.HoursAllocated))))
			for _, m := range w.Milestones {
				b.WriteString("   " + StyleGreen.Render("◆ "+m) + "\n")
			}
		}
	}

	if len(resp.BlockedActions) > 0 {
		b.WriteString("\n" + Header("Blocked") + "\n")
		for _, ba := range resp.BlockedActions {
			b.WriteString(fmt.Sprintf("%s %s  %s\n",
				StyleRed.Render("✖"), ba.SubcategoryID, Dim("waiting on "+strings.Join(ba.Blockers, "; "))))
		}
	}

	recs := resp.Recommendations
	b.WriteString("\n")
	bulletList(&b, "Priorities", recs.ImmediatePriorities)
	bulletList(&b, "Resources", recs.Resource)
	bulletList(&b, "Dependencies", recs.Dependency)
	bulletList(&b, "Success factors", recs.SuccessFactors)

	return RenderBox("Next Actions", strings.TrimRight(b.String(), "\n"))
}
