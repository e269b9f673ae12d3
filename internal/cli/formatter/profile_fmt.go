package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/csfplan/internal/domain"
)

// FormatProfileList renders profiles as a table.
func FormatProfileList(profiles []*domain.Profile) string {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		org := p.OrgName
		if org == "" {
			org = Dim("--")
		}
		rows = append(rows, []string{TruncID(p.ID), Bold(p.Name), KindBadge(p.Kind), org, Dim(p.CreatedAt.Format("2006-01-02"))})
	}
	return RenderTable([]string{"ID", "NAME", "KIND", "ORG", "CREATED"}, rows)
}

// FormatAssessments renders the assessments of one profile.
func FormatAssessments(p *domain.Profile, assessments []domain.Assessment) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s\n\n", Bold(p.Name), KindBadge(p.Kind), TruncID(p.ID)))
	if len(assessments) == 0 {
		b.WriteString(Dim("No assessments recorded."))
		return b.String()
	}
	rows := make([][]string, 0, len(assessments))
	for _, a := range assessments {
		conf := string(a.ConfidenceLevel)
		if conf == "" {
			conf = Dim("--")
		}
		rows = append(rows, []string{
			FunctionBadge(domain.FunctionOf(a.SubcategoryID)),
			a.SubcategoryID,
			LevelLabel(a.Level),
			fmt.Sprintf("%d/%d", a.MaturityScore, domain.MaxMaturity),
			conf,
		})
	}
	b.WriteString(RenderTable([]string{"FN", "OUTCOME", "LEVEL", "MATURITY", "CONFIDENCE"}, rows))
	return b.String()
}

// FormatDependencies renders dependency edges, hard ones in red.
func FormatDependencies(edges []domain.DependencyEdge) string {
	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		strength := fmt.Sprintf("%d", e.Strength)
		if e.IsHard() {
			strength = StyleRed.Render(strength + " hard")
		}
		rows = append(rows, []string{e.SubcategoryID, Dim("needs"), e.DependsOnID, string(e.Type), strength})
	}
	return RenderTable([]string{"OUTCOME", "", "PREREQUISITE", "TYPE", "STRENGTH"}, rows)
}

// FormatCatalog lists subcategories grouped under their function.
func FormatCatalog(nodes []domain.TaxonomyNode) string {
	var b strings.Builder
	var current domain.Function
	for _, n := range nodes {
		if fn := n.Function(); fn != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = fn
			b.WriteString(FunctionBadge(fn) + " " + Bold(fn.FullName()) + "\n")
		}
		desc := n.Description
		if desc == "" {
			desc = n.Title
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", n.ID, Dim(desc)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatProblems renders integrity problems as a numbered list.
func FormatProblems(problems []error) string {
	if len(problems) == 0 {
		return StyleGreen.Render("✔ catalog is consistent")
	}
	var b strings.Builder
	b.WriteString(StyleRed.Render(fmt.Sprintf("✖ %d problems", len(problems))) + "\n")
	for i, p := range problems {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, p.Error()))
	}
	return strings.TrimRight(b.String(), "\n")
}
