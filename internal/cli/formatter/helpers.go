package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// KindBadge labels a profile as current or target.
func KindBadge(kind domain.ProfileKind) string {
	if kind == domain.ProfileTarget {
		return StyleBlue.Render("◎ target")
	}
	return StyleGreen.Render("● current")
}

// LevelLabel renders an implementation level, dimming not_implemented.
func LevelLabel(l domain.ImplementationLevel) string {
	switch l {
	case domain.LevelFullyImplemented:
		return StyleGreen.Render(l.Label())
	case domain.LevelLargelyImplemented:
		return StyleBlue.Render(l.Label())
	case domain.LevelPartiallyImplemented:
		return StyleYellow.Render(l.Label())
	default:
		return StyleDim.Render(l.Label())
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatHours renders effort hours, switching to FTE-months past a quarter.
func FormatHours(h int) string {
	if h <= 0 {
		return "0h"
	}
	if h >= 480 {
		return fmt.Sprintf("%dh (%.1f FTE-mo)", h, float64(h)/160)
	}
	return fmt.Sprintf("%dh", h)
}

// FormatGap renders a 0-100 gap score.
func FormatGap(gap float64) string {
	return fmt.Sprintf("%.0f%%", gap)
}

// FormatCost renders an amount with thousands separators and no cents.
func FormatCost(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// bulletList renders each message on its own indented line.
func bulletList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(Bold(title) + "\n")
	for _, it := range items {
		b.WriteString("  " + StyleYellow.Render("›") + " " + it + "\n")
	}
}
