package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskColor picks a style for a 0-10 risk score.
func RiskColor(risk float64) lipgloss.Style {
	switch {
	case risk >= 7:
		return StyleRed
	case risk >= 4:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// RiskIndicator returns a colored label such as "● HIGH 8.0".
func RiskIndicator(risk float64) string {
	label := "LOW"
	switch {
	case risk >= 7:
		label = "HIGH"
	case risk >= 4:
		label = "MEDIUM"
	}
	return RiskColor(risk).Render(fmt.Sprintf("● %s %.1f", label, risk))
}

// ReadinessPill renders the dependency status of an action.
func ReadinessPill(status domain.ReadinessStatus) string {
	switch status {
	case domain.StatusReady:
		return StyleGreen.Render("● ready")
	case domain.StatusPartial:
		return StyleYellow.Render("◐ partial")
	case domain.StatusBlocked:
		return StyleRed.Render("✖ blocked")
	default:
		return StyleDim.Render(string(status))
	}
}

// FunctionBadge renders a function code in its own color.
func FunctionBadge(fn domain.Function) string {
	style := StyleFg
	switch fn {
	case domain.FunctionGovern:
		style = StylePurple
	case domain.FunctionIdentify:
		style = StyleBlue
	case domain.FunctionProtect:
		style = StyleGreen
	case domain.FunctionDetect:
		style = StyleYellow
	case domain.FunctionRespond, domain.FunctionRecover:
		style = StyleRed
	}
	return style.Bold(true).Render(string(fn))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
