package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/csfplan/internal/cli/formatter"
	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// csfplanHuhTheme returns a huh theme matching the formatter palette.
func csfplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred = t.Focused
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

var goalDescriptions = map[domain.OptimizationGoal]string{
	domain.GoalBalanced:      "Balanced: governance and identify first, then value per hour",
	domain.GoalQuickWins:     "Quick wins: cheapest meaningful improvements",
	domain.GoalRiskReduction: "Risk reduction: protect and detect weighted up",
	domain.GoalCompliance:    "Compliance: governance weighted up",
}

// planWizard collects the goal, capacity and horizon for a next-actions
// request. apply copies the answers back once the form completes.
type planWizard struct {
	goal     domain.OptimizationGoal
	capacity string
	horizon  string
}

func newPlanWizard(req contract.NextActionsRequest) *planWizard {
	return &planWizard{
		goal:     req.OptimizationGoal,
		capacity: strconv.Itoa(req.CapacityHoursPerWeek),
		horizon:  strconv.Itoa(req.HorizonWeeks),
	}
}

// wizardKeyMap lets esc abort the form as well as ctrl+c.
func wizardKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "cancel"),
	)
	return km
}

// form renders to out so stdout stays clean for the plan itself.
func (w *planWizard) form(out io.Writer) *huh.Form {
	options := make([]huh.Option[domain.OptimizationGoal], 0, len(domain.OptimizationGoals))
	for _, g := range domain.OptimizationGoals {
		options = append(options, huh.NewOption(goalDescriptions[g], g))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.OptimizationGoal]().
				Title("Optimization goal").
				Options(options...).
				Value(&w.goal),
			intInput("Capacity (hours per week)", "40", &w.capacity, 1, 168),
			intInput("Horizon (weeks)", "4", &w.horizon, 1, 12),
		),
	).WithTheme(csfplanHuhTheme()).
		WithShowHelp(false).
		WithKeyMap(wizardKeyMap()).
		WithProgramOptions(tea.WithOutput(out))
}

func (w *planWizard) apply(req *contract.NextActionsRequest) error {
	capacity, err := strconv.Atoi(w.capacity)
	if err != nil {
		return fmt.Errorf("capacity: %w", err)
	}
	horizon, err := strconv.Atoi(w.horizon)
	if err != nil {
		return fmt.Errorf("horizon: %w", err)
	}
	req.OptimizationGoal = w.goal
	req.CapacityHoursPerWeek = capacity
	req.HorizonWeeks = horizon
	return nil
}

// intInput returns a huh.Input for a required integer within [lo, hi].
func intInput(title, placeholder string, value *string, lo, hi int) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(intInRange(lo, hi))
}

func intInRange(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil || v < lo || v > hi {
			return fmt.Errorf("enter a whole number from %d to %d", lo, hi)
		}
		return nil
	}
}
