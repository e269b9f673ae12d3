package cli

import (
	"github.com/alexanderramin/csfplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Catalog      service.CatalogService
	Profiles     service.ProfileService
	Assessments  service.AssessmentService
	Dependencies service.DependencyService
	Import       service.ImportService
	Gaps         service.GapAnalysisService
	Matrix       service.PriorityMatrixService
	NextActions  service.NextActionsService

	// Defaults applied when the matching flag is not given.
	DefaultCapacity int
	DefaultHorizon  int

	// IsInteractive reports whether stdin is a terminal; nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "csfplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "csfplan",
		Short:         "Cybersecurity framework gap analysis and action planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCatalogCmd(app),
		newProfileCmd(app),
		newAssessCmd(app),
		newDepCmd(app),
		newGapsCmd(app),
		newMatrixCmd(app),
		newNextCmd(app),
		newExportCmd(app),
	)

	return root
}
