package cli

import (
	"fmt"

	"github.com/alexanderramin/csfplan/internal/cli/formatter"
	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type planOptions struct {
	goal     *enumFlag
	capacity int
	horizon  int
}

func (o *planOptions) register(cmd *cobra.Command) {
	o.goal = goalFlag()
	cmd.Flags().Var(o.goal, "goal", o.goal.usage("Optimization goal"))
	cmd.Flags().IntVar(&o.capacity, "capacity", 0, "Capacity in hours per week (default from config, 40)")
	cmd.Flags().IntVar(&o.horizon, "horizon", 0, "Planning horizon in weeks (default from config, 4)")
}

// request builds the next-actions request. App defaults fill capacity and
// horizon only when the flag was not set.
func (o *planOptions) request(flags *pflag.FlagSet, app *App, profileID string, scope scopeFlags) contract.NextActionsRequest {
	req := contract.NewNextActionsRequest(profileID)
	req.OptimizationGoal = domain.OptimizationGoal(o.goal.value)
	req.FunctionScope = scope.functions.functions
	req.MinimumGapScore = scope.minGap
	switch {
	case flags.Changed("capacity"):
		req.CapacityHoursPerWeek = o.capacity
	case app.DefaultCapacity > 0:
		req.CapacityHoursPerWeek = app.DefaultCapacity
	}
	switch {
	case flags.Changed("horizon"):
		req.HorizonWeeks = o.horizon
	case app.DefaultHorizon > 0:
		req.HorizonWeeks = app.DefaultHorizon
	}
	return req
}

func newNextCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var opts planOptions
	var interactive bool
	format := outputFlag()

	cmd := &cobra.Command{
		Use:   "next PROFILE",
		Short: "Plan the next remediation actions within a capacity budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := resolveProfileID(ctx, app, args[0])
			if err != nil {
				return err
			}
			target, err := resolveOptionalProfileID(ctx, app, scope.target)
			if err != nil {
				return err
			}

			req := opts.request(cmd.Flags(), app, current, scope)
			req.TargetProfileID = target

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				wiz := newPlanWizard(req)
				if err := wiz.form(cmd.ErrOrStderr()).Run(); err != nil {
					return err
				}
				if err := wiz.apply(&req); err != nil {
					return err
				}
			}

			resp, err := app.NextActions.Plan(ctx, req)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format.value, resp, func() string {
				return formatter.FormatNextActions(resp)
			})
		},
	}

	scope.register(cmd.Flags())
	opts.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Choose goal, capacity and horizon in a form")
	cmd.Flags().VarP(format, "output", "o", format.usage("Output format"))

	return cmd
}
