package cli

import (
	"fmt"

	"github.com/alexanderramin/csfplan/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var plan planOptions
	var matrix matrixOptions
	var out string
	var noMatrix bool

	cmd := &cobra.Command{
		Use:   "export PROFILE",
		Short: "Write the action plan and priority matrix to an .xlsx workbook",
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

			actionsReq := plan.request(cmd.Flags(), app, current, scope)
			actionsReq.TargetProfileID = target
			actions, err := app.NextActions.Plan(ctx, actionsReq)
			if err != nil {
				return err
			}

			book := export.PlanWorkbook{Actions: actions}
			if !noMatrix {
				matrixReq := matrix.request(current, scope)
				matrixReq.TargetProfileID = target
				matrixReq.IncludeResourceEstimate = true
				book.Matrix, err = app.Matrix.Build(ctx, matrixReq)
				if err != nil {
					return err
				}
			}

			if err := book.Save(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d actions)\n", out, len(actions.SuggestedActions))
			return nil
		},
	}

	scope.register(cmd.Flags())
	plan.register(cmd)
	matrix.register(cmd)
	cmd.Flags().StringVar(&out, "out", "csfplan.xlsx", "Output workbook path")
	cmd.Flags().BoolVar(&noMatrix, "no-matrix", false, "Omit the priority matrix sheet")

	return cmd
}
