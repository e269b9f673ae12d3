package cli

import (
	"github.com/alexanderramin/csfplan/internal/cli/formatter"
	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/spf13/cobra"
)

func newGapsCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var noRecs bool
	format := outputFlag()

	cmd := &cobra.Command{
		Use:   "gaps PROFILE",
		Short: "Analyze gaps between a profile and its target",
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

			req := contract.NewGapAnalysisRequest(current)
			req.TargetProfileID = target
			req.FunctionScope = scope.functions.functions
			req.MinimumGapScore = scope.minGap
			req.IncludeRecommendations = !noRecs

			resp, err := app.Gaps.Analyze(ctx, req)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format.value, resp, func() string {
				return formatter.FormatGapAnalysis(resp)
			})
		},
	}

	scope.register(cmd.Flags())
	cmd.Flags().BoolVar(&noRecs, "no-recommendations", false, "Skip recommendations")
	cmd.Flags().VarP(format, "output", "o", format.usage("Output format"))

	return cmd
}
