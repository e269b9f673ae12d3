package cli

import (
	"github.com/alexanderramin/csfplan/internal/cli/formatter"
	"github.com/alexanderramin/csfplan/internal/contract"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/spf13/cobra"
)

type matrixOptions struct {
	kind       *enumFlag
	xThreshold float64
	yThreshold float64
	maxItems   int
}

func (o *matrixOptions) register(cmd *cobra.Command) {
	o.kind = matrixTypeFlag()
	cmd.Flags().Var(o.kind, "type", o.kind.usage("Matrix type"))
	cmd.Flags().Float64Var(&o.xThreshold, "x-threshold", 5, "X axis threshold (0-10)")
	cmd.Flags().Float64Var(&o.yThreshold, "y-threshold", 5, "Y axis threshold (0-10)")
	cmd.Flags().IntVar(&o.maxItems, "max-items", 10, "Maximum items per quadrant (1-20)")
}

func (o *matrixOptions) request(profileID string, scope scopeFlags) contract.PriorityMatrixRequest {
	req := contract.NewPriorityMatrixRequest(profileID)
	req.MatrixType = domain.MatrixType(o.kind.value)
	req.XThreshold = o.xThreshold
	req.YThreshold = o.yThreshold
	req.MaxItemsPerQuadrant = o.maxItems
	req.FunctionScope = scope.functions.functions
	req.MinimumGapScore = scope.minGap
	return req
}

func newMatrixCmd(app *App) *cobra.Command {
	var scope scopeFlags
	var opts matrixOptions
	var estimate, noRecs bool
	format := outputFlag()

	cmd := &cobra.Command{
		Use:   "matrix PROFILE",
		Short: "Classify gaps into a 2x2 priority matrix",
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

			req := opts.request(current, scope)
			req.TargetProfileID = target
			req.IncludeResourceEstimate = estimate
			req.IncludeRecommendations = !noRecs

			resp, err := app.Matrix.Build(ctx, req)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format.value, resp, func() string {
				return formatter.FormatPriorityMatrix(resp)
			})
		},
	}

	scope.register(cmd.Flags())
	opts.register(cmd)
	cmd.Flags().BoolVar(&estimate, "estimate", false, "Include a resource estimate")
	cmd.Flags().BoolVar(&noRecs, "no-recommendations", false, "Skip recommendations")
	cmd.Flags().VarP(format, "output", "o", format.usage("Output format"))

	return cmd
}
