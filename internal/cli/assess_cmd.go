package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/csfplan/internal/cli/formatter"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/spf13/cobra"
)

func newAssessCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Record implementation levels for a profile",
	}

	cmd.AddCommand(
		newAssessSetCmd(app),
		newAssessListCmd(app),
		newAssessRemoveCmd(app),
	)

	return cmd
}

func newAssessSetCmd(app *App) *cobra.Command {
	var levelText, notes string
	var maturity int
	confidence := newEnumFlag("", "confidence", "low", "medium", "high")

	cmd := &cobra.Command{
		Use:   "set PROFILE SUBCATEGORY",
		Short: "Set the assessment of one subcategory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			profileID, err := resolveProfileID(ctx, app, args[0])
			if err != nil {
				return err
			}
			level, err := domain.ParseImplementationLevel(levelText)
			if err != nil {
				return err
			}
			a := &domain.Assessment{
				ProfileID:       profileID,
				SubcategoryID:   strings.ToUpper(args[1]),
				Level:           level,
				MaturityScore:   level.DefaultMaturity(),
				ConfidenceLevel: domain.ConfidenceLevel(confidence.value),
				Notes:           notes,
			}
			if cmd.Flags().Changed("maturity") {
				a.MaturityScore = maturity
			}
			if err := app.Assessments.Set(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (maturity %d/%d)\n",
				a.SubcategoryID, a.Level.Label(), a.MaturityScore, domain.MaxMaturity)
			return nil
		},
	}

	cmd.Flags().StringVar(&levelText, "level", "", "Implementation level, e.g. partially_implemented")
	cmd.Flags().IntVar(&maturity, "maturity", 0, "Maturity score 0-5 (default: derived from level)")
	cmd.Flags().Var(confidence, "confidence", confidence.usage("Confidence in the assessment"))
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("level")

	return cmd
}

func newAssessListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROFILE",
		Short: "List the assessments of a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProfileID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Profiles.GetByID(ctx, id)
			if err != nil {
				return err
			}
			assessments, err := app.Assessments.ListByProfile(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAssessments(p, assessments))
			return nil
		},
	}
}

func newAssessRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROFILE SUBCATEGORY",
		Short: "Remove an assessment; the subcategory counts as not implemented again",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProfileID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sub := strings.ToUpper(args[1])
			if err := app.Assessments.Delete(ctx, id, sub); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed assessment of %s\n", sub)
			return nil
		},
	}
}
