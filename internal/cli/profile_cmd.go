package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/csfplan/internal/cli/formatter"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/alexanderramin/csfplan/internal/service"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage current and target profiles",
	}

	cmd.AddCommand(
		newProfileCreateCmd(app),
		newProfileListCmd(app),
		newProfileShowCmd(app),
		newProfileRemoveCmd(app),
		newProfileCloneCmd(app),
		newProfileImportCmd(app),
	)

	return cmd
}

func kindFlag() *enumFlag {
	return newEnumFlag(string(domain.ProfileCurrent), "kind", string(domain.ProfileCurrent), string(domain.ProfileTarget))
}

func newProfileCreateCmd(app *App) *cobra.Command {
	var name, org, industry, size string
	kind := kindFlag()

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Profile{
				Name:     name,
				Kind:     domain.ProfileKind(kind.value),
				OrgName:  org,
				Industry: industry,
				Size:     size,
			}
			if err := app.Profiles.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s profile %s [%s]\n", p.Kind, p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Profile name")
	cmd.Flags().Var(kind, "kind", kind.usage("Profile kind"))
	cmd.Flags().StringVar(&org, "org", "", "Organization name")
	cmd.Flags().StringVar(&industry, "industry", "", "Industry")
	cmd.Flags().StringVar(&size, "size", "", "Organization size")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProfileListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := app.Profiles.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfileList(profiles))
			return nil
		},
	}
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROFILE",
		Short: "Show a profile and its assessments",
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

func newProfileRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROFILE",
		Short: "Delete a profile and its assessments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProfileID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Profiles.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed profile %s\n", id[:min(8, len(id))])
			return nil
		},
	}
}

func newProfileCloneCmd(app *App) *cobra.Command {
	var name string
	var sets []string
	kind := newEnumFlag("", "kind", string(domain.ProfileCurrent), string(domain.ProfileTarget))

	cmd := &cobra.Command{
		Use:   "clone PROFILE",
		Short: "Copy a profile, optionally adjusting assessments",
		Long: `Copy a profile and all of its assessments under a new name.

Each --set SUBCATEGORY=LEVEL[:MATURITY] replaces the copied assessment,
e.g. --set PR.AA-01=largely_implemented:4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProfileID(ctx, app, args[0])
			if err != nil {
				return err
			}
			adjustments, err := parseAdjustments(sets)
			if err != nil {
				return err
			}
			clone, err := app.Profiles.Clone(ctx, service.CloneRequest{
				SourceID:    id,
				Name:        name,
				Kind:        domain.ProfileKind(kind.value),
				Adjustments: adjustments,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cloned into %s profile %s [%s] with %d adjustments\n",
				clone.Kind, clone.Name, clone.DisplayID(), len(adjustments))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the new profile")
	cmd.Flags().Var(kind, "kind", kind.usage("Kind of the new profile (default: same as source)"))
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override an assessment: SUBCATEGORY=LEVEL[:MATURITY]")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// parseAdjustments reads SUBCATEGORY=LEVEL[:MATURITY] entries. A missing
// maturity defaults from the level.
func parseAdjustments(sets []string) ([]domain.Assessment, error) {
	out := make([]domain.Assessment, 0, len(sets))
	for _, s := range sets {
		id, rest, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: expected SUBCATEGORY=LEVEL[:MATURITY]", s)
		}
		levelText, maturityText, hasMaturity := strings.Cut(rest, ":")
		level, err := domain.ParseImplementationLevel(levelText)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", s, err)
		}
		maturity := level.DefaultMaturity()
		if hasMaturity {
			if maturity, err = strconv.Atoi(maturityText); err != nil {
				return nil, fmt.Errorf("invalid --set %q: maturity must be a number", s)
			}
		}
		out = append(out, domain.Assessment{
			SubcategoryID: strings.ToUpper(strings.TrimSpace(id)),
			Level:         level,
			MaturityScore: maturity,
		})
	}
	return out, nil
}

func newProfileImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a profile with assessments and dependencies from JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s profile %s [%s]: %d assessments, %d dependencies\n",
				res.Profile.Kind, res.Profile.Name, res.Profile.DisplayID(), res.AssessmentCount, res.DependencyCount)
			return nil
		},
	}
}
