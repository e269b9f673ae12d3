package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/csfplan/internal/cli/formatter"
	"github.com/alexanderramin/csfplan/internal/domain"
	"github.com/spf13/cobra"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage dependencies between subcategories",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepListCmd(app),
		newDepRemoveCmd(app),
	)

	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	var strength int
	typ := newEnumFlag(string(domain.DependencyPrerequisite), "type",
		string(domain.DependencyPrerequisite), string(domain.DependencyEnabler), string(domain.DependencyRelated))

	cmd := &cobra.Command{
		Use:   "add SUBCATEGORY DEPENDS_ON",
		Short: "Declare that SUBCATEGORY should follow DEPENDS_ON",
		Long: `Declare that SUBCATEGORY should follow DEPENDS_ON.

Edges with strength 8 or more block SUBCATEGORY from next-action plans
until DEPENDS_ON shows any implementation; weaker edges only warn.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.DependencyEdge{
				SubcategoryID: strings.ToUpper(args[0]),
				DependsOnID:   strings.ToUpper(args[1]),
				Strength:      strength,
				Type:          domain.DependencyType(typ.value),
			}
			if err := app.Dependencies.Add(cmd.Context(), e); err != nil {
				return err
			}
			kind := "soft"
			if e.IsHard() {
				kind = "hard"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now depends on %s (%s %s, strength %d)\n",
				e.SubcategoryID, e.DependsOnID, kind, e.Type, e.Strength)
			return nil
		},
	}

	cmd.Flags().IntVar(&strength, "strength", 5, "Dependency strength 1-10")
	cmd.Flags().Var(typ, "type", typ.usage("Dependency type"))

	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			edges, err := app.Dependencies.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(edges) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No dependencies declared.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDependencies(edges))
			return nil
		},
	}
}

func newDepRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SUBCATEGORY DEPENDS_ON",
		Short: "Remove a dependency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, on := strings.ToUpper(args[0]), strings.ToUpper(args[1])
			if err := app.Dependencies.Remove(cmd.Context(), sub, on); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s -> %s\n", sub, on)
			return nil
		},
	}
}
