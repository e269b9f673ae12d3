package cli

import (
	"fmt"

	"github.com/alexanderramin/csfplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the framework outcome catalog",
	}

	cmd.AddCommand(
		newCatalogImportCmd(app),
		newCatalogCheckCmd(app),
		newCatalogListCmd(app),
	)

	return cmd
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import the framework hierarchy from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Catalog.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d functions, %d categories, %d subcategories\n",
				res.Functions, res.Categories, res.Subcategories)
			return nil
		},
	}
}

func newCatalogCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the stored catalog for integrity problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			problems, err := app.Catalog.Check(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProblems(problems))
			if len(problems) > 0 {
				return fmt.Errorf("catalog has %d integrity problems", len(problems))
			}
			return nil
		},
	}
}

func newCatalogListCmd(app *App) *cobra.Command {
	var functions functionsFlag

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued subcategories",
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := app.Catalog.ListSubcategories(cmd.Context(), functions.functions)
			if err != nil {
				return err
			}
			if len(nodes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty. Run 'csfplan catalog import FILE' first.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCatalog(nodes))
			return nil
		},
	}

	cmd.Flags().Var(&functions, "function", "Limit to functions, e.g. GV,PR")

	return cmd
}
