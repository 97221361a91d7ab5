package cli

import (
	"fmt"

	"github.com/alexanderramin/fleksjobb/internal/cli/formatter"
	"github.com/alexanderramin/fleksjobb/internal/importer"
	"github.com/alexanderramin/fleksjobb/internal/service"
	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [FILE]",
		Short: "Load demo data, or a marketplace from a YAML file",
		Long: `Load companies, users, jobs and applications into the database.

Without FILE the built-in demo marketplace is loaded. Every demo account
uses the password "fleksjobb123".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Seeding...")
			}
			var (
				result *service.ImportResult
				err    error
			)
			if len(args) == 1 {
				result, err = app.Import.Import(ctx, args[0])
			} else {
				var schema *importer.ImportSchema
				schema, err = importer.DemoSchema()
				if err == nil {
					result, err = app.Import.ImportSchema(ctx, schema)
				}
			}
			stop()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Seeded %d companies, %d users, %d jobs, %d applications, %d payments\n",
				formatter.StyleGreen.Render("✔"),
				result.Companies, result.Users, result.Jobs, result.Applications, result.Payments)
			return nil
		},
	}
}
