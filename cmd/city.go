package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"participantes/internal/bootstrap"
	"participantes/internal/bootstrap/logging"
	"participantes/internal/errs"
	"participantes/internal/usecase/registry"
)

var cityCmd = &cobra.Command{
	Use:   "city",
	Short: "Department and municipality reference data",
}

var cityImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load departments and municipalities from the DANE CSV",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *registry.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		csvPath, _ := cmd.Flags().GetString("csv")
		truncate, _ := cmd.Flags().GetBool("truncate")
		if csvPath == "" {
			csvPath = app.Config.Cities.CSVPath
		}

		result, err := svc.ImportCities(ctx, registry.ImportCitiesInput{
			CSVPath:  csvPath,
			Truncate: truncate,
		})
		if err != nil {
			logging.Error(ctx, "cities import failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "import cities")
		}

		_, err = fmt.Fprintf(
			cmd.OutOrStdout(),
			"cities import finished: submitted=%d inserted=%d duplicates=%d bad_rows=%d\n",
			result.Submitted,
			result.Inserted,
			result.SkippedDuplicates,
			result.SkippedBadRows,
		)
		if err != nil {
			return errs.Wrap(err, "write import output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(cityCmd)
	cityCmd.AddCommand(cityImportCmd)
	cityImportCmd.Flags().String("csv", "", "CSV file path (defaults to cities.csv_path from config)")
	cityImportCmd.Flags().Bool("truncate", false, "Empty the cities table before loading")
}
