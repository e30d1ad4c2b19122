package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"participantes/internal/bootstrap"
	"participantes/internal/bootstrap/logging"
	"participantes/internal/errs"
	"participantes/internal/usecase/registry"
)

var participantExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all participants as CSV",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *registry.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		rows, err := svc.ExportParticipants(ctx)
		if err != nil {
			logging.Error(ctx, "export participants failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "export participants")
		}

		outPath, _ := cmd.Flags().GetString("out")
		var target io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			file, err := os.Create(outPath)
			if err != nil {
				return errs.Wrapf(err, "create export file %q", outPath)
			}
			defer func() {
				_ = file.Close()
			}()
			target = file
		}

		writer := csv.NewWriter(target)
		if err := writer.Write(registry.ExportHeader); err != nil {
			return errs.Wrap(err, "write export header")
		}
		if err := writer.WriteAll(rows); err != nil {
			return errs.Wrap(err, "write export rows")
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return errs.Wrap(err, "flush export")
		}

		if outPath != "" {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "exported %d participants to %s\n", len(rows), outPath); err != nil {
				return errs.Wrap(err, "write export summary")
			}
		}
		return nil
	}),
}

func init() {
	participantCmd.AddCommand(participantExportCmd)
	participantExportCmd.Flags().String("out", "", "Destination file (defaults to stdout)")
}
