package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"participantes/internal/bootstrap"
	"participantes/internal/bootstrap/logging"
	"participantes/internal/errs"
	"participantes/internal/usecase/registry"
)

var participantDeleteCmd = &cobra.Command{
	Use:   "delete <id> [id...]",
	Short: "Delete participants by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *registry.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		result, err := svc.DeleteParticipants(ctx, cmd.Flags().Args())
		if err != nil {
			logging.Error(ctx, "delete participants failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "delete participants")
		}

		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "deleted %d of %d\n", result.Deleted, result.Requested); err != nil {
			return errs.Wrap(err, "write delete output")
		}
		if len(result.NotFound) > 0 {
			if _, err := fmt.Fprintf(out, "not found: %s\n", strings.Join(result.NotFound, ", ")); err != nil {
				return errs.Wrap(err, "write delete output")
			}
		}
		if len(result.Failed) > 0 {
			if _, err := fmt.Fprintf(out, "failed: %s\n", strings.Join(result.Failed, ", ")); err != nil {
				return errs.Wrap(err, "write delete output")
			}
		}
		return nil
	}),
}

func init() {
	participantCmd.AddCommand(participantDeleteCmd)
}
