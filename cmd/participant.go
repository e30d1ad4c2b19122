package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"participantes/internal/bootstrap"
	"participantes/internal/bootstrap/logging"
	"participantes/internal/errs"
	"participantes/internal/ports"
	"participantes/internal/usecase/registry"
)

var participantCmd = &cobra.Command{
	Use:   "participant",
	Short: "Participant records",
}

var participantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List participants, newest id first",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *registry.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		filter, _ := cmd.Flags().GetString("filter")
		items, err := svc.ListParticipants(ctx, filter)
		if err != nil {
			logging.Error(ctx, "list participants failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list participants")
		}

		out := cmd.OutOrStdout()
		for _, item := range items {
			if _, err := fmt.Fprintln(out, formatParticipantLine(item)); err != nil {
				return errs.Wrap(err, "write participant line")
			}
		}
		if _, err := fmt.Fprintf(out, "total: %d\n", len(items)); err != nil {
			return errs.Wrap(err, "write participant total")
		}
		return nil
	}),
}

var participantGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one participant by id",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *registry.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		item, err := svc.GetParticipant(ctx, cmd.Flags().Args()[0])
		if errors.Is(err, ports.ErrParticipantNotFound) {
			if _, werr := fmt.Fprintln(cmd.OutOrStdout(), "participant not found"); werr != nil {
				return errs.Wrap(werr, "write not-found output")
			}
			return nil
		}
		if err != nil {
			logging.Error(ctx, "get participant failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "get participant")
		}

		if _, err := fmt.Fprintln(cmd.OutOrStdout(), formatParticipantLine(item)); err != nil {
			return errs.Wrap(err, "write participant output")
		}
		return nil
	}),
}

func formatParticipantLine(item registry.ParticipantItem) string {
	fields := []string{
		item.ID,
		item.Name,
		item.Address,
		item.Phone,
		item.Affiliation,
		item.EventDate,
		item.LocalityName,
		item.DivisionName,
	}
	for i, field := range fields {
		if strings.TrimSpace(field) == "" {
			fields[i] = "-"
		}
	}
	return strings.Join(fields, " | ")
}

func init() {
	rootCmd.AddCommand(participantCmd)
	participantCmd.AddCommand(participantListCmd)
	participantCmd.AddCommand(participantGetCmd)
	participantListCmd.Flags().String("filter", "", "Substring to match against any displayed column")
}
