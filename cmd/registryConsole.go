package cmd

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"participantes/internal/bootstrap"
	"participantes/internal/bootstrap/logging"
	"participantes/internal/errs"
	"participantes/internal/usecase/registry"
	"participantes/internal/usecase/registryconsole"
)

var consoleRegistryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Start the participant data-entry console",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *registry.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		model := registryconsole.NewConsoleModel(ctx, svc, registryconsole.Options{})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run registry console")
		}
		return nil
	}),
}

func init() {
	consoleCmd.AddCommand(consoleRegistryCmd)
}
