package cmd

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tigawane/internal/bootstrap"
	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/errs"
	"tigawane/internal/usecase/adminconsole"
	"tigawane/internal/usecase/sharing"
)

var consoleAdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Start the moderation console",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		status, _ := cmd.Flags().GetString("status")
		refreshInterval, _ := cmd.Flags().GetDuration("refresh-interval")
		if refreshInterval <= 0 {
			refreshInterval = 5 * time.Second
		}

		model := adminconsole.NewAdminModel(ctx, svc, adminconsole.Options{
			StatusFilter:    status,
			RefreshInterval: refreshInterval,
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run admin console")
		}
		return nil
	}),
}

func init() {
	consoleCmd.AddCommand(consoleAdminCmd)
	consoleAdminCmd.Flags().String("status", "", "Optional item status filter (available|requested|reserved|completed)")
	consoleAdminCmd.Flags().Duration("refresh-interval", 5*time.Second, "Auto refresh interval")
}
