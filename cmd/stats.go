package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"tigawane/internal/bootstrap"
	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/errs"
	"tigawane/internal/usecase/sharing"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show community sharing stats",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *sharing.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		stats, err := svc.GetCommunityStats(ctx)
		if err != nil {
			return errs.Wrap(err, "get community stats")
		}
		return printJSON(cmd, stats)
	}),
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
