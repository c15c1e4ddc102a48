package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tigawane/internal/bootstrap"
	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/errs"
	"tigawane/internal/transport/httpapi"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: withServer(func(cmd *cobra.Command, app *bootstrap.App, server *httpapi.Server) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			serveErr <- server.Start(ctx)
		}()

		select {
		case err := <-serveErr:
			return err
		case <-signalCtx.Done():
		}

		logging.Info(ctx, "shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errs.Wrap(err, "shutdown http server")
		}
		return <-serveErr
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
