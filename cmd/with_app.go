package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"tigawane/internal/bootstrap"
	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/errs"
	"tigawane/internal/transport/httpapi"
	"tigawane/internal/usecase/sharing"
)

func withApp(run func(cmd *cobra.Command, app *bootstrap.App, svc *sharing.Service) error) func(cmd *cobra.Command, args []string) error {
	return runWithFx(func(cmd *cobra.Command, app *bootstrap.App, svc *sharing.Service, _ *httpapi.Server) error {
		return run(cmd, app, svc)
	})
}

func withServer(run func(cmd *cobra.Command, app *bootstrap.App, server *httpapi.Server) error) func(cmd *cobra.Command, args []string) error {
	return runWithFx(func(cmd *cobra.Command, app *bootstrap.App, _ *sharing.Service, server *httpapi.Server) error {
		return run(cmd, app, server)
	})
}

func runWithFx(run func(cmd *cobra.Command, app *bootstrap.App, svc *sharing.Service, server *httpapi.Server) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithAttrs(
			cmd.Context(),
			slog.String("command", cmd.CommandPath()),
			slog.String("config_file", cfgFile),
		)

		var app *bootstrap.App
		var svc *sharing.Service
		var server *httpapi.Server
		fxApp := fx.New(
			bootstrap.Module,
			fx.Provide(func() context.Context { return ctx }),
			fx.Provide(
				fx.Annotate(
					func() string { return cfgFile },
					fx.ResultTags(`name:"configFile"`),
				),
			),
			fx.Populate(&app, &svc, &server),
		)

		startCtx, cancelStart := context.WithTimeout(ctx, 10*time.Second)
		defer cancelStart()
		if err := fxApp.Start(startCtx); err != nil {
			logging.Error(ctx, "bootstrap application failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "start fx application")
		}

		defer func() {
			stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancelStop()
			if err := fxApp.Stop(stopCtx); err != nil {
				logging.Error(ctx, "fx application stop failed", slog.Any("err", errs.Loggable(err)))
			}
		}()

		if err := run(cmd, app, svc, server); err != nil {
			return errs.Wrap(err, "run command")
		}
		return nil
	}
}
