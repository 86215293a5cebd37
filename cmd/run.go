package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRunCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the engagement scheduler and the monitoring server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := app.wireRuntime(ctx)
			if err != nil {
				app.logger.Error("startup failed", "error", err)
				return err
			}

			app.logger.Info("growthbot starting", "listen", app.cfg.Listen, "username", app.cfg.Credentials().Username)
			err = rt.run(ctx)
			app.logger.Info("growthbot stopped")
			return err
		},
	}
}

// run drives the scheduler and the monitoring server until ctx ends or one
// of them fails.
func (r *runtime) run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.server.Run(gctx)
	})
	g.Go(func() error {
		if err := r.bot.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	return g.Wait()
}
