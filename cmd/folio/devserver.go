package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rajshekhar/folio/internal/infrastructure/devserver"
)

type devServerOptions struct {
	addr          string
	fixtures      string
	latency       time.Duration
	primaryAsList bool
}

func newDevServerCmd(app *AppContext) *cobra.Command {
	opts := &devServerOptions{}

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Serve the portfolio API from fixtures",
		Long: `Serve the portfolio backend API from a YAML fixtures file (or the built-in
sample content) so the TUI and the other commands can run without the real
backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.devserver")

			addr := valueOrFallback(opts.addr, app.Config.DevServer.Addr)
			path := valueOrFallback(opts.fixtures, app.Config.DevServer.Fixtures)
			fixtures, err := devserver.LoadFixtures(path)
			if err != nil {
				return newCommandError("load fixtures", valueOrFallback(path, "built-in fixtures"), err,
					"Fix the YAML at the reported line, or omit --fixtures to use the sample content.")
			}

			var serverOpts []devserver.Option
			if opts.latency > 0 {
				serverOpts = append(serverOpts, devserver.WithLatency(opts.latency))
			}
			if opts.primaryAsList {
				serverOpts = append(serverOpts, devserver.WithPrimaryAsList())
			}
			server := devserver.New(fixtures, logger, serverOpts...)

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = server.ListenAndServe(ctx, addr, func(bound net.Addr) {
				fmt.Fprintf(cmd.OutOrStdout(), "Serving portfolio API on http://%s/api (Ctrl+C to stop)\n", bound)
			})
			if err != nil {
				return newCommandError("serve portfolio API", addr, err, "Pick a free address with --addr.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default devserver.addr, localhost:8080)")
	cmd.Flags().StringVar(&opts.fixtures, "fixtures", "", "YAML fixtures file (default: built-in sample content)")
	cmd.Flags().DurationVar(&opts.latency, "latency", 0, "Delay every response, e.g. 800ms, to exercise loading states")
	cmd.Flags().BoolVar(&opts.primaryAsList, "primary-as-list", false, "Answer /about/primary with a one-element list")

	return cmd
}
