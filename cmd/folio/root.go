package main

import (
	"github.com/spf13/cobra"
)

// skipSetupAnnotation marks commands that run without configuration.
const skipSetupAnnotation = "folio/skip-setup"

type rootFlags struct {
	configPath string
	envFile    string
	logFile    string
	verbose    bool
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "folio",
		Short: "Browse Raj's portfolio from the terminal",
		Long: `folio renders the portfolio in an interactive terminal UI: hero, about,
skills, projects, experience, a contact wizard and an AI assistant grounded on
the portfolio content. Subcommands expose the same data for scripts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetupAnnotation] != "" {
				return nil
			}
			return app.Setup(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// With no subcommand, launch the TUI
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to the config file (default "+defaultConfigHint+")")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Path to a .env file (default ./.env when present)")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Write logs to this file, or - for stderr")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newContactCmd(app))
	cmd.AddCommand(newInterestCmd(app))
	cmd.AddCommand(newAskCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newDevServerCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
