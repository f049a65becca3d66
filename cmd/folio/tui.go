package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rajshekhar/folio/internal/tui"
)

const nonInteractiveHint = "folio needs an interactive terminal for the portfolio UI.\nTry `folio show about`, `folio show projects` or `folio --help`."

func newTUICmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive portfolio (default when no command is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	return cmd
}

func runTUI(cmd *cobra.Command, app *AppContext) error {
	ctx, logger := app.CommandContext(cmd, "command.tui")
	if !isTerminal(cmd.OutOrStdout()) {
		fmt.Fprintln(cmd.OutOrStdout(), nonInteractiveHint)
		return nil
	}

	client, err := app.APIClient(logger)
	if err != nil {
		return err
	}
	deps := tui.Deps{
		Owner:     app.Owner(),
		Content:   app.ContentLoader(client, logger),
		Contact:   client,
		Interest:  client,
		Completer: app.Completer(logger),
		Logger:    logger,
	}
	// A broken preference store costs persistence, not the whole UI.
	if store, err := app.ThemeStore(ctx, logger); err != nil {
		logger.Warn(ctx, "theme preference unavailable", "error", err)
	} else {
		deps.Theme = store
	}

	logger.Info(ctx, "launching tui", "api", client.BaseURL())
	program := tea.NewProgram(tui.NewModel(ctx, deps),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error(ctx, "tui exited with error", "error", err)
		return newCommandError("run the portfolio UI", "terminal", err, "Resize the terminal or rerun with --verbose and check the log file.")
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
