package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [toggle]",
		Short:     "Print or toggle the persisted color theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.theme")
			store, err := app.ThemeStore(ctx, logger)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if err := store.Toggle(ctx); err != nil {
					return newCommandError("save theme preference", describeStorage(app.Config.Storage), err,
						"Check storage.path is writable.")
				}
				logger.Info(ctx, "theme toggled", "mode", store.Mode())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", store.Mode())
			return nil
		},
	}

	return cmd
}
