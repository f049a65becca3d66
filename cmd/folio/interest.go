package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rajshekhar/folio/internal/domain/contact"
)

func newInterestCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interest <email>",
		Short: "Leave your email through the quick contact form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.interest")
			client, err := app.APIClient(logger)
			if err != nil {
				return err
			}

			form := contact.NewInterestForm(client, logger)
			form.UpdateEmail(args[0])
			notice := form.Submit(ctx)
			switch notice.Kind {
			case contact.NoticeSuccess:
				fmt.Fprintln(cmd.OutOrStdout(), notice.Text)
				return nil
			case contact.NoticeError:
				return newCommandError("register interest", client.BaseURL(), errors.New(notice.Text), backendSuggestion)
			default:
				return newCommandError("register interest", args[0], errors.New(form.Error()), "Pass a valid email address.")
			}
		},
	}

	return cmd
}
