package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rajshekhar/folio/internal/config"
	"github.com/rajshekhar/folio/internal/domain/chat"
)

func newAskCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the portfolio assistant one question",
		Long: `Ask the AI assistant a single question. The assistant is grounded on the
portfolio content fetched for this call and sees no earlier questions.`,
		Example: `  folio ask "What has Raj built with Kafka?"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.ask")
			client, err := app.APIClient(logger)
			if err != nil {
				return err
			}

			owner := app.Owner()
			snapshot := app.ContentLoader(client, logger).LoadAll(ctx)
			if err := snapshot.Err(); err != nil {
				logger.Warn(ctx, "answering with partial portfolio content", "error", err)
			}

			conversation := chat.NewConversation(owner, app.Completer(logger), chat.WithLogger(logger))
			conversation.SetGrounding(snapshot.Grounding(owner))

			reply, ok := conversation.Send(ctx, strings.Join(args, " "))
			if !ok {
				return newCommandError("ask the assistant", "question", errors.New("question is empty"), "Pass the question as arguments.")
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
			if reply.IsError {
				return newCommandError("ask the assistant", app.Config.Chat.Model, errors.New(conversation.Banner()),
					fmt.Sprintf("Check that %s is set and %s is reachable.", config.EnvAPIKey, app.Config.Chat.BaseURL))
			}
			return nil
		},
	}

	return cmd
}
