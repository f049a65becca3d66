package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rajshekhar/folio/internal/domain/contact"
	"github.com/rajshekhar/folio/internal/ports"
)

type contactOptions struct {
	name    string
	email   string
	subject string
	message string
	attach  string
}

func newContactCmd(app *AppContext) *cobra.Command {
	opts := &contactOptions{}

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact form",
		Long: `Send a message through the same three-step contact wizard the TUI uses.
Every step is validated before anything is sent.`,
		Example: `  folio contact --name "Ada Lovelace" --email ada@example.com \
    --subject "Data platform role" --message "Would love to chat about a role." \
    --attach ./resume.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.contact")
			client, err := app.APIClient(logger)
			if err != nil {
				return err
			}
			wizard := contact.NewWizard(client, logger)
			return runContact(ctx, cmd.OutOrStdout(), wizard, opts, logger)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Your name")
	cmd.Flags().StringVar(&opts.email, "email", "", "Your email address")
	cmd.Flags().StringVar(&opts.subject, "subject", "", "Message subject")
	cmd.Flags().StringVar(&opts.message, "message", "", "Message body")
	cmd.Flags().StringVar(&opts.attach, "attach", "", "Optional file to attach (PDF, DOC, DOCX, TXT or image, up to 5MB)")

	return cmd
}

func runContact(ctx context.Context, out io.Writer, wizard *contact.Wizard, opts *contactOptions, logger ports.Logger) error {
	wizard.UpdateField(contact.FieldName, opts.name)
	wizard.UpdateField(contact.FieldEmail, opts.email)
	wizard.UpdateField(contact.FieldSubject, opts.subject)
	wizard.UpdateField(contact.FieldMessage, opts.message)

	for wizard.Step() < contact.LastStep {
		step := wizard.Step()
		if !wizard.Advance() {
			logger.Debug(ctx, "contact step rejected", "step", int(step))
			return newCommandError("send message", fmt.Sprintf("step %d (%s)", step, step.Title()), wizard.Errors(),
				"Fix the listed fields and run the command again.")
		}
	}

	if opts.attach != "" {
		attachment, err := contact.AttachmentFromFile(opts.attach)
		if err == nil {
			err = wizard.AttachFile(attachment)
		}
		if err != nil {
			notice := contact.NoticeForAttachment(err)
			return newCommandError("attach file", opts.attach, errors.New(notice.Text),
				"Attach a PDF, DOC, DOCX, TXT or image file up to 5MB, or leave out --attach.")
		}
		fmt.Fprintf(out, "Attached %s (%s)\n", attachment.Name, attachment.HumanSize())
	}

	notice := wizard.Submit(ctx)
	switch notice.Kind {
	case contact.NoticeSuccess:
		fmt.Fprintln(out, notice.Text)
		return nil
	case contact.NoticeError:
		return newCommandError("send message", "contact form", errors.New(notice.Text), backendSuggestion)
	default:
		return newCommandError("send message", "contact form", wizard.Errors(), "Fix the listed fields and run the command again.")
	}
}
