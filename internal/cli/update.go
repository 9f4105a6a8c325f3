package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpdesklite/ticketgrid/internal/record"
	"github.com/helpdesklite/ticketgrid/internal/ticket"
)

// NewUpdateCommand creates the update command: shallow-merge changed
// fields into a stored ticket. Only flags the user actually set are
// merged, so an empty --subject clears the subject only when passed
// explicitly.
func NewUpdateCommand(opts *RootOptions) *cobra.Command {
	var fullName, email, subject, message string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update fields of a stored ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closer, err := openStore(opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			if _, ok := st.Get(args[0]); !ok {
				return NewExitError(ExitFailure, fmt.Sprintf("ticket %s not found", args[0]))
			}

			fields := record.Record{}
			if cmd.Flags().Changed("name") {
				fields[ticket.FieldFullName] = fullName
			}
			if cmd.Flags().Changed("email") {
				fields[ticket.FieldEmail] = email
			}
			if cmd.Flags().Changed("subject") {
				fields[ticket.FieldSubject] = subject
			}
			if cmd.Flags().Changed("message") {
				fields[ticket.FieldMessage] = message
			}
			if len(fields) == 0 {
				return NewExitError(ExitCommandError, "nothing to update: pass at least one field flag")
			}

			if err := st.Update(args[0], fields); err != nil {
				return WrapExitError(ExitFailure, "update ticket", err)
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if out.IsJSON() {
				r, _ := st.Get(args[0])
				return out.JSON(ticket.FromRecord(r))
			}
			out.Text("updated ticket %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "requester full name")
	cmd.Flags().StringVar(&email, "email", "", "requester email")
	cmd.Flags().StringVar(&subject, "subject", "", "ticket subject")
	cmd.Flags().StringVar(&message, "message", "", "ticket message")

	return cmd
}
