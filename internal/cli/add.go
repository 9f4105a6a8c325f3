package cli

import (
	"github.com/spf13/cobra"

	"github.com/helpdesklite/ticketgrid/internal/ticket"
)

// NewAddCommand creates the add command: mint a ticket and save it to
// the selected store.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	var fullName, email, subject, message string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closer, err := openStore(opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			t := ticket.NewFactory().New(fullName, email, subject, message)
			if err := st.Save(t.ToRecord()); err != nil {
				return WrapExitError(ExitFailure, "save ticket", err)
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if out.IsJSON() {
				return out.JSON(t)
			}
			out.Text("saved ticket %s", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "requester full name")
	cmd.Flags().StringVar(&email, "email", "", "requester email")
	cmd.Flags().StringVar(&subject, "subject", "", "ticket subject")
	cmd.Flags().StringVar(&message, "message", "", "ticket message")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
