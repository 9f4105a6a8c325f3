package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpdesklite/ticketgrid/internal/ticket"
)

// NewGetCommand creates the get command: show one ticket by id.
func NewGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closer, err := openStore(opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			r, ok := st.Get(args[0])
			if !ok {
				return NewExitError(ExitFailure, fmt.Sprintf("ticket %s not found", args[0]))
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if out.IsJSON() {
				return out.JSON(ticket.FromRecord(r))
			}
			renderTicket(cmd.OutOrStdout(), ticket.FromRecord(r))
			return nil
		},
	}
}
