package cli

import (
	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command. Deleting an id that is
// not stored is a silent success, matching the storage contract.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a stored ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closer, err := openStore(opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := st.Delete(args[0]); err != nil {
				return WrapExitError(ExitFailure, "delete ticket", err)
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if out.IsJSON() {
				return out.JSON(map[string]string{"deleted": args[0]})
			}
			out.Text("deleted ticket %s", args[0])
			return nil
		},
	}
}
