package cli

import (
	"github.com/spf13/cobra"

	"github.com/helpdesklite/ticketgrid/internal/view"
)

// NewViewsCommand creates the views command: list the named view
// definitions in a CUE directory.
func NewViewsCommand(opts *RootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "views",
		Short: "List grid view definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := view.Load(dir)
			if err != nil {
				return WrapExitError(ExitCommandError, "load views", err)
			}

			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			if out.IsJSON() {
				return out.JSON(views)
			}
			for _, v := range views {
				out.Text("%s: page size %d, %d sorters, %d filters", v.Name, v.PageSize, len(v.Sorters), len(v.Filters))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "views", "views", "directory of CUE view definitions")
	return cmd
}
