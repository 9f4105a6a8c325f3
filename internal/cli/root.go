package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Store      string // "volatile" | "session" | "persistent"
	DBPath     string
	ConfigPath string
	PageSize   int
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidStores defines the allowed storage strategies.
var ValidStores = []string{"volatile", "session", "persistent"}

// NewRootCommand creates the root command for the ticketgrid CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ticketgrid",
		Short: "ticketgrid - support tickets behind a pageable, sortable, filterable grid",
		Long: "ticketgrid stores support tickets in interchangeable storage backends\n" +
			"(in-memory, session-scoped, persistent; durable payloads encrypted at rest)\n" +
			"and serves them through a paginated, multi-sorted, multi-filtered grid.",
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(opts.ConfigPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			// Explicit flags win; then config; then built-in defaults.
			if !cmd.Flags().Changed("store") && cfg.Store != "" {
				opts.Store = cfg.Store
			}
			if !cmd.Flags().Changed("db") && cfg.DBPath != "" {
				opts.DBPath = cfg.DBPath
			}
			if !cmd.Flags().Changed("page-size") && cfg.PageSize > 0 {
				opts.PageSize = cfg.PageSize
			}

			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !slices.Contains(ValidStores, opts.Store) {
				return fmt.Errorf("invalid store %q: must be one of %v", opts.Store, ValidStores)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Store, "store", "persistent", "storage strategy (volatile|session|persistent)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", DefaultDBPath, "SQLite database path for the persistent store")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "ticketgrid.yaml", "config file path")
	cmd.PersistentFlags().IntVar(&opts.PageSize, "page-size", 10, "grid page size")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewViewsCommand(opts))

	return cmd
}
