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
	ConfigPath string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the rowdb CLI.
// Run without a subcommand it starts the interactive prompt on stdin/stdout.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	replOpts := &ReplOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "rowdb",
		Short: "rowdb - a tiny paged record store",
		Long: `A line-oriented record store with a fixed-width row format.

Reads commands from stdin and answers on stdout:

  insert <id> <username> <email>
  select
  .exit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(replOpts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to CUE config file")

	// REPL flags
	cmd.Flags().StringVar(&replOpts.Database, "db", "", "SQLite file for write-through persistence")
	cmd.Flags().IntVar(&replOpts.MaxPages, "max-pages", 0, "maximum table pages (overrides config)")

	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
