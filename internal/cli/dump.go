package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/rowdb/internal/store"
)

// DumpOptions holds flags for the dump command.
type DumpOptions struct {
	*RootOptions
	Database string
}

// DumpRow is the JSON shape of a dumped row.
type DumpRow struct {
	ID       int32  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DumpResult is the JSON payload of the dump command.
type DumpResult struct {
	Path  string    `json:"path"`
	Count int       `json:"count"`
	Rows  []DumpRow `json:"rows"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DumpOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the rows persisted in a database file",
		Long: `Print every row stored in a rowdb SQLite file, in insertion order,
using the same format as select.

Example:
  rowdb dump --db ./rows.db
  rowdb dump --db ./rows.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runDump(opts *DumpOptions, cmd *cobra.Command) (err error) {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Opening would create a missing file.
	if _, statErr := os.Stat(opts.Database); os.IsNotExist(statErr) {
		msg := fmt.Sprintf("database not found: %s", opts.Database)
		if outErr := formatter.Error(ErrCodeNotFound, msg, nil); outErr != nil {
			return outErr
		}
		return NewExitError(ExitCommandError, msg)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil && err == nil {
			err = WrapExitError(ExitFailure, "failed to close database", closeErr)
		}
	}()

	ctx := commandContext(cmd)
	count, err := st.CountRows(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to count rows", err)
	}
	formatter.VerboseLog("%d rows in %s", count, st.Path())

	rows, err := st.ReadRows(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read rows", err)
	}

	if opts.Format == "json" {
		out := DumpResult{Path: st.Path(), Count: count, Rows: make([]DumpRow, len(rows))}
		for i, r := range rows {
			out.Rows[i] = DumpRow{ID: r.ID, Username: r.Username, Email: r.Email}
		}
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return WrapExitError(ExitFailure, "failed to write rows", err)
		}
	}
	return nil
}
