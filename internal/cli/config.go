package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rowdb/internal/config"
	"github.com/roach88/rowdb/internal/table"
)

// ConfigView is the effective configuration reported by the config command.
type ConfigView struct {
	MaxPages int    `json:"max_pages"`
	MaxRows  int    `json:"max_rows"`
	Database string `json:"database"`
	LogLevel string `json:"log_level"`
}

func (v ConfigView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "max_pages: %d\n", v.MaxPages)
	fmt.Fprintf(&b, "max_rows:  %d\n", v.MaxRows)
	fmt.Fprintf(&b, "database:  %q\n", v.Database)
	fmt.Fprintf(&b, "log_level: %q", v.LogLevel)
	return b.String()
}

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Validate and print the effective configuration",
		Long: `Load the CUE file given with --config (or the defaults), validate it
against the built-in schema, and print the resulting settings.

Example:
  rowdb config --config ./rowdb.cue
  rowdb config --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(rootOpts, cmd)
		},
	}
}

func runConfig(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	formatter.VerboseLog("loading config from %q", opts.ConfigPath)
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		code, details := ErrCodeGeneric, map[string]string(nil)
		var le *config.LoadError
		if errors.As(err, &le) {
			code = le.Code
			if le.Pos.IsValid() {
				details = map[string]string{
					"file": le.Pos.Filename(),
					"line": fmt.Sprintf("%d", le.Pos.Line()),
				}
			}
		}
		if outErr := formatter.Error(code, err.Error(), details); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "invalid config", err)
	}

	view := ConfigView{
		MaxPages: cfg.MaxPages,
		MaxRows:  cfg.MaxPages * table.RowsPerPage,
		Database: cfg.Database,
		LogLevel: cfg.LogLevel,
	}
	return formatter.Success(view)
}
