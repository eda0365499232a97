package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/rowdb/internal/config"
	"github.com/roach88/rowdb/internal/repl"
	"github.com/roach88/rowdb/internal/store"
	"github.com/roach88/rowdb/internal/table"
)

// ReplOptions holds flags for the interactive prompt.
type ReplOptions struct {
	*RootOptions
	Database string
	MaxPages int

	// IDGenerator allows overriding the session id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator repl.IDGenerator
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}
	if opts.MaxPages < 0 || opts.MaxPages > table.MaxPagesLimit {
		return NewExitError(ExitCommandError, fmt.Sprintf("--max-pages must be between 1 and %d", table.MaxPagesLimit))
	}
	if opts.MaxPages != 0 {
		cfg.MaxPages = opts.MaxPages
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	logger := newLogger(cmd, opts.Verbose, cfg)

	tbl := table.New(table.WithMaxPages(cfg.MaxPages))
	sessionOpts := []repl.Option{repl.WithLogger(logger)}
	if opts.IDGenerator != nil {
		sessionOpts = append(sessionOpts, repl.WithIDGenerator(opts.IDGenerator))
	}

	var st *store.Store
	if cfg.Database != "" {
		logger.Info("opening database", "path", cfg.Database)
		st, err = store.Open(cfg.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		sessionOpts = append(sessionOpts, repl.WithPersister(st))
	}

	session := repl.New(tbl, sessionOpts...)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if st != nil {
		if err := session.Restore(ctx, st); err != nil {
			return WrapExitError(ExitCommandError, "failed to restore table", err)
		}
	}

	logger.Info("session starting", "session", session.ID(), "max_pages", tbl.MaxPages(), "max_rows", tbl.MaxRows())
	err = session.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repl.ErrInputClosed):
		return WrapExitError(ExitFailure, "input closed", err)
	case errors.Is(err, context.Canceled):
		logger.Info("session interrupted", "session", session.ID())
		return nil
	default:
		return WrapExitError(ExitFailure, "session error", err)
	}
}

// commandContext returns the command's context if set (for testing), otherwise Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}

// newLogger writes to the command's stderr; --verbose forces debug level.
func newLogger(cmd *cobra.Command, verbose bool, cfg *config.Config) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
}
