package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/rowdb/internal/row"
	"github.com/roach88/rowdb/internal/table"
)

// Persister receives each row before it is added to the table.
// seq is the index the row will occupy.
type Persister interface {
	AppendRow(ctx context.Context, seq int64, r row.Row) error
}

// Loader supplies previously persisted rows in insertion order.
type Loader interface {
	ReadRows(ctx context.Context) ([]row.Row, error)
}

// ErrRestoreOverflow is returned by Restore when the stored rows exceed the
// table capacity.
var ErrRestoreOverflow = errors.New("stored rows exceed table capacity")

// Session is one interactive run over one table.
type Session struct {
	id     string
	table  *table.Table
	sink   Persister
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	sink   Persister
	logger *slog.Logger
	idGen  IDGenerator
}

// WithPersister makes every successful insert write through to p.
func WithPersister(p Persister) Option {
	return func(c *sessionConfig) { c.sink = p }
}

// WithLogger sets the diagnostic logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *sessionConfig) { c.logger = l }
}

// WithIDGenerator overrides session id generation (for testing).
func WithIDGenerator(g IDGenerator) Option {
	return func(c *sessionConfig) { c.idGen = g }
}

// New creates a session that owns tbl.
func New(tbl *table.Table, opts ...Option) *Session {
	cfg := sessionConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.idGen == nil {
		cfg.idGen = UUIDv7Generator{}
	}

	id := cfg.idGen.Generate()
	return &Session{
		id:     id,
		table:  tbl,
		sink:   cfg.sink,
		logger: cfg.logger.With("session", id),
	}
}

// ID returns the session id used in log lines.
func (s *Session) ID() string {
	return s.id
}

// Table returns the table owned by the session.
func (s *Session) Table() *table.Table {
	return s.table
}

// Restore loads persisted rows into the table without writing them back.
// Must be called before the first insert.
func (s *Session) Restore(ctx context.Context, src Loader) error {
	rows, err := src.ReadRows(ctx)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if len(rows) > s.table.MaxRows()-s.table.Len() {
		return fmt.Errorf("restore: %d rows, capacity %d: %w", len(rows), s.table.MaxRows(), ErrRestoreOverflow)
	}

	for i, r := range rows {
		if err := s.table.Insert(r); err != nil {
			return fmt.Errorf("restore row %d: %w", i, err)
		}
	}

	s.logger.Info("restored rows", "rows", len(rows))
	return nil
}

// Run drives the prompt/read/execute loop until ".exit", end of input or
// cancellation of ctx.
//
// Returns nil after ".exit". At end of input it writes MsgInputError and
// returns an error wrapping ErrInputClosed.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, readErr := readLines(ctx, in)
	w := &responseWriter{w: out}

	s.logger.Debug("session started", "max_rows", s.table.MaxRows())
	for {
		w.prompt()
		if w.err != nil {
			return w.err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				w.lines([]string{MsgInputError})
				err := <-readErr
				s.logger.Debug("input closed", "rows", s.table.Len(), "error", err)
				if err != nil {
					return errors.Join(ErrInputClosed, err)
				}
				return ErrInputClosed
			}

			resp := s.Execute(ctx, line)
			w.lines(resp.Lines)
			if w.err != nil {
				return w.err
			}
			if resp.Exit {
				s.logger.Debug("session exited", "rows", s.table.Len())
				return nil
			}
		}
	}
}

type responseWriter struct {
	w   io.Writer
	err error
}

func (rw *responseWriter) prompt() {
	if rw.err != nil {
		return
	}
	if _, err := io.WriteString(rw.w, Prompt); err != nil {
		rw.err = fmt.Errorf("write prompt: %w", err)
	}
}

func (rw *responseWriter) lines(lines []string) {
	for _, line := range lines {
		if rw.err != nil {
			return
		}
		if _, err := io.WriteString(rw.w, line+"\n"); err != nil {
			rw.err = fmt.Errorf("write response: %w", err)
		}
	}
}
