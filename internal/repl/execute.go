package repl

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/rowdb/internal/row"
	"github.com/roach88/rowdb/internal/statement"
	"github.com/roach88/rowdb/internal/table"
)

// Response is the output of one input line.
type Response struct {
	Lines []string

	// Exit is set by ".exit"; Run stops after writing Lines.
	Exit bool
}

// Execute runs one input line against the session's table.
// An empty line produces an empty response.
func (s *Session) Execute(ctx context.Context, line string) Response {
	if line == "" {
		return Response{}
	}

	if statement.IsMeta(line) {
		return s.executeMeta(line)
	}

	stmt, err := statement.Prepare(line)
	if err != nil {
		s.logger.Debug("prepare failed", "line", line, "error", err)
		return Response{Lines: []string{prepareMessage(line, err)}}
	}

	switch stmt.Type {
	case statement.Insert:
		return s.executeInsert(ctx, stmt.Row)
	case statement.Select:
		return s.executeSelect()
	default:
		return Response{Lines: []string{msgUnrecognizedStatement(line)}}
	}
}

func (s *Session) executeMeta(line string) Response {
	cmd, err := statement.ParseMeta(line)
	if err != nil {
		return Response{Lines: []string{msgUnrecognizedCommand(line)}}
	}

	switch cmd {
	case statement.MetaExit:
		return Response{Lines: []string{MsgBye}, Exit: true}
	default:
		return Response{Lines: []string{msgUnrecognizedCommand(line)}}
	}
}

func (s *Session) executeInsert(ctx context.Context, r row.Row) Response {
	err := s.insert(ctx, r)
	switch {
	case err == nil:
		s.logger.Debug("row inserted", "id", r.ID, "rows", s.table.Len())
		return Response{Lines: []string{MsgExecuted}}
	case errors.Is(err, row.ErrStringTooLong):
		return Response{Lines: []string{MsgStringTooLong}}
	case errors.Is(err, table.ErrTableFull):
		s.logger.Debug("table full", "id", r.ID, "max_rows", s.table.MaxRows())
		return Response{Lines: []string{MsgTableFull}}
	default:
		s.logger.Warn("insert failed", "id", r.ID, "error", err)
		return Response{Lines: []string{msgStorageError(err)}}
	}
}

// insert writes through to the persister, then appends to the table.
// The table is only touched once the persister has accepted the row.
func (s *Session) insert(ctx context.Context, r row.Row) error {
	if err := row.Validate(r); err != nil {
		return err
	}
	if s.table.Full() {
		return fmt.Errorf("insert id %d: %w", r.ID, table.ErrTableFull)
	}

	if s.sink != nil {
		if err := s.sink.AppendRow(ctx, int64(s.table.Len()), r); err != nil {
			return fmt.Errorf("persist row: %w", err)
		}
	}

	return s.table.Insert(r)
}

func (s *Session) executeSelect() Response {
	lines := make([]string, 0, s.table.Len()+1)
	for r := range s.table.Scan() {
		lines = append(lines, r.String())
	}
	lines = append(lines, MsgExecuted)
	return Response{Lines: lines}
}

// prepareMessage maps a prepare failure onto its response payload.
func prepareMessage(line string, err error) string {
	switch statement.CodeOf(err) {
	case statement.CodeStringTooLong:
		return MsgStringTooLong
	case statement.CodeNegativeID:
		return MsgNegativeID
	case statement.CodeSyntax:
		return msgSyntaxError(line)
	default:
		return msgUnrecognizedStatement(line)
	}
}
