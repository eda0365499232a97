package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rowdb/internal/table"
	"github.com/roach88/rowdb/internal/testutil"
)

func newTestSession(t *testing.T, tbl *table.Table, opts ...Option) *Session {
	t.Helper()
	if tbl == nil {
		tbl = table.New()
	}
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithIDGenerator(NewFixedGenerator("test-session")),
	}
	return New(tbl, append(base, opts...)...)
}

// runScript feeds commands to a fresh Run and returns the output split on newlines.
func runScript(t *testing.T, s *Session, commands ...string) ([]string, error) {
	t.Helper()
	in := strings.NewReader(strings.Join(commands, "\n") + "\n")
	var out bytes.Buffer
	err := s.Run(context.Background(), in, &out)
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n"), err
}

func TestRun_InsertAndSelect(t *testing.T) {
	s := newTestSession(t, nil)

	output, err := runScript(t, s,
		"insert 1 test_user test_user@github.com",
		"select",
		".exit",
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"db> Executed.",
		"db> 1, test_user, test_user@github.com",
		"Executed.",
		"db> Bye!",
	}, output)
}

func TestRun_TableFull(t *testing.T) {
	s := newTestSession(t, nil)

	script := make([]string, 0, 1402)
	for i := 1; i <= 1401; i++ {
		script = append(script, fmt.Sprintf("insert %d user%d person%d@example.com", i, i, i))
	}
	script = append(script, ".exit")

	output, err := runScript(t, s, script...)
	require.NoError(t, err)
	assert.Equal(t, "db> Error: Table full.", output[len(output)-2])
	assert.Equal(t, "db> Executed.", output[table.RowsPerPage*table.DefaultMaxPages-1])
	assert.Equal(t, "db> Error: Table full.", output[table.RowsPerPage*table.DefaultMaxPages])
	assert.Equal(t, s.Table().MaxRows(), s.Table().Len())
}

func TestRun_MaxLengthStrings(t *testing.T) {
	s := newTestSession(t, nil)
	name := strings.Repeat("a", 32)
	email := strings.Repeat("a", 255)

	output, err := runScript(t, s,
		"insert 1 "+name+" "+email,
		"select",
		".exit",
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"db> Executed.",
		"db> 1, " + name + ", " + email,
		"Executed.",
		"db> Bye!",
	}, output)
}

func TestRun_StringsTooLong(t *testing.T) {
	s := newTestSession(t, nil)

	output, err := runScript(t, s,
		"insert 1 "+strings.Repeat("a", 33)+" "+strings.Repeat("a", 256),
		"select",
		".exit",
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"db> String is too long.",
		"db> Executed.",
		"db> Bye!",
	}, output)
	assert.Equal(t, 0, s.Table().Len())
}

func TestRun_EndOfInputWithoutExit(t *testing.T) {
	s := newTestSession(t, nil)

	output, err := runScript(t, s, "select")
	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Equal(t, []string{
		"db> Executed.",
		"db> Error reading input",
	}, output)
}

func TestRun_ContextCancelled(t *testing.T) {
	s := newTestSession(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	pr, pw := io.Pipe()
	defer pw.Close()

	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, pr, io.Discard)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRun_WriteError(t *testing.T) {
	s := newTestSession(t, nil)
	err := s.Run(context.Background(), strings.NewReader(".exit\n"), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write prompt")
}

func TestExecute_Responses(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"insert 1 a a@x", []string{MsgExecuted}},
		{"insert -1 a a@x", []string{MsgNegativeID}},
		{"insert x a a@x", []string{"Syntax error, could not parse statement: 'insert x a a@x'."}},
		{"insert 1 a", []string{"Syntax error, could not parse statement: 'insert 1 a'."}},
		{"delete 1", []string{"Unrecognized statement: 'delete 1'."}},
		{".tables", []string{"Unrecognized command: '.tables'."}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s := newTestSession(t, nil)
			resp := s.Execute(context.Background(), tt.line)
			assert.Equal(t, tt.want, resp.Lines)
			assert.False(t, resp.Exit)
		})
	}
}

func TestExecute_Exit(t *testing.T) {
	s := newTestSession(t, nil)
	resp := s.Execute(context.Background(), ".exit")
	assert.True(t, resp.Exit)
	assert.Equal(t, []string{MsgBye}, resp.Lines)
}

func TestExecute_ControlBytesStoredAsIs(t *testing.T) {
	s := newTestSession(t, nil)
	ctx := context.Background()

	require.Equal(t, []string{"Executed."}, s.Execute(ctx, "insert 1 ab\x00 e\x00").Lines)
	assert.Equal(t, []string{"1, ab\x00, e\x00", "Executed."}, s.Execute(ctx, "select").Lines)
}

func TestExecute_SelectIsRepeatable(t *testing.T) {
	s := newTestSession(t, nil)
	ctx := context.Background()
	for i := 1; i <= 30; i++ {
		s.Execute(ctx, fmt.Sprintf("insert %d u%d e%d@x", i, i, i))
	}

	first := s.Execute(ctx, "select")
	second := s.Execute(ctx, "select")
	require.Len(t, first.Lines, 31)
	assert.Equal(t, first, second)
	assert.Equal(t, "1, u1, e1@x", first.Lines[0])
	assert.Equal(t, "30, u30, e30@x", first.Lines[29])
}

func TestExecute_WritesThroughPersister(t *testing.T) {
	m := testutil.NewMemoryStore()
	s := newTestSession(t, table.New(table.WithMaxPages(1)), WithPersister(m))
	ctx := context.Background()

	for i := 1; i <= table.RowsPerPage+1; i++ {
		s.Execute(ctx, fmt.Sprintf("insert %d u e", i))
	}

	// The overflowing insert never reaches the persister.
	seqs := m.Seqs()
	require.Len(t, seqs, table.RowsPerPage)
	assert.Equal(t, int64(0), seqs[0])
	assert.Equal(t, int64(table.RowsPerPage-1), seqs[table.RowsPerPage-1])

	stored, err := m.ReadRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.Table().Rows(), stored)
}

func TestExecute_RejectedRowsNotPersisted(t *testing.T) {
	m := testutil.NewMemoryStore()
	s := newTestSession(t, nil, WithPersister(m))
	ctx := context.Background()

	s.Execute(ctx, "insert 1 "+strings.Repeat("a", 33)+" e")
	s.Execute(ctx, "insert -1 a e")
	s.Execute(ctx, "insert 2 a")
	assert.Empty(t, m.Seqs())
}

func TestExecute_PersisterFailureLeavesTableUnchanged(t *testing.T) {
	m := testutil.NewMemoryStore()
	m.Fail(errors.New("database is locked"))
	s := newTestSession(t, nil, WithPersister(m))

	resp := s.Execute(context.Background(), "insert 1 a a@x")
	assert.Equal(t, []string{"Error: persist row: database is locked."}, resp.Lines)
	assert.Equal(t, 0, s.Table().Len())
}

func TestRestore(t *testing.T) {
	src := testutil.NewMemoryStore(testutil.Rows(2)...)
	s := newTestSession(t, nil)

	require.NoError(t, s.Restore(context.Background(), src))
	assert.Equal(t, testutil.Rows(2), s.Table().Rows())
}

func TestRestore_LoaderError(t *testing.T) {
	src := testutil.NewMemoryStore(testutil.Rows(2)...)
	src.Fail(errors.New("no such table: rows"))
	s := newTestSession(t, nil)

	err := s.Restore(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table")
	assert.Equal(t, 0, s.Table().Len())
}

func TestRestore_Overflow(t *testing.T) {
	src := testutil.NewMemoryStore(testutil.Rows(table.RowsPerPage + 1)...)
	s := newTestSession(t, table.New(table.WithMaxPages(1)))

	err := s.Restore(context.Background(), src)
	assert.ErrorIs(t, err, ErrRestoreOverflow)
	assert.Equal(t, 0, s.Table().Len())
}

func TestSessionID(t *testing.T) {
	s := newTestSession(t, nil)
	assert.Equal(t, "test-session", s.ID())

	gen := NewFixedGenerator("a")
	assert.Equal(t, "a", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })

	id := UUIDv7Generator{}.Generate()
	assert.Len(t, id, 36)
}
