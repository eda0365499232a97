package cli

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rowdb/internal/testutil"
)

func seedDatabase(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "rows.db")
	_, _, err := executeRoot(t, testutil.InsertScript(2, ".exit"), "--db", dbPath)
	require.NoError(t, err)
	return dbPath
}

func TestDumpCommandText(t *testing.T) {
	dbPath := seedDatabase(t)

	out, _, err := executeRoot(t, "", "dump", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, testutil.Row(1).String()+"\n"+testutil.Row(2).String()+"\n", out)
}

func TestDumpCommandVerbose(t *testing.T) {
	dbPath := seedDatabase(t)

	_, errOut, err := executeRoot(t, "", "dump", "--db", dbPath, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, errOut, "2 rows in "+dbPath)
}

func TestDumpCommandJSON(t *testing.T) {
	dbPath := seedDatabase(t)

	out, _, err := executeRoot(t, "", "dump", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   DumpResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, dbPath, resp.Data.Path)
	assert.Equal(t, 2, resp.Data.Count)
	assert.Equal(t, []DumpRow{
		{ID: 1, Username: "user1", Email: "person1@example.com"},
		{ID: 2, Username: "user2", Email: "person2@example.com"},
	}, resp.Data.Rows)
}

func TestDumpCommandEmptyDatabaseJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rows.db")
	_, _, err := executeRoot(t, ".exit\n", "--db", dbPath)
	require.NoError(t, err)

	out, _, err := executeRoot(t, "", "dump", "--db", dbPath, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"count":0`)
	assert.Contains(t, out, `"rows":[]`)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestDumpCommandWriteError(t *testing.T) {
	dbPath := seedDatabase(t)

	cmd := NewRootCommand()
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(brokenWriter{})
	cmd.SetErr(brokenWriter{})
	cmd.SetArgs([]string{"dump", "--db", dbPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestDumpCommandMissingDatabase(t *testing.T) {
	out, _, err := executeRoot(t, "", "dump", "--db", filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeNotFound+"]")
}

func TestDumpCommandRequiresDB(t *testing.T) {
	_, _, err := executeRoot(t, "", "dump")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "db" not set`)
}
