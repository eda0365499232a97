package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rowdb/internal/row"
)

func TestPrepare_Insert(t *testing.T) {
	stmt, err := Prepare("insert 1 test_user test_user@github.com")
	require.NoError(t, err)
	assert.Equal(t, Insert, stmt.Type)
	assert.Equal(t, row.Row{ID: 1, Username: "test_user", Email: "test_user@github.com"}, stmt.Row)
}

func TestPrepare_InsertCollapsesSpaces(t *testing.T) {
	stmt, err := Prepare("insert   2  bob   bob@example.com ")
	require.NoError(t, err)
	assert.Equal(t, row.Row{ID: 2, Username: "bob", Email: "bob@example.com"}, stmt.Row)
}

func TestPrepare_Select(t *testing.T) {
	for _, line := range []string{"select", "select *", " select"} {
		stmt, err := Prepare(line)
		require.NoError(t, err, line)
		assert.Equal(t, Select, stmt.Type)
	}
}

func TestPrepare_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		code ErrorCode
	}{
		{"unknown verb", "update 1 a b", CodeUnrecognized},
		{"verb prefix only", "inserts 1 a b", CodeUnrecognized},
		{"blank", "   ", CodeUnrecognized},
		{"missing fields", "insert 1 a", CodeSyntax},
		{"no fields", "insert", CodeSyntax},
		{"extra field", "insert 1 a b c", CodeSyntax},
		{"id not a number", "insert abc a b", CodeSyntax},
		{"id overflows int32", "insert 2147483648 a b", CodeSyntax},
		{"negative id", "insert -1 a b", CodeNegativeID},
		{"username too long", "insert 1 " + strings.Repeat("a", 33) + " b", CodeStringTooLong},
		{"email too long", "insert 1 a " + strings.Repeat("a", 256), CodeStringTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Prepare(tt.line)
			require.Error(t, err)
			assert.Equal(t, tt.code, CodeOf(err))

			var pe *PrepareError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Input)
		})
	}
}

func TestPrepare_StringTooLongWrapsRowError(t *testing.T) {
	_, err := Prepare("insert 1 " + strings.Repeat("a", 33) + " " + strings.Repeat("a", 256))
	assert.ErrorIs(t, err, row.ErrStringTooLong)
}

func TestPrepare_BoundaryLengths(t *testing.T) {
	name := strings.Repeat("a", 32)
	email := strings.Repeat("a", 255)
	stmt, err := Prepare("insert 1 " + name + " " + email)
	require.NoError(t, err)
	assert.Equal(t, name, stmt.Row.Username)
	assert.Equal(t, email, stmt.Row.Email)
}

func TestParseMeta(t *testing.T) {
	assert.True(t, IsMeta(".exit"))
	assert.False(t, IsMeta("select"))

	cmd, err := ParseMeta(".exit")
	require.NoError(t, err)
	assert.Equal(t, MetaExit, cmd)

	_, err = ParseMeta(".tables")
	assert.Equal(t, CodeUnrecognizedCommand, CodeOf(err))
}

func TestErrorHelpers(t *testing.T) {
	_, err := Prepare("insert x a b")
	assert.Equal(t, CodeSyntax, CodeOf(err))
	assert.Contains(t, err.Error(), "SYNTAX")

	assert.Equal(t, ErrorCode(""), CodeOf(nil))
	assert.Equal(t, "insert", Insert.String())
	assert.Equal(t, "select", Select.String())
}
