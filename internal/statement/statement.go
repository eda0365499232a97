package statement

import (
	"errors"
	"strconv"
	"strings"

	"github.com/roach88/rowdb/internal/row"
)

// Type identifies the statement verb.
type Type int

const (
	Insert Type = iota + 1
	Select
)

func (t Type) String() string {
	switch t {
	case Insert:
		return "insert"
	case Select:
		return "select"
	default:
		return "unknown"
	}
}

// Statement is a prepared insert or select.
type Statement struct {
	Type Type

	// Row is set for Insert only.
	Row row.Row
}

// MetaCommand is a recognized dot command.
type MetaCommand int

const (
	MetaExit MetaCommand = iota + 1
)

// IsMeta reports whether line is a meta command rather than a statement.
func IsMeta(line string) bool {
	return strings.HasPrefix(line, ".")
}

// ParseMeta recognizes a meta command line.
func ParseMeta(line string) (MetaCommand, error) {
	switch line {
	case ".exit":
		return MetaExit, nil
	default:
		return 0, newPrepareError(CodeUnrecognizedCommand, line, nil)
	}
}

// Prepare parses a statement line.
func Prepare(line string) (Statement, error) {
	tokens := tokenize(line)
	if len(tokens) == 0 {
		return Statement{}, newPrepareError(CodeUnrecognized, line, nil)
	}

	switch tokens[0] {
	case "select":
		return Statement{Type: Select}, nil
	case "insert":
		return prepareInsert(line, tokens[1:])
	default:
		return Statement{}, newPrepareError(CodeUnrecognized, line, nil)
	}
}

func prepareInsert(line string, args []string) (Statement, error) {
	if len(args) != 3 {
		return Statement{}, newPrepareError(CodeSyntax, line, nil)
	}

	id, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return Statement{}, newPrepareError(CodeSyntax, line, err)
	}
	if id < 0 {
		return Statement{}, newPrepareError(CodeNegativeID, line, nil)
	}

	r, err := row.New(int32(id), args[1], args[2])
	if err != nil {
		if errors.Is(err, row.ErrStringTooLong) {
			return Statement{}, newPrepareError(CodeStringTooLong, line, err)
		}
		return Statement{}, newPrepareError(CodeSyntax, line, err)
	}

	return Statement{Type: Insert, Row: r}, nil
}

func tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool { return r == ' ' })
}
