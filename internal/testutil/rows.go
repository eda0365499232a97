package testutil

import (
	"fmt"
	"strings"

	"github.com/roach88/rowdb/internal/row"
)

// Row returns the i-th fixture row: id i, username "user<i>", email
// "person<i>@example.com". The same i always yields the same row.
func Row(i int) row.Row {
	return row.Row{
		ID:       int32(i),
		Username: fmt.Sprintf("user%d", i),
		Email:    fmt.Sprintf("person%d@example.com", i),
	}
}

// Rows returns fixture rows 1..n.
func Rows(n int) []row.Row {
	rows := make([]row.Row, n)
	for i := range rows {
		rows[i] = Row(i + 1)
	}
	return rows
}

// InsertCommand renders r as an insert statement line.
func InsertCommand(r row.Row) string {
	return fmt.Sprintf("insert %d %s %s", r.ID, r.Username, r.Email)
}

// InsertScript returns newline-terminated insert lines for fixture rows 1..n,
// followed by extra lines (typically "select" and ".exit").
func InsertScript(n int, extra ...string) string {
	var b strings.Builder
	for _, r := range Rows(n) {
		b.WriteString(InsertCommand(r))
		b.WriteByte('\n')
	}
	for _, line := range extra {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
