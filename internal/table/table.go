package table

import (
	"errors"
	"fmt"
	"iter"

	"github.com/roach88/rowdb/internal/row"
)

// Page geometry.
const (
	PageSize        = 4096
	RowsPerPage     = PageSize / row.RowSize
	DefaultMaxPages = 100

	// MaxPagesLimit is the largest accepted page bound.
	MaxPagesLimit = 10000
)

// ErrTableFull is returned by Insert once the table holds MaxRows rows.
var ErrTableFull = errors.New("table full")

// Option configures a Table.
type Option func(*Table)

// WithMaxPages bounds the table to n pages. Values outside 1..MaxPagesLimit
// are ignored.
func WithMaxPages(n int) Option {
	return func(t *Table) {
		if n > 0 && n <= MaxPagesLimit {
			t.maxPages = n
		}
	}
}

// Table is an ordered sequence of encoded rows in lazily allocated pages.
type Table struct {
	pages    [][]byte
	maxPages int
	numRows  int
}

// New creates an empty table.
func New(opts ...Option) *Table {
	t := &Table{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len returns the number of stored rows.
func (t *Table) Len() int {
	return t.numRows
}

// MaxRows returns the capacity of the table.
func (t *Table) MaxRows() int {
	return RowsPerPage * t.maxPages
}

// MaxPages returns the page bound the table was created with.
func (t *Table) MaxPages() int {
	return t.maxPages
}

// Full reports whether further inserts will fail with ErrTableFull.
func (t *Table) Full() bool {
	return t.numRows >= t.MaxRows()
}

// Pages returns the number of pages allocated so far.
func (t *Table) Pages() int {
	return len(t.pages)
}

// Insert appends r after validating it.
// Returns row.ErrStringTooLong or ErrTableFull without modifying the table.
func (t *Table) Insert(r row.Row) error {
	if err := row.Validate(r); err != nil {
		return err
	}
	if t.Full() {
		return fmt.Errorf("insert id %d: %d rows: %w", r.ID, t.numRows, ErrTableFull)
	}

	if err := row.Encode(r, t.slot(t.numRows)); err != nil {
		return fmt.Errorf("insert id %d: %w", r.ID, err)
	}
	t.numRows++
	return nil
}

// Scan yields every stored row in insertion order.
// The sequence is restartable and never mutates the table. Rows inserted
// while a scan is in progress are not visited.
func (t *Table) Scan() iter.Seq[row.Row] {
	return func(yield func(row.Row) bool) {
		n := t.numRows
		for i := 0; i < n; i++ {
			r, err := row.Decode(t.pages[i/RowsPerPage][(i%RowsPerPage)*row.RowSize:])
			if err != nil {
				// Slots are always RowSize bytes inside an allocated page.
				panic(fmt.Sprintf("table: corrupt slot %d: %v", i, err))
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Rows collects Scan into a slice. Returns an empty slice, not nil, for an
// empty table.
func (t *Table) Rows() []row.Row {
	rows := make([]row.Row, 0, t.numRows)
	for r := range t.Scan() {
		rows = append(rows, r)
	}
	return rows
}

// slot returns the RowSize bytes for row index i, allocating its page on demand.
func (t *Table) slot(i int) []byte {
	pageNum := i / RowsPerPage
	if pageNum == len(t.pages) {
		t.pages = append(t.pages, make([]byte, PageSize))
	}
	page := t.pages[pageNum]
	offset := (i % RowsPerPage) * row.RowSize
	return page[offset : offset+row.RowSize]
}
