// Package table implements the bounded, append-only row store behind rowdb.
//
// Rows are encoded with package row and packed into fixed-size pages of
// PageSize bytes. A page holds RowsPerPage rows; the remainder of each page is
// unused. Pages are allocated lazily when the row count crosses a page boundary
// and are kept for the life of the table.
//
// The table has two observable states. It is not full while Len() < MaxRows();
// once full it stays full, because nothing removes rows. Insert on a full table
// returns ErrTableFull and leaves the table unchanged.
//
// A Table is not safe for concurrent use.
package table
