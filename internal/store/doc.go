// Package store provides optional SQLite-backed persistence for rowdb tables.
//
// The store is a write-through log of inserted rows. Each successful insert
// appends one record keyed by its sequence number (the row's index in the
// table), and startup replays the records in sequence order to rebuild the
// table.
//
// Rows are stored in their fixed-width encoding (package row), so a record is
// exactly row.RowSize bytes. The id is duplicated in its own column for
// inspection with the sqlite3 shell; the blob is authoritative.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//
// Schema changes are tracked with PRAGMA user_version.
package store
