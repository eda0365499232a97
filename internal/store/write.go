package store

import (
	"context"
	"fmt"

	"github.com/roach88/rowdb/internal/row"
)

// AppendRow writes the row stored at table index seq.
// Uses ON CONFLICT(seq) DO NOTHING so replaying the same append is harmless.
func (s *Store) AppendRow(ctx context.Context, seq int64, r row.Row) error {
	data, err := row.Marshal(r)
	if err != nil {
		return fmt.Errorf("append row %d: %w", seq, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO rows (seq, id, data)
		VALUES (?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`, seq, r.ID, data)
	if err != nil {
		return fmt.Errorf("append row %d: %w", seq, err)
	}

	return nil
}
