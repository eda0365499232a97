package store

import (
	"context"
	"fmt"

	"github.com/roach88/rowdb/internal/row"
)

// ReadRows returns every stored row ordered by seq.
// Returns an empty slice (not nil) when nothing is stored.
func (s *Store) ReadRows(ctx context.Context) ([]row.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, data
		FROM rows
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	result := []row.Row{}
	for rows.Next() {
		var (
			seq  int64
			data []byte
		)
		if err := rows.Scan(&seq, &data); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r, err := row.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode row %d: %w", seq, err)
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return result, nil
}

// CountRows returns the number of stored rows.
func (s *Store) CountRows(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rows`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}
