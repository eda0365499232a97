package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/roach88/rowdb/internal/row"
)

// MemoryStore is an in-memory stand-in for the SQLite store.
//
// Like the real store, appends are keyed by seq and a repeated seq is ignored,
// and ReadRows returns rows in seq order.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[int64]row.Row
	err  error
}

// NewMemoryStore creates a store holding rows at seq 0..len(rows)-1.
func NewMemoryStore(rows ...row.Row) *MemoryStore {
	m := &MemoryStore{rows: make(map[int64]row.Row, len(rows))}
	for i, r := range rows {
		m.rows[int64(i)] = r
	}
	return m
}

// Fail makes every later call return err. Fail(nil) clears it.
func (m *MemoryStore) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// AppendRow records r at seq unless seq is already taken.
func (m *MemoryStore) AppendRow(_ context.Context, seq int64, r row.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if err := row.Validate(r); err != nil {
		return err
	}
	if _, ok := m.rows[seq]; !ok {
		m.rows[seq] = r
	}
	return nil
}

// ReadRows returns all rows ordered by seq.
func (m *MemoryStore) ReadRows(context.Context) ([]row.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]row.Row, 0, len(m.rows))
	for _, seq := range m.seqsLocked() {
		out = append(out, m.rows[seq])
	}
	return out, nil
}

// Seqs returns the stored sequence numbers in ascending order.
func (m *MemoryStore) Seqs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seqsLocked()
}

func (m *MemoryStore) seqsLocked() []int64 {
	seqs := make([]int64, 0, len(m.rows))
	for seq := range m.rows {
		seqs = append(seqs, seq)
	}
	slices.Sort(seqs)
	return seqs
}
