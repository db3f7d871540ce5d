package memory

import (
	"context"
	"fmt"
	"sync"
)

// Row is one mirrored activity row.
type Row struct {
	Date     string
	Category string
	Hours    float64
}

// Mirror is an in-memory row writer used by worker tests and local dev.
type Mirror struct {
	mu   sync.Mutex
	rows []Row
}

func New() *Mirror {
	return &Mirror{}
}

// AppendRow stores the row and returns a synthetic row reference.
func (m *Mirror) AppendRow(_ context.Context, date, category string, hours float64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, Row{Date: date, Category: category, Hours: hours})
	return fmt.Sprintf("mem:%d", len(m.rows)), nil
}

// Rows returns a copy of everything mirrored so far.
func (m *Mirror) Rows() []Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Row, len(m.rows))
	copy(out, m.rows)
	return out
}
