// Package csv persists the activity log as a flat CSV file with a
// Date,Category,Hours header, the canonical backing store format.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"actlog/internal/core"
	"actlog/internal/store"
)

var header = []string{"Date", "Category", "Hours"}

// Store owns one CSV file. Every mutation is a read-modify-write that
// rewrites the whole file; a crash mid-write can truncate it, which is
// accepted at this scale.
type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the whole file. Dates are parsed with the
// flexible layout list and normalized; rows keep on-disk order.
func (s *Store) Load(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// Append loads the current sequence, appends r and rewrites the file.
// The returned reference is the new row's zero-based position.
func (s *Store) Append(_ context.Context, r core.Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return "", err
	}
	records = append(records, r)
	if err := s.writeAll(records); err != nil {
		return "", fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	return strconv.Itoa(len(records) - 1), nil
}

// Delete removes the given zero-based positions and rewrites the file
// with the remainder in original relative order.
func (s *Store) Delete(_ context.Context, positions []int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return 0, err
	}

	drop := make(map[int]bool, len(positions))
	for _, p := range positions {
		if p >= 0 && p < len(records) {
			drop[p] = true
		}
	}
	if len(drop) == 0 {
		return 0, nil
	}

	kept := make([]core.Record, 0, len(records)-len(drop))
	for i, r := range records {
		if !drop[i] {
			kept = append(kept, r)
		}
	}
	if err := s.writeAll(kept); err != nil {
		return 0, fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	return len(drop), nil
}

func (s *Store) readAll() ([]core.Record, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", s.path, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Skip the header row if present; a bare data file is tolerated.
	start := 0
	if isHeader(rows[0]) {
		start = 1
	}

	records := make([]core.Record, 0, len(rows)-start)
	for i, row := range rows[start:] {
		if len(row) < 3 {
			return nil, fmt.Errorf("%s: row %d has %d columns, want 3", s.path, i, len(row))
		}
		date, err := core.ParseDateAt(i, row[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}
		hours, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: invalid hours %q", s.path, i, row[2])
		}
		records = append(records, core.Record{
			Date:     date,
			Category: strings.TrimSpace(row[1]),
			Hours:    hours,
		})
	}
	return records, nil
}

func (s *Store) writeAll(records []core.Record) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.Date.String(), r.Category, formatHours(r.Hours)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "date")
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
