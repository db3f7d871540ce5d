// Package memory is an in-memory log store used by tests and local dev.
// It mirrors the CSV backend's contract without touching disk.
package memory

import (
	"context"
	"fmt"
	"sync"

	"actlog/internal/core"
)

type Store struct {
	mu      sync.Mutex
	records []core.Record
}

func New(seed ...core.Record) *Store {
	s := &Store{}
	s.records = append(s.records, seed...)
	return s
}

func (s *Store) Load(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) Append(_ context.Context, r core.Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return fmt.Sprintf("mem:%d", len(s.records)-1), nil
}

func (s *Store) Delete(_ context.Context, positions []int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int]bool, len(positions))
	for _, p := range positions {
		if p >= 0 && p < len(s.records) {
			drop[p] = true
		}
	}
	if len(drop) == 0 {
		return 0, nil
	}
	kept := s.records[:0:0]
	for i, r := range s.records {
		if !drop[i] {
			kept = append(kept, r)
		}
	}
	s.records = kept
	return len(drop), nil
}
