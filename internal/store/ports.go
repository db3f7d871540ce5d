// Package store defines the ports for activity log persistence.
//
// The backing store is the single source of truth; the slice returned by
// Load is a disposable snapshot. Append and Delete rewrite the store in
// full, so single-writer usage is assumed.
package store

import (
	"context"
	"errors"

	"actlog/internal/core"
)

// ErrNotFound means the backing store does not exist yet.
var ErrNotFound = errors.New("activity log not found")

type (
	// Loader reads the entire record sequence in on-disk order. A missing
	// store yields ErrNotFound; a row with an unparseable date yields a
	// *core.ParseError and no partial results.
	Loader interface {
		Load(ctx context.Context) ([]core.Record, error)
	}

	// Appender appends one record to the end of the persisted sequence
	// and returns a backend-specific row reference.
	Appender interface {
		Append(ctx context.Context, r core.Record) (ref string, err error)
	}

	// Deleter removes the given zero-based positions from the currently
	// persisted sequence, preserving the relative order of survivors, and
	// returns how many records were removed. Out-of-range positions are
	// ignored.
	Deleter interface {
		Delete(ctx context.Context, positions []int) (removed int, err error)
	}

	// Store is the full log store contract.
	Store interface {
		Loader
		Appender
		Deleter
	}
)
