package sheets

import (
	"context"
)

// Ports for outbound mirror adapters.
type (
	// RowWriter appends a single activity row to the mirror destination.
	RowWriter interface {
		AppendRow(ctx context.Context, date, category string, hours float64) (rowRef string, err error)
	}
)
