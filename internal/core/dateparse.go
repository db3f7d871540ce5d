// Package core provides the activity log domain types and aggregation logic.
//
// This file contains flexible date parsing. Source data may mix formats
// across rows, so parsing tries a prioritized list of layouts in order and
// reports the offending row when none match.
package core

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are attempted in order. ISO first since that is what the
// store writes back; the rest cover formats seen in hand-edited logs.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseError reports a row whose date could not be interpreted by any
// known layout. Row is the zero-based position within the store.
type ParseError struct {
	Row int
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: unparseable date %q", e.Row, e.Raw)
}

// ParseDate parses a date string against the prioritized layout list,
// normalizing the result to midnight UTC. Time-of-day components are
// discarded.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, ErrInvalidDate
}

// ParseDateAt parses like ParseDate but wraps failure in a ParseError
// carrying the row position, for load paths that must fail whole.
func ParseDateAt(row int, s string) (Date, error) {
	d, err := ParseDate(s)
	if err != nil {
		return Date{}, &ParseError{Row: row, Raw: s}
	}
	return d, nil
}
