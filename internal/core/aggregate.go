package core

import "sort"

// CategoryHours is the total time logged against one category.
type CategoryHours struct {
	Category string
	Hours    float64
}

// Summary is the category breakdown for a set of records. The zero value
// is the empty-result marker: nil ByCategory and a zero Total, returned
// both for no input and for input whose hours sum to zero.
type Summary struct {
	ByCategory []CategoryHours
	Total      float64
}

// Empty reports whether the summary carries no data.
func (s Summary) Empty() bool {
	return len(s.ByCategory) == 0
}

// WeekPoint is one point of the weekly series: the Sunday ending the week
// and the hours logged within it.
type WeekPoint struct {
	WeekEnd Date
	Hours   float64
}

// FilterFrom returns the records dated on or after start, preserving input
// order. An empty input yields an empty result.
func FilterFrom(records []Record, start Date) []Record {
	var out []Record
	for _, r := range records {
		if !r.Date.Before(start) {
			out = append(out, r)
		}
	}
	return out
}

// SummarizeByCategory groups records by category label and sums hours per
// group. Categories appear in order of first appearance in the input.
// Returns the empty marker when the input is empty or all hours sum to zero.
func SummarizeByCategory(records []Record) Summary {
	totals := make(map[string]float64, len(records))
	var order []string
	var grand float64
	for _, r := range records {
		if _, seen := totals[r.Category]; !seen {
			order = append(order, r.Category)
		}
		totals[r.Category] += r.Hours
		grand += r.Hours
	}
	if grand == 0 {
		return Summary{}
	}
	out := Summary{Total: grand, ByCategory: make([]CategoryHours, 0, len(order))}
	for _, cat := range order {
		out.ByCategory = append(out.ByCategory, CategoryHours{Category: cat, Hours: totals[cat]})
	}
	return out
}

// weekEnd returns the Sunday ending the calendar week that contains d.
// A record dated on a Sunday belongs to that Sunday's bucket.
func weekEnd(d Date) Date {
	return d.AddDays((7 - int(d.Weekday())) % 7)
}

// WeeklySeries buckets records into calendar weeks ending on Sunday and
// sums hours per bucket, producing one chronological point per week that
// contains at least one record. Weeks with no records produce no point.
func WeeklySeries(records []Record) []WeekPoint {
	totals := make(map[Date]float64)
	for _, r := range records {
		totals[weekEnd(r.Date)] += r.Hours
	}
	out := make([]WeekPoint, 0, len(totals))
	for end, hours := range totals {
		out = append(out, WeekPoint{WeekEnd: end, Hours: hours})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekEnd.Before(out[j].WeekEnd) })
	return out
}

// MinDate returns the earliest record date, used as the start of the
// "all time" window. ok is false for an empty input.
func MinDate(records []Record) (min Date, ok bool) {
	for i, r := range records {
		if i == 0 || r.Date.Before(min) {
			min = r.Date
		}
	}
	return min, len(records) > 0
}
