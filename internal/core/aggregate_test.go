package core

import (
	"math"
	"testing"
)

func rec(y, m, d int, cat string, hours float64) Record {
	return Record{Date: NewDate(y, m, d), Category: cat, Hours: hours}
}

func TestFilterFromInclusiveLowerBound(t *testing.T) {
	records := []Record{
		rec(2024, 1, 1, "A", 2.0),
		rec(2024, 1, 3, "A", 1.0),
		rec(2024, 1, 10, "B", 3.0),
	}

	got := FilterFrom(records, NewDate(2024, 1, 2))
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if !got[0].Date.Equal(NewDate(2024, 1, 3)) || !got[1].Date.Equal(NewDate(2024, 1, 10)) {
		t.Fatalf("unexpected records: %v", got)
	}

	// Boundary date is included.
	got = FilterFrom(records, NewDate(2024, 1, 3))
	if len(got) != 2 {
		t.Fatalf("boundary date should be included, got %d records", len(got))
	}

	if got := FilterFrom(nil, NewDate(2024, 1, 1)); len(got) != 0 {
		t.Fatalf("empty input should yield empty output, got %v", got)
	}
}

func TestSummarizeByCategoryScenario(t *testing.T) {
	records := []Record{
		rec(2024, 1, 1, "A", 2.0),
		rec(2024, 1, 3, "A", 1.0),
		rec(2024, 1, 10, "B", 3.0),
	}

	s := SummarizeByCategory(FilterFrom(records, NewDate(2024, 1, 2)))
	if s.Total != 4.0 {
		t.Fatalf("grand total = %v, want 4.0", s.Total)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %v", s.ByCategory)
	}
	if s.ByCategory[0] != (CategoryHours{Category: "A", Hours: 1.0}) {
		t.Fatalf("unexpected first group: %+v", s.ByCategory[0])
	}
	if s.ByCategory[1] != (CategoryHours{Category: "B", Hours: 3.0}) {
		t.Fatalf("unexpected second group: %+v", s.ByCategory[1])
	}
}

func TestSummarizeFirstAppearanceOrder(t *testing.T) {
	records := []Record{
		rec(2024, 2, 1, "Z", 1),
		rec(2024, 2, 2, "A", 1),
		rec(2024, 2, 3, "Z", 1),
		rec(2024, 2, 4, "M", 1),
	}
	s := SummarizeByCategory(records)
	want := []string{"Z", "A", "M"}
	for i, cat := range want {
		if s.ByCategory[i].Category != cat {
			t.Fatalf("position %d = %q, want %q", i, s.ByCategory[i].Category, cat)
		}
	}
}

func TestSummarizeEmptyMarker(t *testing.T) {
	s := SummarizeByCategory(nil)
	if !s.Empty() || s.Total != 0 {
		t.Fatalf("empty input should yield empty marker, got %+v", s)
	}
	// All-zero hours collapse to the same marker.
	s = SummarizeByCategory([]Record{rec(2024, 1, 1, "A", 0)})
	if !s.Empty() || s.Total != 0 {
		t.Fatalf("zero total should yield empty marker, got %+v", s)
	}
}

func TestSumConservation(t *testing.T) {
	records := []Record{
		rec(2024, 1, 1, "A", 2.5),
		rec(2024, 1, 2, "B", 0.5),
		rec(2024, 2, 9, "A", 4.0),
		rec(2024, 3, 1, "C", 1.25),
	}
	var want float64
	for _, r := range records {
		want += r.Hours
	}
	if s := SummarizeByCategory(records); math.Abs(s.Total-want) > 1e-9 {
		t.Fatalf("grand total %v != sum of hours %v", s.Total, want)
	}
}

func TestWindowMonotonicity(t *testing.T) {
	records := []Record{
		rec(2024, 1, 1, "A", 2),
		rec(2024, 1, 8, "B", 3),
		rec(2024, 1, 15, "A", 1),
	}
	narrow := SummarizeByCategory(FilterFrom(records, NewDate(2024, 1, 10))).Total
	wide := SummarizeByCategory(FilterFrom(records, NewDate(2024, 1, 1))).Total
	if narrow > wide {
		t.Fatalf("narrower window total %v exceeds wider window total %v", narrow, wide)
	}
}

func TestWeeklySeriesBuckets(t *testing.T) {
	// 2024-01-01 is a Monday; its week ends Sunday 2024-01-07.
	records := []Record{
		rec(2024, 1, 1, "A", 2),  // week ending Jan 7
		rec(2024, 1, 7, "B", 1),  // Sunday stays in its own week
		rec(2024, 1, 8, "A", 4),  // week ending Jan 14
		rec(2024, 1, 22, "C", 3), // week ending Jan 28; Jan 15-21 has no point
	}
	series := WeeklySeries(records)
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %v", series)
	}
	wantEnds := []Date{NewDate(2024, 1, 7), NewDate(2024, 1, 14), NewDate(2024, 1, 28)}
	wantHours := []float64{3, 4, 3}
	for i := range series {
		if !series[i].WeekEnd.Equal(wantEnds[i]) {
			t.Fatalf("point %d week end = %v, want %v", i, series[i].WeekEnd, wantEnds[i])
		}
		if series[i].Hours != wantHours[i] {
			t.Fatalf("point %d hours = %v, want %v", i, series[i].Hours, wantHours[i])
		}
	}
}

func TestWeeklyBucketConservation(t *testing.T) {
	records := []Record{
		rec(2024, 1, 1, "A", 2.5),
		rec(2024, 1, 5, "B", 1.5),
		rec(2024, 2, 20, "A", 3.0),
		rec(2024, 3, 3, "C", 0.75),
	}
	var want float64
	for _, r := range records {
		want += r.Hours
	}
	var got float64
	for _, p := range WeeklySeries(records) {
		got += p.Hours
	}
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("weekly series sum %v != record sum %v", got, want)
	}
}

func TestWeeklySeriesEmpty(t *testing.T) {
	if pts := WeeklySeries(nil); len(pts) != 0 {
		t.Fatalf("expected no points, got %v", pts)
	}
}

func TestMinDate(t *testing.T) {
	if _, ok := MinDate(nil); ok {
		t.Fatal("expected ok=false for empty input")
	}
	min, ok := MinDate([]Record{
		rec(2024, 5, 1, "A", 1),
		rec(2024, 1, 9, "B", 1),
		rec(2024, 3, 2, "C", 1),
	})
	if !ok || !min.Equal(NewDate(2024, 1, 9)) {
		t.Fatalf("MinDate = %v ok=%v", min, ok)
	}
}
