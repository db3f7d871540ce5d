package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"actlog/internal/core"
	csvstore "actlog/internal/store/csv"
	"actlog/internal/store/memory"
)

var testCategories = []string{"Research", "Applications", "Interviews"}

func dateDaysAgo(days int) core.Date {
	t := time.Now().AddDate(0, 0, -days)
	return core.DateOf(t)
}

func newTestServer(seed ...core.Record) (*Server, *memory.Store) {
	st := memory.New(seed...)
	return NewServer(":0", st, testCategories, nil), st
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexAndHealth(t *testing.T) {
	s, _ := newTestServer()

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Activity Log") {
		t.Error("index page should contain the dashboard title")
	}
	for _, c := range testCategories {
		if !strings.Contains(rec.Body.String(), c) {
			t.Errorf("index page should offer category %q", c)
		}
	}

	if rec := get(t, s, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want 200", rec.Code)
	}
	if rec := get(t, s, "/readyz"); rec.Code != http.StatusOK {
		t.Errorf("GET /readyz status = %d, want 200", rec.Code)
	}
}

func TestIndexNotFoundForOtherPaths(t *testing.T) {
	s, _ := newTestServer()
	if rec := get(t, s, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope status = %d, want 404", rec.Code)
	}
}

func TestSummaryWindowFiltering(t *testing.T) {
	s, _ := newTestServer(
		core.Record{Date: dateDaysAgo(0), Category: "Research", Hours: 2},
		core.Record{Date: dateDaysAgo(3), Category: "Applications", Hours: 1.5},
		core.Record{Date: dateDaysAgo(100), Category: "Interviews", Hours: 4},
	)

	rec := get(t, s, "/ui/summary?window=7d")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /ui/summary status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Research") || !strings.Contains(body, "Applications") {
		t.Error("7d summary should include recent categories")
	}
	if strings.Contains(body, "Interviews") {
		t.Error("7d summary should not include a record from 100 days ago")
	}
	if !strings.Contains(body, "Total: 3.5h") {
		t.Errorf("7d summary should total 3.5h, body:\n%s", body)
	}

	all := get(t, s, "/ui/summary?window=all").Body.String()
	if !strings.Contains(all, "Interviews") {
		t.Error("all-window summary should include every category")
	}
	if !strings.Contains(all, "Total: 7.5h") {
		t.Errorf("all-window summary should total 7.5h, body:\n%s", all)
	}
}

func TestSummaryUnknownWindow(t *testing.T) {
	s, _ := newTestServer()
	if rec := get(t, s, "/ui/summary?window=90d"); rec.Code != http.StatusBadRequest {
		t.Errorf("GET /ui/summary?window=90d status = %d, want 400", rec.Code)
	}
}

func TestSummaryEmptyLog(t *testing.T) {
	s, _ := newTestServer()
	rec := get(t, s, "/ui/summary?window=all")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /ui/summary status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No activity") {
		t.Error("empty log should render the empty placeholder")
	}
}

func TestTrendPartial(t *testing.T) {
	s, _ := newTestServer(
		core.Record{Date: dateDaysAgo(1), Category: "Research", Hours: 2},
		core.Record{Date: dateDaysAgo(0), Category: "Research", Hours: 1},
	)

	rec := get(t, s, "/ui/trend?window=30d")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /ui/trend status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "week of ") {
		t.Error("trend partial should render weekly rows")
	}
}

func TestRecordsPartial(t *testing.T) {
	s, _ := newTestServer(
		core.Record{Date: core.NewDate(2024, 3, 1), Category: "Research", Hours: 2},
	)

	rec := get(t, s, "/ui/records")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /ui/records status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "2024-03-01") {
		t.Error("records partial should show the record date")
	}
	if !strings.Contains(body, `value="0"`) {
		t.Error("records partial should expose the record position")
	}
}

func TestCreateRecord(t *testing.T) {
	s, st := newTestServer()

	form := url.Values{}
	form.Set("date", "2024-03-05")
	form.Set("category", "Research")
	form.Set("hours", "2.5")

	rec := postForm(t, s, "/records", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /records status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "success") {
		t.Error("create response should be a success fragment")
	}

	records, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("store has %d records, want 1", len(records))
	}
	got := records[0]
	if got.Date.String() != "2024-03-05" || got.Category != "Research" || got.Hours != 2.5 {
		t.Errorf("stored record = %+v, want 2024-03-05/Research/2.5", got)
	}
}

func TestCreateRecordValidation(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		category string
		hours    string
	}{
		{"bad date", "not-a-date", "Research", "2"},
		{"empty category", "2024-03-05", "", "2"},
		{"zero hours", "2024-03-05", "Research", "0"},
		{"negative hours", "2024-03-05", "Research", "-1"},
		{"non-numeric hours", "2024-03-05", "Research", "two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, st := newTestServer()

			form := url.Values{}
			form.Set("date", tt.date)
			form.Set("category", tt.category)
			form.Set("hours", tt.hours)

			rec := postForm(t, s, "/records", form)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("POST /records status = %d, want 422", rec.Code)
			}

			records, _ := st.Load(context.Background())
			if len(records) != 0 {
				t.Errorf("invalid record should not be stored, got %d records", len(records))
			}
		})
	}
}

func TestCreateRecordMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer()
	if rec := get(t, s, "/records"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /records status = %d, want 405", rec.Code)
	}
}

func TestDeleteRecords(t *testing.T) {
	s, st := newTestServer(
		core.Record{Date: core.NewDate(2024, 3, 1), Category: "A", Hours: 1},
		core.Record{Date: core.NewDate(2024, 3, 2), Category: "B", Hours: 2},
		core.Record{Date: core.NewDate(2024, 3, 3), Category: "C", Hours: 3},
	)

	form := url.Values{}
	form.Add("position", "0")
	form.Add("position", "2")

	rec := postForm(t, s, "/records/delete", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /records/delete status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Removed 2") {
		t.Errorf("delete response should report 2 removed, body: %s", rec.Body.String())
	}

	records, _ := st.Load(context.Background())
	if len(records) != 1 || records[0].Category != "B" {
		t.Errorf("surviving records = %+v, want only category B", records)
	}
}

func TestDeleteRecordsCommaSeparatedPositions(t *testing.T) {
	s, st := newTestServer(
		core.Record{Date: core.NewDate(2024, 3, 1), Category: "A", Hours: 1},
		core.Record{Date: core.NewDate(2024, 3, 2), Category: "B", Hours: 2},
		core.Record{Date: core.NewDate(2024, 3, 3), Category: "C", Hours: 3},
	)

	form := url.Values{}
	form.Set("positions", "0,2")

	rec := postForm(t, s, "/records/delete", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /records/delete status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Removed 2") {
		t.Errorf("delete response should report 2 removed, body: %s", rec.Body.String())
	}

	records, _ := st.Load(context.Background())
	if len(records) != 1 || records[0].Category != "B" {
		t.Errorf("surviving records = %+v, want only category B", records)
	}
}

func TestDeleteRecordsNoSelection(t *testing.T) {
	s, _ := newTestServer()
	if rec := postForm(t, s, "/records/delete", url.Values{}); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("POST /records/delete without positions status = %d, want 422", rec.Code)
	}
}

func TestMissingBackingFileServedAsEmptyLog(t *testing.T) {
	st := csvstore.New(filepath.Join(t.TempDir(), "activity_log.csv"))
	s := NewServer(":0", st, testCategories, nil)

	rec := get(t, s, "/ui/summary?window=all")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /ui/summary status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No activity") {
		t.Errorf("missing file should render as empty log, body:\n%s", rec.Body.String())
	}
	if rec := get(t, s, "/readyz"); rec.Code != http.StatusOK {
		t.Errorf("GET /readyz status = %d, want 200", rec.Code)
	}
}

func TestRateLimitOnWrites(t *testing.T) {
	s, _ := newTestServer()

	form := url.Values{}
	form.Set("date", "2024-03-01")
	form.Set("category", "Research")
	form.Set("hours", "1")

	var limited *httptest.ResponseRecorder
	for i := 0; i < 61; i++ {
		rec := postForm(t, s, "/records", form)
		if rec.Code == http.StatusTooManyRequests {
			limited = rec
			break
		}
	}
	if limited == nil {
		t.Fatal("61 rapid POSTs from one client should hit the rate limit")
	}
	if got := limited.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}

	// Reads stay unthrottled.
	if rec := get(t, s, "/ui/summary"); rec.Code != http.StatusOK {
		t.Errorf("GET /ui/summary status = %d, want 200", rec.Code)
	}
}

func TestSummaryReflectsWrites(t *testing.T) {
	s, _ := newTestServer(
		core.Record{Date: dateDaysAgo(0), Category: "Research", Hours: 1},
	)

	before := get(t, s, "/ui/summary?window=all").Body.String()
	if !strings.Contains(before, "Total: 1h") {
		t.Fatalf("initial summary should total 1h, body:\n%s", before)
	}

	form := url.Values{}
	form.Set("date", time.Now().Format("2006-01-02"))
	form.Set("category", "Research")
	form.Set("hours", "2")
	if rec := postForm(t, s, "/records", form); rec.Code != http.StatusOK {
		t.Fatalf("POST /records status = %d", rec.Code)
	}

	after := get(t, s, "/ui/summary?window=all").Body.String()
	if !strings.Contains(after, "Total: 3h") {
		t.Errorf("summary after append should total 3h, body:\n%s", after)
	}
}

// Writes that bypass the server, such as editing the backing file by hand,
// must show up on the next view because every view reloads the store.
func TestSummaryReflectsOutOfBandWrites(t *testing.T) {
	s, st := newTestServer(
		core.Record{Date: dateDaysAgo(0), Category: "Research", Hours: 1},
	)

	before := get(t, s, "/ui/summary?window=all").Body.String()
	if !strings.Contains(before, "Total: 1h") {
		t.Fatalf("initial summary should total 1h, body:\n%s", before)
	}

	if _, err := st.Append(context.Background(), core.Record{
		Date: dateDaysAgo(0), Category: "Research", Hours: 2,
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	after := get(t, s, "/ui/summary?window=all").Body.String()
	if !strings.Contains(after, "Total: 3h") {
		t.Errorf("summary should serve fresh totals after a direct store write, body:\n%s", after)
	}
	trend := get(t, s, "/ui/trend?window=all").Body.String()
	if !strings.Contains(trend, "3h") {
		t.Errorf("trend should serve fresh totals after a direct store write, body:\n%s", trend)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s, _ := newTestServer()
	rec := get(t, s, "/")

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestParseWindowHelpers(t *testing.T) {
	tests := []struct {
		window string
		days   int
		valid  bool
	}{
		{"7d", 7, true},
		{"30d", 30, true},
		{"150d", 150, true},
		{"all", 0, true},
		{"90d", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		days, ok := windowDays(tt.window)
		if ok != tt.valid || days != tt.days {
			t.Errorf("windowDays(%q) = (%d, %v), want (%d, %v)", tt.window, days, ok, tt.days, tt.valid)
		}
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	start := windowStart(now, 7)
	if start.String() != "2024-03-04" {
		t.Errorf("windowStart(7) = %s, want 2024-03-04", start)
	}
}
