package http

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"actlog/internal/core"
	applog "actlog/internal/log"
	"actlog/internal/store"
)

// loadRecords reads the full log. A missing backing file is an empty log as
// far as the dashboard is concerned.
func (s *Server) loadRecords(ctx context.Context) ([]core.Record, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

// windowRecords loads the log and filters it to the requested window.
func (s *Server) windowRecords(ctx context.Context, days int) ([]core.Record, error) {
	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		return records, nil
	}
	return core.FilterFrom(records, windowStart(time.Now(), days)), nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Today      string
		Categories []string
		Windows    []string
	}{
		Today:      time.Now().Format("2006-01-02"),
		Categories: s.categories,
		Windows:    windows,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Index template execution failed",
			"error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSummary renders the per-category summary partial for a window.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	logger := applog.FromContext(r.Context())

	window, days, err := parseWindow(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Unknown window</div>`))
		return
	}

	records, err := s.windowRecords(r.Context(), days)
	if err != nil {
		logger.ErrorContext(r.Context(), "Summary load error", "error", err, "window", window)
		_, _ = w.Write([]byte(`<section id="summary" class="summary"><div class="placeholder">Error loading summary</div></section>`))
		return
	}
	summary := core.SummarizeByCategory(records)

	// Scale progress bars against the largest category.
	var maxHours float64
	for _, c := range summary.ByCategory {
		if c.Hours > maxHours {
			maxHours = c.Hours
		}
	}

	type row struct {
		Name, Hours string
		Width       int
	}
	data := struct {
		Window string
		Total  string
		Empty  bool
		Rows   []row
	}{Window: window, Total: formatHours(summary.Total), Empty: summary.Empty()}

	for _, c := range summary.ByCategory {
		width := 0
		if maxHours > 0 && c.Hours > 0 {
			width = int(c.Hours/maxHours*100 + 0.5)
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Rows = append(data.Rows, row{Name: c.Category, Hours: formatHours(c.Hours), Width: width})
	}

	if err := s.templates.ExecuteTemplate(w, "summary.html", data); err != nil {
		logger.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "summary.html")
		_, _ = w.Write([]byte(`<section id="summary" class="summary"><div class="placeholder">Error rendering summary</div></section>`))
	}
}

// handleTrend renders the weekly hours partial for a window.
func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	logger := applog.FromContext(r.Context())

	window, days, err := parseWindow(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Unknown window</div>`))
		return
	}

	records, err := s.windowRecords(r.Context(), days)
	if err != nil {
		logger.ErrorContext(r.Context(), "Trend load error", "error", err, "window", window)
		_, _ = w.Write([]byte(`<section id="trend" class="trend"><div class="placeholder">Error loading trend</div></section>`))
		return
	}
	series := core.WeeklySeries(records)

	var maxHours float64
	for _, p := range series {
		if p.Hours > maxHours {
			maxHours = p.Hours
		}
	}

	type row struct {
		WeekEnd, Hours string
		Width          int
	}
	data := struct {
		Window string
		Empty  bool
		Rows   []row
	}{Window: window, Empty: len(series) == 0}

	for _, p := range series {
		width := 0
		if maxHours > 0 && p.Hours > 0 {
			width = int(p.Hours/maxHours*100 + 0.5)
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Rows = append(data.Rows, row{WeekEnd: p.WeekEnd.String(), Hours: formatHours(p.Hours), Width: width})
	}

	if err := s.templates.ExecuteTemplate(w, "trend.html", data); err != nil {
		logger.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "trend.html")
		_, _ = w.Write([]byte(`<section id="trend" class="trend"><div class="placeholder">Error rendering trend</div></section>`))
	}
}

// handleRecords renders the raw log partial with positional delete controls.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	logger := applog.FromContext(r.Context())

	records, err := s.loadRecords(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Records load error", "error", err)
		_, _ = w.Write([]byte(`<section id="records" class="records"><div class="placeholder">Error loading records</div></section>`))
		return
	}

	type row struct {
		Position       int
		Date, Category string
		Hours          string
	}
	data := struct {
		Count int
		Rows  []row
	}{Count: len(records)}

	for i, rec := range records {
		data.Rows = append(data.Rows, row{
			Position: i,
			Date:     rec.Date.String(),
			Category: rec.Category,
			Hours:    formatHours(rec.Hours),
		})
	}

	if err := s.templates.ExecuteTemplate(w, "records.html", data); err != nil {
		logger.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "records.html")
		_, _ = w.Write([]byte(`<section id="records" class="records"><div class="placeholder">Error rendering records</div></section>`))
	}
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	logger := applog.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		logger.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	dateStr := strings.TrimSpace(r.Form.Get("date"))
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid date</div>`))
		return
	}

	category := sanitizeInput(r.Form.Get("category"))
	hoursStr := strings.TrimSpace(r.Form.Get("hours"))
	hours, err := strconv.ParseFloat(hoursStr, 64)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid hours</div>`))
		return
	}

	rec := core.Record{Date: date, Category: category, Hours: hours}
	if err := rec.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid record: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	ref, err := s.store.Append(r.Context(), rec)
	if err != nil {
		logger.ErrorContext(r.Context(), "Record append error", "error", err,
			"category", rec.Category, "hours", rec.Hours)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error saving record</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"record:created": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Logged ` +
		template.HTMLEscapeString(formatHours(rec.Hours)) + `h of ` +
		template.HTMLEscapeString(rec.Category) + ` on ` +
		template.HTMLEscapeString(rec.Date.String()) + ` (#` +
		template.HTMLEscapeString(ref) + `)</div>`))
}

func (s *Server) handleDeleteRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	logger := applog.FromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		logger.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	positions, err := parsePositions(append(r.Form["positions"], r.Form["position"]...))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid positions</div>`))
		return
	}
	if len(positions) == 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">No positions selected</div>`))
		return
	}

	removed, err := s.store.Delete(r.Context(), positions)
	if err != nil {
		logger.ErrorContext(r.Context(), "Record delete error", "error", err, "positions", positions)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Error deleting records</div>`))
		return
	}

	w.Header().Set("HX-Trigger", `{"records:changed": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Removed ` + strconv.Itoa(removed) + ` record(s)</div>`))
}
