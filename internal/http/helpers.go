package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"actlog/internal/core"
)

// Supported dashboard windows, in display order.
var windows = []string{"7d", "30d", "150d", "all"}

// windowDays maps a window name to its day count. 0 means the whole log.
func windowDays(window string) (int, bool) {
	switch window {
	case "7d":
		return 7, true
	case "30d":
		return 30, true
	case "150d":
		return 150, true
	case "all":
		return 0, true
	default:
		return 0, false
	}
}

// parseWindow extracts the window query parameter, defaulting to "30d".
func parseWindow(r *http.Request) (string, int, error) {
	window := strings.TrimSpace(r.URL.Query().Get("window"))
	if window == "" {
		window = "30d"
	}
	days, ok := windowDays(window)
	if !ok {
		return "", 0, fmt.Errorf("unknown window %q", window)
	}
	return window, days, nil
}

// windowStart returns the first day of an N-day window ending today.
func windowStart(now time.Time, days int) core.Date {
	today := core.DateOf(now)
	return today.AddDays(-(days - 1))
}

// parsePositions parses form values into indexes. Values may repeat and each
// value may hold several comma-separated indexes.
func parsePositions(values []string) ([]int, error) {
	positions := make([]int, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			p, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid position %q", part)
			}
			positions = append(positions, p)
		}
	}
	return positions, nil
}

// formatHours renders an hours value without trailing zeros (e.g. "2.5", "3").
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// clientIP extracts the client address, considering proxies.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
