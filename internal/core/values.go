package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when coercing an order-date cell.
// Spreadsheet exports are inconsistent, so both ISO and US spellings are
// accepted, with and without a time-of-day suffix.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006 15:04",
	"1/2/06",
	time.RFC3339,
}

// ParseSalesAmount coerces a sales cell to a number. Currency adornments
// that survive a spreadsheet export ("$", thousands commas, surrounding
// space) are stripped before parsing. The second return is false for
// missing or non-numeric values.
func ParseSalesAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}

// isFinite rejects the NaN/Inf spellings ParseFloat accepts. Spreadsheet
// exports write "NaN" for missing cells, which must count as missing
// rather than poison a sum.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseOrderDate coerces a date cell to a calendar day. The second
// return is false when no accepted layout matches.
func ParseOrderDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}
	return Date{}, false
}

// ParseRating coerces a satisfaction-rating cell to a numeric score.
// Ratings are ordered for display and for the mode tie-break, so values
// that cannot be read as numbers count as missing.
func ParseRating(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}
