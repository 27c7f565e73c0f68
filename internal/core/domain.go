package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type (
	// Date is a calendar day. The time-of-day portion of any parsed
	// value is discarded so rows ordered at different hours of the same
	// day fall into the same group.
	Date struct {
		time.Time
	}

	// Table is an uploaded dataset held fully in memory. Rows may be
	// ragged; cell access pads missing trailing cells with "".
	Table struct {
		Name    string
		Columns []string
		Rows    [][]string
	}
)

// ErrNoData means the required columns resolved but zero usable rows
// remained after dropping malformed values.
var ErrNoData = errors.New("no usable rows")

// InsufficientColumnsError means an aggregator's required roles were not
// all resolved. It is scoped to one view; the other views proceed.
type InsufficientColumnsError struct {
	Missing []Role
}

func (e *InsufficientColumnsError) Error() string {
	labels := make([]string, len(e.Missing))
	for i, r := range e.Missing {
		labels[i] = r.Label()
	}
	return "required columns not found: " + strings.Join(labels, ", ")
}

// NewDate creates a Date at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// ColumnIndex returns the position of a column by exact name, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is shorter
// than the header.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Validate checks the structural minimum for aggregation: a header row.
func (t Table) Validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %q has no header row", t.Name)
	}
	return nil
}
