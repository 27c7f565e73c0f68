// Package dataset turns an uploaded byte stream into a core.Table.
// Format selection is by filename extension: .csv is parsed as CSV and
// anything else is treated as an Excel workbook guess, reading the first
// sheet only.
package dataset

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"salesdash/internal/core"
)

// ReadTable parses an uploaded file into a table. A parse failure here is
// the one top-level failure of the dashboard; everything downstream is
// scoped to a single role, view, or row.
func ReadTable(r io.Reader, filename string) (core.Table, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return readCSV(r, filename)
	}
	return readExcel(r, filename)
}

// normalizeHeader trims header cells and backfills blank ones so every
// column stays addressable.
func normalizeHeader(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}
	return headers
}
