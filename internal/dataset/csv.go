package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"salesdash/internal/core"
)

func readCSV(r io.Reader, filename string) (core.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return core.Table{}, fmt.Errorf("read csv %q: %w", filename, err)
	}
	if len(rows) == 0 {
		return core.Table{}, fmt.Errorf("csv %q is empty", filename)
	}

	return core.Table{
		Name:    filename,
		Columns: normalizeHeader(rows[0]),
		Rows:    rows[1:],
	}, nil
}
