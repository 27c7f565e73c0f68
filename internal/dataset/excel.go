package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"salesdash/internal/core"
)

func readExcel(r io.Reader, filename string) (core.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return core.Table{}, fmt.Errorf("open workbook %q: %w", filename, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return core.Table{}, fmt.Errorf("workbook %q has no sheets", filename)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return core.Table{}, fmt.Errorf("read sheet %q of %q: %w", sheet, filename, err)
	}
	if len(rows) == 0 {
		return core.Table{}, fmt.Errorf("sheet %q of %q is empty", sheet, filename)
	}

	return core.Table{
		Name:    filename,
		Columns: normalizeHeader(rows[0]),
		Rows:    rows[1:],
	}, nil
}
