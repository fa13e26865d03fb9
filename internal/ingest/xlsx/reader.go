// Package xlsx flattens spreadsheet copies of terminal reports into the
// CSV text the parser consumes. Some operators re-save the vendor CSV
// export as a workbook before uploading it; the row content is the
// same, only the container differs.
package xlsx

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Flatten opens the workbook at filePath and returns its report sheet
// as CSV text.
func Flatten(filePath string) (string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return flattenFile(f)
}

// FlattenReader is Flatten for in-memory workbooks, used by the upload
// endpoint.
func FlattenReader(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return flattenFile(f)
}

// FlattenBytes is FlattenReader over a byte slice.
func FlattenBytes(data []byte) (string, error) {
	return FlattenReader(bytes.NewReader(data))
}

func flattenFile(f *excelize.File) (string, error) {
	_, rows, err := findReportSheet(f)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(joinRow(row))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// findReportSheet picks the sheet holding the report: the first one
// whose rows mention the "Data" column that both layouts share, falling
// back to the first sheet with any content.
func findReportSheet(f *excelize.File) (string, [][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, fmt.Errorf("workbook has no sheets")
	}

	var fallbackName string
	var fallbackRows [][]string

	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if fallbackRows == nil {
			fallbackName = name
			fallbackRows = rows
		}
		for _, row := range rows {
			if strings.Contains(strings.Join(row, " "), "Data") {
				return name, rows, nil
			}
		}
	}

	if fallbackRows == nil {
		return "", nil, fmt.Errorf("workbook has no usable rows")
	}
	return fallbackName, fallbackRows, nil
}

// joinRow renders one sheet row as a CSV line, quoting cells that carry
// commas so the parser's field split keeps them intact.
func joinRow(row []string) string {
	cells := make([]string, len(row))
	for i, cell := range row {
		if strings.ContainsAny(cell, `,"`) {
			cells[i] = `"` + strings.ReplaceAll(cell, `"`, "") + `"`
			continue
		}
		cells[i] = cell
	}
	return strings.Join(cells, ",")
}
