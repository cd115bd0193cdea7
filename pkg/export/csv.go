package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteCSV writes the table as delimited text with a leading pathway
// column. A zero delimiter means comma; pass '\t' for TSV.
func WriteCSV(w io.Writer, table *Table, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}

	header := make([]string, 0, len(table.Columns)+1)
	header = append(header, "pathway")
	for _, col := range table.Columns {
		header = append(header, col.Header())
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range table.Rows {
		record := make([]string, 0, len(row.Cells)+1)
		record = append(record, row.Pathway)
		record = append(record, row.Cells...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %q: %w", row.Pathway, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile creates path and writes the table into it.
func WriteCSVFile(path string, table *Table, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, table, delimiter); err != nil {
		return err
	}
	return f.Close()
}
