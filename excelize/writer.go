// Package excelize provides XLSX export of extraction records.
package excelize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/fs"
	"github.com/xuri/excelize/v2"
)

// Ensure Writer implements pagesift.RecordWriter at compile time.
var _ pagesift.RecordWriter = (*Writer)(nil)

const sheet = "Records"

// Writer writes records as an XLSX workbook with one row per record.
// Columns mirror the CSV layout: source metadata followed by the sorted
// union of field names.
type Writer struct {
	path string
}

// NewWriter creates a Writer targeting the given file path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteRecords writes all records to the target file, replacing any
// previous contents.
func (w *Writer) WriteRecords(ctx context.Context, records []*pagesift.Record) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	columns := fs.FieldColumns(records)
	header := append([]string{"URL", "Template", "Data Completeness", "Priority Completeness"}, columns...)
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, record := range records {
		row := i + 2
		values := []any{
			record.SourceURL,
			record.TemplateName,
			record.DataCompleteness,
			record.PriorityCompleteness,
		}
		for _, name := range columns {
			values = append(values, cellValue(record.Fields[name]))
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// cellValue flattens a resolved field value to something excelize can set:
// plain numbers stay numeric so spreadsheet formulas work, everything else
// uses the display string.
func cellValue(v any) any {
	switch v.(type) {
	case nil:
		return ""
	case float64, bool:
		return v
	}
	return pagesift.FormatValue(v)
}
