// Package fs provides file-based export of extraction records.
package fs

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/pagesift/pagesift"
)

// Ensure writers implement pagesift.RecordWriter at compile time.
var (
	_ pagesift.RecordWriter = (*JSONWriter)(nil)
	_ pagesift.RecordWriter = (*CSVWriter)(nil)
)

// JSONWriter writes records as an indented JSON array.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a JSONWriter targeting the given file path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// WriteRecords writes all records to the target file, replacing any
// previous contents.
func (w *JSONWriter) WriteRecords(ctx context.Context, records []*pagesift.Record) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(w.path, data, 0644)
}

// CSVWriter writes records as a flat CSV table. Columns are the sorted
// union of field names across all records, prefixed by source metadata;
// typed values flatten to their display strings.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSVWriter targeting the given file path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// WriteRecords writes all records to the target file, replacing any
// previous contents.
func (w *CSVWriter) WriteRecords(ctx context.Context, records []*pagesift.Record) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	f, err := os.Create(w.path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	header := append([]string{"url", "template", "data_completeness"}, FieldColumns(records)...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, record := range records {
		if err := cw.Write(recordRow(record, header[3:])); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return f.Close()
}

// FieldColumns returns the sorted union of field names across records.
func FieldColumns(records []*pagesift.Record) []string {
	set := make(map[string]bool)
	for _, record := range records {
		for name := range record.Fields {
			set[name] = true
		}
	}
	columns := make([]string, 0, len(set))
	for name := range set {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	return columns
}

func recordRow(record *pagesift.Record, columns []string) []string {
	row := make([]string, 0, len(columns)+3)
	row = append(row,
		record.SourceURL,
		record.TemplateName,
		pagesift.FormatValue(record.DataCompleteness),
	)
	for _, name := range columns {
		row = append(row, pagesift.FormatValue(record.Fields[name]))
	}
	return row
}
