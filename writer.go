package pagesift

import "context"

// RecordWriter persists extracted records for downstream consumption
// (spreadsheets, JSON files, logs). The engine never writes; writers are
// wired by the orchestration layer.
type RecordWriter interface {
	WriteRecords(ctx context.Context, records []*Record) error
}
