package mock

import (
	"context"

	"github.com/pagesift/pagesift"
)

var _ pagesift.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of pagesift.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []*pagesift.Record) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []*pagesift.Record) error {
	return w.WriteRecordsFn(ctx, records)
}
