// Package slog provides logging decorators for pagesift interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/pagesift/pagesift"
)

// Ensure LoggingExtractor implements pagesift.Extractor.
var _ pagesift.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with per-extraction logging of
// completeness scores and rule warnings.
type LoggingExtractor struct {
	next   pagesift.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagesift.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string, tmpl *pagesift.Template) (*pagesift.Record, error) {
	begin := time.Now()
	record, err := e.next.Extract(html, tmpl)
	if err != nil {
		e.logger.Error("extraction failed",
			"template", tmpl.Name,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	e.logger.Info("extraction",
		"template", tmpl.Name,
		"duration", time.Since(begin),
		"data_completeness", record.DataCompleteness,
		"priority_completeness", record.PriorityCompleteness,
		"warnings", len(record.Warnings),
	)
	return record, nil
}
