package mock

import (
	"context"

	"github.com/pagesift/pagesift"
)

var _ pagesift.Tracker = (*Tracker)(nil)

// Tracker is a mock implementation of pagesift.Tracker.
type Tracker struct {
	IsProcessedFn   func(ctx context.Context, rawURL string) (bool, error)
	MarkProcessedFn func(ctx context.Context, rawURL string, succeeded bool) error
	FilterNewFn     func(ctx context.Context, urls []string) ([]string, error)
	StatsFn         func(ctx context.Context) (pagesift.TrackerStats, error)
	SourcesFn       func(ctx context.Context) ([]*pagesift.ProcessedSource, error)
}

func (t *Tracker) IsProcessed(ctx context.Context, rawURL string) (bool, error) {
	return t.IsProcessedFn(ctx, rawURL)
}

func (t *Tracker) MarkProcessed(ctx context.Context, rawURL string, succeeded bool) error {
	return t.MarkProcessedFn(ctx, rawURL, succeeded)
}

func (t *Tracker) FilterNew(ctx context.Context, urls []string) ([]string, error) {
	return t.FilterNewFn(ctx, urls)
}

func (t *Tracker) Stats(ctx context.Context) (pagesift.TrackerStats, error) {
	return t.StatsFn(ctx)
}

func (t *Tracker) Sources(ctx context.Context) ([]*pagesift.ProcessedSource, error) {
	return t.SourcesFn(ctx)
}
