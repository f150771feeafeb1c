// Package scrape provides extraction run orchestration. It coordinates
// source filtering, rate-limited fetching, template extraction, duplicate
// suppression, and record export.
package scrape

import (
	"context"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pagesift/pagesift"
	"golang.org/x/sync/errgroup"
)

// Scraper orchestrates extraction runs over batches of URLs.
type Scraper struct {
	Fetcher     pagesift.Fetcher
	Extractor   pagesift.Extractor
	Tracker     pagesift.Tracker
	Writers     []pagesift.RecordWriter
	RateLimiter pagesift.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of a run.
type Result struct {
	// Extracted counts records kept in the output.
	Extracted int

	// Failed counts URLs that could not be fetched or extracted.
	Failed int

	// SkippedProcessed counts URLs dropped because their domain was
	// already tracked (or duplicated within the batch).
	SkippedProcessed int

	// SkippedDuplicate counts records dropped because an identical field
	// set was already extracted from another URL in the same run.
	SkippedDuplicate int

	Records []*pagesift.Record
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// scrapeResult holds the outcome of processing a single URL.
type scrapeResult struct {
	position int
	url      string
	record   *pagesift.Record
	err      error
}

// Run fetches every new URL, extracts a record with the template, and
// writes the surviving records through all configured writers. URLs whose
// domain the tracker has already seen are skipped before any fetching.
// The progress callback, if provided, receives events as the run proceeds.
func (s *Scraper) Run(ctx context.Context, urls []string, tmpl *pagesift.Template, progress ProgressFunc) (*Result, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}

	pending := urls
	if s.Tracker != nil {
		fresh, err := s.Tracker.FilterNew(ctx, urls)
		if err != nil {
			return nil, err
		}
		res.SkippedProcessed = len(urls) - len(fresh)
		pending = fresh
	}

	total := len(pending)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}
	if total == 0 {
		if progress != nil {
			progress(ProgressEvent{Type: ProgressFinished})
		}
		return res, nil
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	resultCh := make(chan scrapeResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range pending {
			i, u := i, u
			g.Go(func() error {
				result := s.processURL(gctx, i, u, tmpl)
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]scrapeResult, total)
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			URL:       result.url,
		}
		if result.err != nil {
			event.Type = ProgressFailed
			event.Error = result.err
		} else {
			event.Type = ProgressCompleted
		}
		progress(event)
	}

	// Keep results in submission order and suppress records whose field
	// content duplicates an earlier record (mirror sites, relisted pages).
	seen := make(map[uint64]bool, total)
	for _, result := range results {
		succeeded := result.err == nil

		if s.Tracker != nil {
			if err := s.Tracker.MarkProcessed(ctx, result.url, succeeded); err != nil {
				return nil, err
			}
		}

		if !succeeded {
			res.Failed++
			continue
		}

		hash := recordHash(result.record)
		if seen[hash] {
			res.SkippedDuplicate++
			continue
		}
		seen[hash] = true

		res.Records = append(res.Records, result.record)
		res.Extracted++
	}

	for _, w := range s.Writers {
		if err := w.WriteRecords(ctx, res.Records); err != nil {
			return nil, err
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return res, nil
}

// processURL fetches and extracts a single URL.
func (s *Scraper) processURL(ctx context.Context, position int, rawURL string, tmpl *pagesift.Template) scrapeResult {
	result := scrapeResult{
		position: position,
		url:      rawURL,
	}

	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, hostOf(rawURL)); err != nil {
			result.err = err
			return result
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, rawURL, s.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	record, err := s.Extractor.Extract(html, tmpl)
	if err != nil {
		result.err = err
		return result
	}
	record.SourceURL = rawURL

	result.record = record
	return result
}

// hostOf returns the URL's host for rate limiting, or the raw string when
// it cannot be parsed.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return strings.ToLower(rawURL)
	}
	return strings.ToLower(u.Host)
}

// recordHash fingerprints a record's field content, ignoring source URL
// and timestamp so that identical listings on different pages collide.
func recordHash(record *pagesift.Record) uint64 {
	var b strings.Builder
	b.WriteString(record.TemplateName)
	for _, name := range record.FieldNames() {
		b.WriteString("\x00")
		b.WriteString(name)
		b.WriteString("\x01")
		b.WriteString(pagesift.FormatValue(record.Fields[name]))
	}
	return xxhash.Sum64String(b.String())
}
