package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/bloom"
)

// Compile-time interface verification.
var _ pagesift.Tracker = (*Tracker)(nil)

// Tracker implements pagesift.Tracker using SQLite, with an in-memory
// Bloom filter in front of the table so that batch filtering of mostly-new
// URL lists avoids one query per URL. The filter only short-circuits
// negatives; positives are always confirmed against the table.
type Tracker struct {
	db     *DB
	filter *bloom.Filter
}

// NewTracker creates a Tracker and seeds its Bloom filter from the
// already-stored domains.
func NewTracker(db *DB) (*Tracker, error) {
	t := &Tracker{
		db:     db,
		filter: bloom.NewFilter(100000, 0.001),
	}
	if err := t.loadFilter(context.Background()); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tracker) loadFilter(ctx context.Context) error {
	rows, err := t.db.QueryContext(ctx, `SELECT domain FROM processed_sources`)
	if err != nil {
		return fmt.Errorf("failed to load processed domains: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return err
		}
		t.filter.Add(domain)
	}
	return rows.Err()
}

// IsProcessed reports whether the URL's normalized domain was seen before.
func (t *Tracker) IsProcessed(ctx context.Context, rawURL string) (bool, error) {
	domain := pagesift.NormalizeDomain(rawURL)
	if !t.filter.Test(domain) {
		return false, nil
	}
	return t.exists(ctx, domain)
}

func (t *Tracker) exists(ctx context.Context, domain string) (bool, error) {
	var one int
	err := t.db.QueryRowContext(ctx, `
		SELECT 1 FROM processed_sources WHERE domain = ?
	`, domain).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkProcessed records the URL's domain as handled. Marking the same
// domain again updates the stored outcome rather than failing.
func (t *Tracker) MarkProcessed(ctx context.Context, rawURL string, succeeded bool) error {
	domain := pagesift.NormalizeDomain(rawURL)
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO processed_sources (id, domain, domain_hash, source_url, succeeded, processed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(domain) DO UPDATE SET
			source_url = excluded.source_url,
			succeeded = excluded.succeeded,
			processed_at = excluded.processed_at
	`, uuid.New().String(), domain, hashDomain(domain), rawURL, boolToInt(succeeded),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}
	t.filter.Add(domain)
	return nil
}

// FilterNew returns the subset of urls whose domains are unseen, also
// deduplicating domains within the batch itself. Order is preserved.
func (t *Tracker) FilterNew(ctx context.Context, urls []string) ([]string, error) {
	seen := make(map[string]bool, len(urls))
	var fresh []string
	for _, u := range urls {
		domain := pagesift.NormalizeDomain(u)
		if seen[domain] {
			continue
		}
		seen[domain] = true

		if t.filter.Test(domain) {
			processed, err := t.exists(ctx, domain)
			if err != nil {
				return nil, err
			}
			if processed {
				continue
			}
		}
		fresh = append(fresh, u)
	}
	return fresh, nil
}

// Stats returns counts of tracked sources.
func (t *Tracker) Stats(ctx context.Context) (pagesift.TrackerStats, error) {
	var stats pagesift.TrackerStats
	err := t.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(succeeded), 0) FROM processed_sources
	`).Scan(&stats.Total, &stats.Succeeded)
	if err != nil {
		return pagesift.TrackerStats{}, err
	}
	return stats, nil
}

// Sources returns every tracked source, most recently processed first.
func (t *Tracker) Sources(ctx context.Context) ([]*pagesift.ProcessedSource, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, domain, source_url, succeeded, processed_at
		FROM processed_sources
		ORDER BY processed_at DESC, domain ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []*pagesift.ProcessedSource
	for rows.Next() {
		var src pagesift.ProcessedSource
		var succeeded int
		var processedAt string
		if err := rows.Scan(&src.ID, &src.Domain, &src.SourceURL, &succeeded, &processedAt); err != nil {
			return nil, err
		}
		src.Succeeded = succeeded != 0
		src.ProcessedAt, err = time.Parse(time.RFC3339, processedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse processed_at: %w", err)
		}
		sources = append(sources, &src)
	}
	return sources, rows.Err()
}

func hashDomain(domain string) string {
	return strconv.FormatUint(xxhash.Sum64String(domain), 16)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
