package pagesift

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// ProcessedSource records one source already handled by a scrape run.
type ProcessedSource struct {
	ID          string    `json:"id"`
	Domain      string    `json:"domain"`
	SourceURL   string    `json:"sourceUrl"`
	Succeeded   bool      `json:"succeeded"`
	ProcessedAt time.Time `json:"processedAt"`
}

// TrackerStats summarizes tracker contents.
type TrackerStats struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
}

// Tracker remembers which sources have been processed so each company or
// domain is scraped at most once. The extraction engine never consults it;
// only the orchestration layer does.
type Tracker interface {
	// IsProcessed reports whether the URL's normalized domain was seen before.
	IsProcessed(ctx context.Context, rawURL string) (bool, error)

	// MarkProcessed records the URL's domain as handled.
	MarkProcessed(ctx context.Context, rawURL string, succeeded bool) error

	// FilterNew returns the subset of urls whose domains are unseen,
	// deduplicating within the batch itself.
	FilterNew(ctx context.Context, urls []string) ([]string, error)

	// Stats returns counts of tracked sources.
	Stats(ctx context.Context) (TrackerStats, error)

	// Sources returns every tracked source, most recently processed first.
	Sources(ctx context.Context) ([]*ProcessedSource, error)
}

// domainPrefixes are subdomain labels stripped during normalization.
var domainPrefixes = []string{"www.", "shop.", "store."}

// domainSuffixes are common TLDs stripped during normalization so that
// example.com and example.co.uk collapse to the same company key.
var domainSuffixes = []string{".co.uk", ".com", ".org"}

// NormalizeDomain canonicalizes a URL or bare host to a company-level
// domain key: lowercased host, common storefront subdomains and TLDs
// removed. Unparseable input falls back to its lowercased form.
func NormalizeDomain(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return strings.ToLower(strings.TrimSpace(rawURL))
	}
	domain := strings.ToLower(u.Hostname())
	for _, prefix := range domainPrefixes {
		domain = strings.TrimPrefix(domain, prefix)
	}
	for _, suffix := range domainSuffixes {
		if strings.HasSuffix(domain, suffix) {
			domain = strings.TrimSuffix(domain, suffix)
			break
		}
	}
	return domain
}
