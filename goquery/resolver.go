// Package goquery implements the extraction engine on top of goquery
// documents: per-field cascading resolution and template-driven record
// assembly.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagesift/pagesift"
)

// TierFunc observes which resolution tier supplied a field's raw
// candidates. Used for instrumentation and tests; never affects results.
type TierFunc func(field string, tier pagesift.Tier, candidates int)

// Resolver resolves one field descriptor against a parsed document using
// the cascading tier order: structural selectors, regex over document
// text, fallback selectors, then the built-in defaults for the field's
// type. The first tier yielding any raw candidate wins; post-processing
// (formatting, validation, deduplication) is uniform across tiers.
//
// The pattern and formatter tables are injected at construction and
// treated as read-only, so a Resolver is safe for concurrent use.
type Resolver struct {
	patterns   pagesift.TypePatterns
	formatters pagesift.FormatterRegistry
	hook       TierFunc
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTierHook installs an observation hook called once per resolved field
// with the tier that produced its candidates (TierNone when nothing did).
func WithTierHook(fn TierFunc) ResolverOption {
	return func(r *Resolver) {
		r.hook = fn
	}
}

// NewResolver creates a Resolver with the given pattern and formatter tables.
func NewResolver(patterns pagesift.TypePatterns, formatters pagesift.FormatterRegistry, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		patterns:   patterns,
		formatters: formatters,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the cascade for one field. It returns the formatted value
// (a list when the field is multi-valued) and whether anything survived
// post-processing.
func (r *Resolver) Resolve(doc *goquery.Document, field pagesift.FieldDescriptor) (any, bool) {
	tier := pagesift.TierNone

	raws := r.collectSelectors(doc, field.Selectors, &field)
	if len(raws) > 0 {
		tier = pagesift.TierStructural
	}
	if len(raws) == 0 && len(field.RegexPatterns) > 0 {
		raws = r.collectDocumentRegex(doc, field.RegexPatterns)
		if len(raws) > 0 {
			tier = pagesift.TierRegex
		}
	}
	if len(raws) == 0 {
		raws = r.collectSelectors(doc, field.FallbackSelectors, &field)
		if len(raws) > 0 {
			tier = pagesift.TierFallback
		}
	}
	if len(raws) == 0 {
		raws = r.collectTypeDefaults(doc, field.Type)
		if len(raws) > 0 {
			tier = pagesift.TierTypeDefault
		}
	}

	if r.hook != nil {
		r.hook(field.Name, tier, len(raws))
	}

	return r.finalize(&field, raws)
}

// collectSelectors gathers raw values from every element matched by the
// ordered selectors. A selector that matches nothing (or fails to parse)
// is skipped; it never aborts the tier.
func (r *Resolver) collectSelectors(doc *goquery.Document, selectors []string, field *pagesift.FieldDescriptor) []string {
	var values []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if v, ok := extractFromElement(sel, field); ok {
				values = append(values, v)
			}
		})
	}
	return values
}

// extractFromElement pulls one raw value from a matched element according
// to the field's extraction strategy.
func extractFromElement(sel *goquery.Selection, field *pagesift.FieldDescriptor) (string, bool) {
	if field.Strategy == pagesift.StrategyAttribute {
		v, ok := sel.Attr(field.AttributeName)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	text := strings.TrimSpace(sel.Text())
	if text == "" {
		return "", false
	}

	// Element-scoped regex narrows the text when patterns are present:
	// group 1 when the pattern captures, the whole match otherwise.
	if len(field.RegexPatterns) > 0 {
		for _, pattern := range field.RegexPatterns {
			re := compilePattern(pattern)
			if re == nil {
				continue
			}
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if len(m) > 1 && m[1] != "" {
				return m[1], true
			}
			return m[0], true
		}
		if field.Strategy == pagesift.StrategyRegex {
			return "", false
		}
	}

	return text, true
}

// collectDocumentRegex gathers all non-overlapping matches of the ordered
// patterns against the document's visible text.
func (r *Resolver) collectDocumentRegex(doc *goquery.Document, patterns []string) []string {
	text := doc.Text()
	var values []string
	for _, pattern := range patterns {
		re := compilePattern(pattern)
		if re == nil {
			continue
		}
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if v := joinMatch(m); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

// collectTypeDefaults applies the built-in defaults for the field's type:
// generic selectors first (with scheme-encoded anchor targets unwrapped
// for phone and email), then generic patterns over the document text.
func (r *Resolver) collectTypeDefaults(doc *goquery.Document, fieldType pagesift.FieldType) []string {
	tp, ok := r.patterns[fieldType]
	if !ok {
		return nil
	}

	var values []string
	for _, selector := range tp.Selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				values = append(values, text)
			}
			if goquery.NodeName(sel) != "a" {
				return
			}
			href, ok := sel.Attr("href")
			if !ok {
				return
			}
			switch {
			case fieldType == pagesift.FieldPhone && strings.HasPrefix(href, "tel:"):
				values = append(values, strings.TrimPrefix(href, "tel:"))
			case fieldType == pagesift.FieldEmail && strings.HasPrefix(href, "mailto:"):
				values = append(values, strings.TrimPrefix(href, "mailto:"))
			}
		})
	}

	text := doc.Text()
	for _, pattern := range tp.Patterns {
		re := compilePattern(pattern)
		if re == nil {
			continue
		}
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if v := joinMatch(m); v != "" {
				values = append(values, v)
			}
		}
	}

	return values
}

// finalize applies the uniform post-processing pipeline: format each raw
// candidate, drop formatter rejections, enforce the validation pattern
// against the formatted string form, and deduplicate preserving order.
func (r *Resolver) finalize(field *pagesift.FieldDescriptor, raws []string) (any, bool) {
	var validator *regexp.Regexp
	if field.ValidationPattern != "" {
		// Full-match semantics. A malformed validation pattern is skipped
		// rather than discarding every candidate.
		validator = compilePattern("^(?:" + field.ValidationPattern + ")$")
	}

	seen := make(map[string]bool, len(raws))
	var out []any
	for _, raw := range raws {
		var value any = strings.TrimSpace(raw)
		if field.FormatFunc != pagesift.FormatNone {
			fn, ok := r.formatters[field.FormatFunc]
			if !ok {
				continue
			}
			formatted, ok := fn(raw)
			if !ok {
				continue
			}
			value = formatted
		}
		str := pagesift.FormatValue(value)
		if str == "" {
			continue
		}
		if validator != nil && !validator.MatchString(str) {
			continue
		}
		if seen[str] {
			continue
		}
		seen[str] = true
		out = append(out, value)
	}

	if len(out) == 0 {
		return nil, false
	}
	if field.MultipleValues || field.Strategy == pagesift.StrategyMultiple {
		return out, true
	}
	return out[0], true
}

// compilePattern compiles a pattern case-insensitively, returning nil when
// it fails to compile. A bad pattern degrades one match attempt, never the
// record.
func compilePattern(pattern string) *regexp.Regexp {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil
	}
	return re
}

// joinMatch flattens one regex match: the whole match when the pattern has
// no capture groups, group 1 for single-group patterns, and the non-empty
// groups joined with spaces otherwise.
func joinMatch(m []string) string {
	switch len(m) {
	case 1:
		return m[0]
	case 2:
		return m[1]
	}
	parts := make([]string, 0, len(m)-1)
	for _, g := range m[1:] {
		if g != "" {
			parts = append(parts, g)
		}
	}
	return strings.Join(parts, " ")
}
