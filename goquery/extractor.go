package goquery

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagesift/pagesift"
)

// Ensure type implements interface.
var _ pagesift.Extractor = (*Extractor)(nil)

// Extractor assembles records by resolving every template field against a
// parsed document. It is stateless apart from its injected resolver and
// clock, so a single instance serves concurrent extractions.
type Extractor struct {
	resolver *Resolver

	// now is swappable for deterministic timestamps in tests.
	now func() time.Time
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) ExtractorOption {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor backed by the given resolver.
func NewExtractor(resolver *Resolver, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		resolver: resolver,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract resolves every field of tmpl against the page and returns the
// assembled record with completeness scores and rule warnings. It returns
// an error only for an invalid template or unparseable input; missing
// fields and rule violations degrade the record, never fail it.
func (e *Extractor) Extract(html string, tmpl *pagesift.Template) (*pagesift.Record, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "cannot parse HTML: %v", err)
	}

	record := &pagesift.Record{
		TemplateName: tmpl.Name,
		ExtractedAt:  e.now().UTC(),
		Fields:       make(map[string]any, len(tmpl.Fields)),
	}

	populated := 0
	for i := range tmpl.Fields {
		field := tmpl.Fields[i]
		value, ok := e.resolver.Resolve(doc, field)
		switch {
		case ok:
			record.Fields[field.Name] = value
			populated++
		case field.Required:
			// Required fields stay visible as explicit nils.
			record.Fields[field.Name] = nil
		}
	}

	if len(tmpl.Fields) > 0 {
		record.DataCompleteness = float64(populated) / float64(len(tmpl.Fields))
	}

	priorityPopulated := 0
	for _, name := range tmpl.PriorityFields {
		if v, ok := record.Fields[name]; ok && v != nil {
			priorityPopulated++
		}
	}
	if len(tmpl.PriorityFields) > 0 {
		record.PriorityCompleteness = float64(priorityPopulated) / float64(len(tmpl.PriorityFields))
	} else {
		record.PriorityCompleteness = 1.0
	}

	record.Warnings = evaluateRules(tmpl, record, priorityPopulated)
	return record, nil
}

// evaluateRules checks the template's validation rules against the
// assembled record and returns one warning per violation. Warning order is
// deterministic so that repeated extractions of the same page compare equal.
func evaluateRules(tmpl *pagesift.Template, record *pagesift.Record, priorityPopulated int) []string {
	rules := tmpl.Rules
	var warnings []string

	if rules.MinPriorityFields > 0 && priorityPopulated < rules.MinPriorityFields {
		warnings = append(warnings, fmt.Sprintf("only %d of %d priority fields populated, need at least %d",
			priorityPopulated, len(tmpl.PriorityFields), rules.MinPriorityFields))
	}

	values := record.ValueStrings()
	for _, filter := range rules.Keywords {
		found := false
		for _, kw := range filter.Keywords {
			if pagesift.ContainsKeyword(values, kw) {
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings, fmt.Sprintf("%s filter matched nothing: wanted one of %s",
				filter.Name, strings.Join(filter.Keywords, ", ")))
		}
	}

	for _, kw := range rules.Exclude {
		if pagesift.ContainsKeyword(values, kw) {
			warnings = append(warnings, fmt.Sprintf("excluded keyword %q present", kw))
		}
	}

	rangeFields := make([]string, 0, len(rules.Ranges))
	for name := range rules.Ranges {
		rangeFields = append(rangeFields, name)
	}
	sort.Strings(rangeFields)
	for _, name := range rangeFields {
		v, ok := record.Fields[name]
		if !ok || v == nil {
			continue
		}
		n, ok := pagesift.NumericValue(v)
		if !ok {
			continue
		}
		bounds := rules.Ranges[name]
		if bounds.Min != nil && n < *bounds.Min {
			warnings = append(warnings, fmt.Sprintf("%s value %v below minimum %v", name, n, *bounds.Min))
		}
		if bounds.Max != nil && n > *bounds.Max {
			warnings = append(warnings, fmt.Sprintf("%s value %v above maximum %v", name, n, *bounds.Max))
		}
	}

	return warnings
}
