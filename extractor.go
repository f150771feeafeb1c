package pagesift

// Extractor extracts one structured record from an HTML page according to
// a template. Implementations are stateless and safe for concurrent use.
type Extractor interface {
	// Extract resolves every template field against the page and returns
	// the assembled record. It always returns a record for parseable HTML;
	// quality problems surface as record warnings, not errors.
	Extract(html string, tmpl *Template) (*Record, error)
}
