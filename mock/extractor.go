package mock

import "github.com/pagesift/pagesift"

var _ pagesift.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagesift.Extractor.
type Extractor struct {
	ExtractFn func(html string, tmpl *pagesift.Template) (*pagesift.Record, error)
}

func (e *Extractor) Extract(html string, tmpl *pagesift.Template) (*pagesift.Record, error) {
	return e.ExtractFn(html, tmpl)
}
