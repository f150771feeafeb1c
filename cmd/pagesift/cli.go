package main

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/pagesift/pagesift"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Library   *pagesift.Library
	Extractor pagesift.Extractor
	Fetcher   pagesift.Fetcher
	Tracker   pagesift.Tracker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Extract   ExtractCmd   `cmd:"" help:"Extract a record from a local HTML file or stdin"`
	Run       RunCmd       `cmd:"" help:"Fetch and extract records from a batch of URLs"`
	Templates TemplatesCmd `cmd:"" help:"List library templates or show one template's fields"`
	Sources   SourcesCmd   `cmd:"" help:"Show processed sources and tracker statistics"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File     string   `arg:"" optional:"" help:"HTML file to extract from (defaults to stdin)"`
	Template string   `short:"t" help:"Library template name"`
	Fields   []string `short:"f" help:"Ad hoc field names instead of a library template (repeatable)"`
	Category string   `default:"general" help:"Search category for ad hoc templates"`
	URL      string   `help:"Source URL recorded in the output"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URLs        []string `arg:"" optional:"" help:"URLs to scrape"`
	URLsFile    string   `short:"u" help:"File with one URL per line"`
	Template    string   `short:"t" help:"Library template name"`
	Fields      []string `short:"f" help:"Ad hoc field names instead of a library template (repeatable)"`
	Category    string   `default:"general" help:"Search category for ad hoc templates"`
	JSON        string   `help:"Write records to this JSON file"`
	CSV         string   `help:"Write records to this CSV file"`
	XLSX        string   `help:"Write records to this XLSX file"`
	Concurrency int      `short:"c" default:"5" help:"Concurrent fetch limit"`
	RPS         float64  `default:"1" help:"Requests per second per domain"`
	UserAgent   string   `default:"Mozilla/5.0 (compatible; pagesift/1.0)" help:"User-Agent header"`
}

// TemplatesCmd is the "templates" subcommand.
type TemplatesCmd struct {
	Name string `arg:"" optional:"" help:"Show this template's fields"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// resolveTemplate returns the template selected by name or assembled from
// ad hoc field names. Exactly one of the two must be given.
func resolveTemplate(library *pagesift.Library, name, category string, fields []string) (*pagesift.Template, error) {
	switch {
	case name != "" && len(fields) > 0:
		return nil, pagesift.Errorf(pagesift.EINVALID, "--template and --fields are mutually exclusive")
	case name != "":
		return library.Get(name)
	case len(fields) > 0:
		adHoc := make([]pagesift.AdHocField, 0, len(fields))
		for _, f := range fields {
			// A trailing "!" marks the field as priority: "price!".
			priority := strings.HasSuffix(f, "!")
			adHoc = append(adHoc, pagesift.AdHocField{
				Name:     strings.TrimSuffix(f, "!"),
				Priority: priority,
			})
		}
		return pagesift.BuildAdHocTemplate("ad_hoc_"+category, category, adHoc)
	}
	return nil, pagesift.Errorf(pagesift.EINVALID, "either --template or --fields is required")
}
