package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pagesift/pagesift"
	pagexcel "github.com/pagesift/pagesift/excelize"
	"github.com/pagesift/pagesift/fs"
	"github.com/pagesift/pagesift/scrape"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	tmpl, err := resolveTemplate(deps.Library, c.Template, c.Category, c.Fields)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	urls := c.URLs
	if c.URLsFile != "" {
		fromFile, err := readURLs(c.URLsFile)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return pagesift.Errorf(pagesift.EINVALID, "no URLs given")
	}

	var writers []pagesift.RecordWriter
	if c.JSON != "" {
		writers = append(writers, fs.NewJSONWriter(c.JSON))
	}
	if c.CSV != "" {
		writers = append(writers, fs.NewCSVWriter(c.CSV))
	}
	if c.XLSX != "" {
		writers = append(writers, pagexcel.NewWriter(c.XLSX))
	}
	if len(writers) == 0 {
		return pagesift.Errorf(pagesift.EINVALID, "at least one of --json, --csv, or --xlsx is required")
	}

	scraper := &scrape.Scraper{
		Fetcher:     deps.Fetcher,
		Extractor:   deps.Extractor,
		Tracker:     deps.Tracker,
		Writers:     writers,
		RateLimiter: scrape.NewDomainLimiter(c.RPS),
		Concurrency: c.Concurrency,
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d new sources...\n", event.Total)
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.URL)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %v\n", event.Completed, event.Total, event.URL, event.Error)
		}
	}

	res, err := scraper.Run(deps.Ctx, urls, tmpl, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d extracted, %d failed, %d already processed, %d duplicates\n",
		res.Extracted, res.Failed, res.SkippedProcessed, res.SkippedDuplicate)
	return nil
}

// readURLs reads one URL per line, skipping blanks and # comments.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
