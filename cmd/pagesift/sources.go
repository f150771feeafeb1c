package main

import (
	"fmt"

	"github.com/pagesift/pagesift"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	stats, err := deps.Tracker.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	sources, err := deps.Tracker.Sources(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources processed yet. Use 'pagesift run' to scrape some.")
		return nil
	}

	for _, src := range sources {
		outcome := "ok"
		if !src.Succeeded {
			outcome = "failed"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-6s  %s  %s\n",
			src.ProcessedAt.Format("2006-01-02 15:04"), outcome, src.Domain, src.SourceURL)
	}
	fmt.Fprintf(deps.Stdout, "\n%d sources processed, %d succeeded\n", stats.Total, stats.Succeeded)
	return nil
}
