package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pagesift/pagesift"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	tmpl, err := resolveTemplate(deps.Library, c.Template, c.Category, c.Fields)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	var html []byte
	if c.File != "" {
		html, err = os.ReadFile(c.File)
	} else {
		html, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	record, err := deps.Extractor.Extract(string(html), tmpl)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}
	record.SourceURL = c.URL

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
