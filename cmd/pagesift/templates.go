package main

import (
	"fmt"

	"github.com/pagesift/pagesift"
)

// Run executes the templates command.
func (c *TemplatesCmd) Run(deps *Dependencies) error {
	if c.Name == "" {
		for _, info := range deps.Library.List() {
			fmt.Fprintf(deps.Stdout, "%s  [%s]  %s\n", info.Name, info.Category, info.Description)
			fmt.Fprintf(deps.Stdout, "    e.g. %s\n", info.ExampleUseCase)
		}
		return nil
	}

	tmpl, err := deps.Library.Get(c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagesift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: %s\n", tmpl.Name, tmpl.Description)
	for _, f := range tmpl.Fields {
		marker := " "
		if tmpl.IsPriority(f.Name) {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "  %s %-16s %s\n", marker, f.Name, f.Type)
	}
	return nil
}
