package main

import (
	"fmt"
	"io"
	"strings"

	linkbook "github.com/alnah/go-linkbook"
)

// runFormatsCmd lists the built-in output formats.
func runFormatsCmd(env *Environment) int {
	svc, err := linkbook.New()
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}
	defer func() { _ = svc.Close() }()

	printFormats(env.Stdout, svc.Registry().List())
	return ExitSuccess
}

// printFormats renders the descriptor table in registration order.
func printFormats(w io.Writer, descs []linkbook.PluginDescriptor) {
	fmt.Fprintf(w, "%-10s %-18s %-6s %-13s %-10s %s\n",
		"FORMAT", "ALIASES", "EXT", "DEFAULT FILE", "REQUIRES", "DESCRIPTION")
	for _, d := range descs {
		aliases := strings.Join(d.Aliases, ", ")
		if aliases == "" {
			aliases = "-"
		}
		dep := d.Dependency
		if dep == "" {
			dep = "-"
		}
		fmt.Fprintf(w, "%-10s %-18s %-6s %-13s %-10s %s\n",
			d.Name, aliases, d.Extension, d.DefaultFilename, dep, d.Description)
	}
}
