package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: linkbook <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate     Generate a link collection artifact")
	fmt.Fprintln(w, "  formats      List available output formats")
	fmt.Fprintln(w, "  doctor       Check the environment for required tools")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'linkbook help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: linkbook generate [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shareable artifact from a collection of named links.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Links:")
	fmt.Fprintln(w, "  -l, --links <payload>     Inline links or a file path. Accepted shapes:")
	fmt.Fprintln(w, "                            {\"name\": \"url\", ...}")
	fmt.Fprintln(w, "                            [{\"name\": ..., \"url\": ...}, ...]")
	fmt.Fprintln(w, "                            [[name, url], ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -T, --title <s>           Document title (default \"My Links\")")
	fmt.Fprintln(w, "  -s, --subtitle <s>        Document subtitle")
	fmt.Fprintln(w, "  -d, --description <s>     Document description")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (default \"artifacts\")")
	fmt.Fprintln(w, "  -f, --format <name>       Output format (default \"html\")")
	fmt.Fprintln(w, "                            Run 'linkbook formats' for the full list")
	fmt.Fprintln(w, "      --template <path>     Custom HTML template file")
	fmt.Fprintln(w, "      --assets <dir>        Custom assets directory")
	fmt.Fprintln(w, "      --repo <url>          Repository URL for artifact footers")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validation:")
	fmt.Fprintln(w, "      --validate            Probe each link over the network before generating")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-link probe timeout (default 10s)")
	fmt.Fprintln(w, "      --delay <dur>         Pause between probes (default 500ms)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show resolution details and timing")
}

// printFormatsUsage prints usage for the formats command.
func printFormatsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: linkbook formats")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the built-in output formats with their aliases, extensions,")
	fmt.Fprintln(w, "default filenames, and external tool requirements.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: linkbook doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the environment: Chromium (pdf), pandoc (epub), config file")
	fmt.Fprintln(w, "discovery, container/CI detection, proxy settings.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --json    Machine-readable output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "formats":
		printFormatsUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: linkbook version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: linkbook help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
