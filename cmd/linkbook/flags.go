package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	title       string
	subtitle    string
	description string
}

// validationFlags holds network validation flags.
type validationFlags struct {
	validate bool
	timeout  string
	delay    string
}

// assetFlags holds template and asset override flags.
type assetFlags struct {
	template string
	assets   string
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common     commonFlags
	links      string
	output     string
	format     string
	repo       string
	document   documentFlags
	validation validationFlags
	assets     assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show resolution details and timing")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.title, "title", "T", "", "document title (default \"My Links\")")
	fs.StringVarP(&f.subtitle, "subtitle", "s", "", "document subtitle")
	fs.StringVarP(&f.description, "description", "d", "", "document description")
}

// addValidationFlags adds network validation flags to a FlagSet.
func addValidationFlags(fs *flag.FlagSet, f *validationFlags) {
	fs.BoolVar(&f.validate, "validate", false, "probe each link over the network before generating")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-link probe timeout (e.g., 10s, 1m)")
	fs.StringVar(&f.delay, "delay", "", "pause between probes (e.g., 500ms)")
}

// addAssetFlags adds template and asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.template, "template", "", "custom HTML template file")
	fs.StringVar(&f.assets, "assets", "", "custom assets directory")
}

// newGenerateFlagSet registers every generate flag on a fresh FlagSet.
// Shared by flag parsing and completion generation so the two never drift.
func newGenerateFlagSet() (*flag.FlagSet, *generateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	f := &generateFlags{}

	// I/O flags
	fs.StringVarP(&f.links, "links", "l", "", "inline links payload or a file path")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default \"artifacts\")")
	fs.StringVarP(&f.format, "format", "f", "", "output format name or alias (default \"html\")")
	fs.StringVar(&f.repo, "repo", "", "repository URL for artifact footers")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addValidationFlags(fs, &f.validation)
	addAssetFlags(fs, &f.assets)

	return fs, f
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string) (*generateFlags, []string, error) {
	fs, f := newGenerateFlagSet()
	fs.Usage = func() { printGenerateUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
