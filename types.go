package linkbook

import "time"

// Defaults applied by New unless overridden with options.
const (
	// DefaultTimeout bounds a single network reachability probe.
	DefaultTimeout = 5 * time.Second

	// DefaultRenderTimeout bounds a single browser PDF render.
	DefaultRenderTimeout = 30 * time.Second

	// DefaultFormat is used when Input.Format is empty.
	DefaultFormat = "html"

	// DefaultRepositoryURL is linked from artifact footers when no
	// repository is configured.
	DefaultRepositoryURL = "https://github.com/alnah/go-linkbook"
)

// projectName appears in artifact footers and structured metadata.
const projectName = "linkbook"

// timestampLayout formats generation timestamps in artifacts.
const timestampLayout = "2006-01-02 15:04:05"

// Link is one validated name/URL pair from the parsed payload.
type Link struct {
	Name string
	URL  string
}

// Outcome is the verdict of a single validation check. The zero value is
// invalid with no reason; construct with Accept or Reject.
type Outcome struct {
	valid  bool
	reason string
}

// Accept returns a passing Outcome.
func Accept() Outcome { return Outcome{valid: true} }

// Reject returns a failing Outcome carrying a human-readable reason.
func Reject(reason string) Outcome { return Outcome{reason: reason} }

// Valid reports whether the check passed.
func (o Outcome) Valid() bool { return o.valid }

// Reason returns why the check failed, empty for passing outcomes.
func (o Outcome) Reason() string { return o.reason }

// PluginDescriptor describes one output format known to the Registry.
type PluginDescriptor struct {
	Name            string   // canonical format name, e.g. "html"
	Aliases         []string // alternate names resolving to the same generator
	Extension       string   // artifact extension including the dot
	DefaultFilename string   // filename used when the output path is a directory
	Description     string   // one-line summary for format listings
	Dependency      string   // external tool required, empty if none
}

// RenderContext carries everything a Generator needs to produce one
// artifact. Identical contexts yield identical artifacts, except that the
// hypertext generator mints a fresh Nonce whenever none is set.
type RenderContext struct {
	Title         string
	Subtitle      string    // optional tagline, empty when absent
	Description   string    // optional longer summary, empty when absent
	Links         []Link    // canonical link list in payload order
	GeneratedAt   time.Time // stamped into footers and metadata
	RepositoryURL string    // project page linked from artifacts
	DocumentID    string    // identifier embedded in structured output
	Nonce         string    // CSP nonce override; empty means mint per render
	TemplatePath  string    // custom page template file, empty for built-in
}

// Input is one generation request passed to Service.Run.
type Input struct {
	Title         string // page title rendered into every artifact
	Subtitle      string // optional tagline
	Description   string // optional longer summary
	Payload       string // raw links payload in any accepted shape
	Format        string // format name or alias, empty means DefaultFormat
	Output        string // output directory or explicit file path
	TemplatePath  string // custom page template, hypertext format only
	CheckLinks    bool   // probe each absolute link before generating
	RepositoryURL string // empty means DefaultRepositoryURL
}

// Result reports what Run produced.
type Result struct {
	Path     string   // path of the written artifact
	Links    []Link   // links included in the artifact
	Warnings []string // skipped or unreachable entries, in encounter order
}

// Option configures a Service.
type Option func(*serviceConfig)

// serviceConfig holds Service settings prior to construction.
type serviceConfig struct {
	timeout       time.Duration // per-probe network timeout
	delay         time.Duration // pause after each network probe
	renderTimeout time.Duration // browser PDF render timeout
	assetsDir     string        // custom template/style directory
}

// WithTimeout sets the network timeout for each reachability probe.
// Panics if d is not positive.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("linkbook: WithTimeout duration must be positive")
	}
	return func(c *serviceConfig) { c.timeout = d }
}

// WithDelay sets the pause inserted after each reachability probe.
// Panics if d is negative.
func WithDelay(d time.Duration) Option {
	if d < 0 {
		panic("linkbook: WithDelay duration must not be negative")
	}
	return func(c *serviceConfig) { c.delay = d }
}

// WithRenderTimeout sets the timeout for a single browser PDF render.
// Panics if d is not positive.
func WithRenderTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("linkbook: WithRenderTimeout duration must be positive")
	}
	return func(c *serviceConfig) { c.renderTimeout = d }
}

// WithAssetsDir points template and style loading at a custom directory.
// Names not present there fall back to the embedded assets.
func WithAssetsDir(dir string) Option {
	return func(c *serviceConfig) { c.assetsDir = dir }
}
