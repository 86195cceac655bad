package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-linkbook/internal/config"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Chromium chromiumInfo `json:"chromium"`
	Pandoc   pandocInfo   `json:"pandoc"`
	Config   configInfo   `json:"config"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// chromiumInfo holds Chromium detection results for the pdf format.
type chromiumInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// pandocInfo holds pandoc detection results for the epub format.
type pandocInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// configInfo reports which config file generate would pick up by default.
type configInfo struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	Proxy         string `json:"proxy,omitempty"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChromium(result)
	checkPandoc(result)
	checkConfigFile(result)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChromium detects a Chromium installation. A missing browser only
// disables the pdf format, so it is a warning rather than an error.
func checkChromium(result *doctorResult) {
	chromiumPath := result.Env.BrowserBin

	if chromiumPath == "" {
		var found bool
		chromiumPath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chromium not found; the pdf format needs it. Install chromium or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromiumPath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chromium not found at %s; the pdf format needs it", chromiumPath))
		return
	}

	result.Chromium.Found = true
	result.Chromium.Path = chromiumPath

	cmd := exec.Command(chromiumPath, "--version")
	out, err := cmd.Output()
	if err == nil {
		result.Chromium.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chromium version: %v", err))
	}

	// Sandbox status: disabled if ROD_NO_SANDBOX=1
	result.Chromium.Sandbox = result.Env.NoSandbox != "1"
}

// checkPandoc detects a pandoc installation. A missing binary only disables
// the epub format, so it is a warning rather than an error.
func checkPandoc(result *doctorResult) {
	pandocPath, err := exec.LookPath("pandoc")
	if err != nil {
		result.Warnings = append(result.Warnings,
			"pandoc not found; the epub format needs it. See https://pandoc.org/installing.html")
		return
	}

	result.Pandoc.Found = true
	result.Pandoc.Path = pandocPath

	out, err := exec.Command(pandocPath, "--version").Output()
	if err == nil {
		if line, _, found := strings.Cut(string(out), "\n"); found {
			result.Pandoc.Version = strings.TrimSpace(line)
		}
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get pandoc version: %v", err))
	}
}

// checkConfigFile reports the default config file, if one resolves.
func checkConfigFile(result *doctorResult) {
	path, err := config.ResolvePath(config.DefaultConfigName)
	if err != nil {
		return // no default config; defaults apply
	}

	result.Config.Found = true
	result.Config.Path = path

	if _, err := config.LoadConfig(path); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Config file %s does not load: %v", path, err))
	}
}

// checkEnvironment detects container, CI, and proxy environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Link probes honor the standard proxy variables; report the name only,
	// since proxy URLs can embed credentials.
	proxyVars := []string{"HTTPS_PROXY", "https_proxy", "HTTP_PROXY", "http_proxy"}
	for _, v := range proxyVars {
		if os.Getenv(v) != "" {
			result.Env.Proxy = v
			break
		}
	}

	// Warn if container/CI without sandbox disabled
	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for pdf output")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("LINKBOOK_CONTAINER") == "1" {
		return true, "LINKBOOK_CONTAINER=1"
	}
	// Docker
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	// Temp directory must be writable for atomic artifact writes
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "linkbook-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "linkbook doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chromium (pdf format)")
	if r.Chromium.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chromium.Path)
		if r.Chromium.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chromium.Version)
		}
		if r.Chromium.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found (pdf format unavailable)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Pandoc (epub format)")
	if r.Pandoc.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Pandoc.Path)
		if r.Pandoc.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Pandoc.Version)
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found (epub format unavailable)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	if r.Config.Found {
		fmt.Fprintf(w, "  [OK] Using %s\n", r.Config.Path)
	} else {
		fmt.Fprintln(w, "  [OK] No config file (defaults apply)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	if r.Env.Proxy != "" {
		fmt.Fprintf(w, "  [OK] Proxy: %s set\n", r.Env.Proxy)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to generate")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
