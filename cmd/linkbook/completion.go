package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string   // --output
	Short  string   // -o (empty if none)
	Type   flagType // completion type
	Desc   string   // help text
	Values []string // for enum flags
	Globs  []string // for file flags, e.g. "*.yaml"
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values []string // enum values
	Globs  []string // file glob patterns
	IsDir  bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"format": {Values: []string{
		"adoc", "asciidoc", "epub", "html", "json",
		"markdown", "md", "pdf", "restructuredtext", "rst",
	}},

	// File flags with glob patterns
	"config":   {Globs: []string{"*.yaml", "*.yml"}},
	"links":    {Globs: []string{"*.json", "*.yaml", "*.yml"}},
	"template": {Globs: []string{"*.html", "*.tmpl"}},

	// Directory flags
	"output": {IsDir: true},
	"assets": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case len(meta.Globs) > 0:
				fd.Type = flagFile
				fd.Globs = meta.Globs
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	fs, _ := newGenerateFlagSet()

	return []commandDef{
		{Name: "generate", Desc: "Generate a link collection artifact", Flags: extractFlagsFromFlagSet(fs)},
		{Name: "formats", Desc: "List available output formats"},
		{Name: "doctor", Desc: "Check the environment for required tools",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "machine-readable output"}}},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// commandNames returns the command words in registry order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		names = append(names, cmd.Name)
	}
	return names
}

// GenerateCompletion writes a shell completion script to w.
// Returns an error if the shell is unsupported or the write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// generateBash writes a bash completion function built from the command
// registry.
func generateBash(w io.Writer) error {
	cmds := getCommands()
	commands := strings.Join(commandNames(cmds), " ")

	fmt.Fprintln(w, "# bash completion for linkbook")
	fmt.Fprintln(w, "_linkbook_completions() {")
	fmt.Fprintln(w, "    local cur prev")
	fmt.Fprintln(w, "    cur=\"${COMP_WORDS[COMP_CWORD]}\"")
	fmt.Fprintln(w, "    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    local commands=\"%s\"\n", commands)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if [[ $COMP_CWORD -eq 1 ]]; then")
	fmt.Fprintln(w, "        COMPREPLY=($(compgen -W \"$commands\" -- \"$cur\"))")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case \"${COMP_WORDS[1]}\" in")
	for _, cmd := range cmds {
		switch {
		case cmd.Name == "completion":
			fmt.Fprintln(w, "    completion)")
			fmt.Fprintln(w, "        COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"))")
			fmt.Fprintln(w, "        ;;")
		case cmd.Name == "help":
			fmt.Fprintln(w, "    help)")
			fmt.Fprintln(w, "        COMPREPLY=($(compgen -W \"$commands\" -- \"$cur\"))")
			fmt.Fprintln(w, "        ;;")
		case len(cmd.Flags) > 0:
			fmt.Fprintf(w, "    %s)\n", cmd.Name)
			writeBashFlagArm(w, cmd.Flags)
			fmt.Fprintln(w, "        ;;")
		}
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "complete -F _linkbook_completions linkbook")
	return nil
}

// writeBashFlagArm writes value completion for flags that take one, then
// the flag word list itself.
func writeBashFlagArm(w io.Writer, flags []flagDef) {
	var valued []flagDef
	for _, fd := range flags {
		if fd.Type == flagEnum || fd.Type == flagFile || fd.Type == flagDir {
			valued = append(valued, fd)
		}
	}

	if len(valued) > 0 {
		fmt.Fprintln(w, "        case \"$prev\" in")
		for _, fd := range valued {
			pattern := "--" + fd.Long
			if fd.Short != "" {
				pattern += "|-" + fd.Short
			}
			fmt.Fprintf(w, "        %s)\n", pattern)
			switch fd.Type {
			case flagEnum:
				fmt.Fprintf(w, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(fd.Values, " "))
			case flagFile:
				fmt.Fprintf(w, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\"))\n", bashExtAlternatives(fd.Globs))
			case flagDir:
				fmt.Fprintln(w, "            COMPREPLY=($(compgen -d -- \"$cur\"))")
			}
			fmt.Fprintln(w, "            return")
			fmt.Fprintln(w, "            ;;")
		}
		fmt.Fprintln(w, "        esac")
	}

	var words []string
	for _, fd := range flags {
		words = append(words, "--"+fd.Long)
		if fd.Short != "" {
			words = append(words, "-"+fd.Short)
		}
	}
	fmt.Fprintf(w, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(words, " "))
}

// bashExtAlternatives turns glob patterns into an extglob alternation:
// ["*.yaml", "*.yml"] becomes "yaml|yml".
func bashExtAlternatives(globs []string) string {
	exts := make([]string, 0, len(globs))
	for _, glob := range globs {
		exts = append(exts, strings.TrimPrefix(glob, "*."))
	}
	return strings.Join(exts, "|")
}

// generateZsh writes a zsh completion function built from the command
// registry.
func generateZsh(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "#compdef linkbook")
	fmt.Fprintln(w, "# zsh completion for linkbook")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_linkbook() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, cmd := range cmds {
		fmt.Fprintf(w, "        '%s:%s'\n", cmd.Name, cmd.Desc)
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe 'command' commands")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case \"$words[2]\" in")
	for _, cmd := range cmds {
		switch {
		case cmd.Name == "completion":
			fmt.Fprintln(w, "    completion)")
			fmt.Fprintln(w, "        _values 'shell' bash zsh fish")
			fmt.Fprintln(w, "        ;;")
		case cmd.Name == "help":
			fmt.Fprintf(w, "    help)\n")
			fmt.Fprintf(w, "        _values 'command' %s\n", strings.Join(commandNames(cmds), " "))
			fmt.Fprintln(w, "        ;;")
		case len(cmd.Flags) > 0:
			fmt.Fprintf(w, "    %s)\n", cmd.Name)
			fmt.Fprintln(w, "        _arguments \\")
			for i, fd := range cmd.Flags {
				terminator := " \\"
				if i == len(cmd.Flags)-1 {
					terminator = ""
				}
				fmt.Fprintf(w, "            %s%s\n", zshArgumentSpec(fd), terminator)
			}
			fmt.Fprintln(w, "        ;;")
		}
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_linkbook \"$@\"")
	return nil
}

// zshArgumentSpec renders one _arguments spec for a flag.
func zshArgumentSpec(fd flagDef) string {
	action := ""
	switch fd.Type {
	case flagBool:
		if fd.Short != "" {
			return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]'", fd.Short, fd.Long, fd.Short, fd.Long, fd.Desc)
		}
		return fmt.Sprintf("'--%s[%s]'", fd.Long, fd.Desc)
	case flagEnum:
		action = "(" + strings.Join(fd.Values, " ") + ")"
	case flagFile:
		action = `_files -g "*.(` + bashExtAlternatives(fd.Globs) + `)"`
	case flagDir:
		action = "_files -/"
	}

	if fd.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'=[%s]:value:%s'", fd.Short, fd.Long, fd.Short, fd.Long, fd.Desc, action)
	}
	return fmt.Sprintf("'--%s=[%s]:value:%s'", fd.Long, fd.Desc, action)
}

// generateFish writes fish completions built from the command registry.
func generateFish(w io.Writer) error {
	cmds := getCommands()

	fmt.Fprintln(w, "# fish completion for linkbook")
	fmt.Fprintln(w, "complete -c linkbook -f")
	for _, cmd := range cmds {
		fmt.Fprintf(w, "complete -c linkbook -n __fish_use_subcommand -a %s -d '%s'\n", cmd.Name, cmd.Desc)
	}
	for _, cmd := range cmds {
		for _, fd := range cmd.Flags {
			fmt.Fprintln(w, fishFlagSpec(cmd.Name, fd))
		}
	}
	fmt.Fprintln(w, "complete -c linkbook -n '__fish_seen_subcommand_from completion' -x -a 'bash zsh fish'")
	fmt.Fprintf(w, "complete -c linkbook -n '__fish_seen_subcommand_from help' -x -a '%s'\n",
		strings.Join(commandNames(cmds), " "))
	return nil
}

// fishFlagSpec renders one complete invocation for a flag.
func fishFlagSpec(command string, fd flagDef) string {
	parts := []string{"complete -c linkbook -n '__fish_seen_subcommand_from " + command + "'"}
	if fd.Short != "" {
		parts = append(parts, "-s "+fd.Short)
	}
	parts = append(parts, "-l "+fd.Long)
	switch fd.Type {
	case flagEnum:
		parts = append(parts, "-x -a '"+strings.Join(fd.Values, " ")+"'")
	case flagDir:
		parts = append(parts, "-x -a \"(__fish_complete_directories)\"")
	case flagBool:
		// no argument
	default:
		parts = append(parts, "-r")
	}
	parts = append(parts, "-d '"+fd.Desc+"'")
	return strings.Join(parts, " ")
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: linkbook completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash    Bash completion script")
	fmt.Fprintln(w, "  zsh     Zsh completion script")
	fmt.Fprintln(w, "  fish    Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(linkbook completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(linkbook completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    linkbook completion fish > ~/.config/fish/completions/linkbook.fish")
}
