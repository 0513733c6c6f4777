// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits raw arguments into flags and positional arguments.
// It accepts --flag value, --flag=value, -f value and bare boolean flags.
// A flag listed in boolNames never consumes the next argument.
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
}

// NewArgParser parses raw.
func NewArgParser(raw []string, boolNames ...string) *ArgParser {
	isBool := make(map[string]bool, len(boolNames))
	for _, n := range boolNames {
		isBool[n] = true
	}
	p := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		if arg == "--" {
			p.positional = append(p.positional, raw[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			p.positional = append(p.positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if k, v, ok := strings.Cut(name, "="); ok {
			if isBool[k] {
				p.boolFlags[k] = v == "true"
			} else {
				p.flags[k] = v
			}
			continue
		}
		if !isBool[name] && i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
			p.flags[name] = raw[i+1]
			i++
			continue
		}
		p.boolFlags[name] = true
	}
	return p
}

// Flag returns the value of a string flag, or "".
func (p *ArgParser) Flag(name string) string { return p.flags[name] }

// BoolFlag reports whether a boolean flag was set.
func (p *ArgParser) BoolFlag(name string) bool { return p.boolFlags[name] }

// Names returns every flag name seen.
func (p *ArgParser) Names() []string {
	names := make([]string, 0, len(p.flags)+len(p.boolFlags))
	for n := range p.flags {
		names = append(names, n)
	}
	for n := range p.boolFlags {
		names = append(names, n)
	}
	return names
}

// Positional returns the positional arguments.
func (p *ArgParser) Positional() []string { return p.positional }

// =============================================================================
// PROGRAM OPTIONS
// =============================================================================

// Options are the parsed command-line options.
type Options struct {
	Line        bool
	ConfigPath  string
	Preset      string
	SavePreset  string
	ListPresets bool
	Version     bool
	Help        bool
}

var (
	boolOptions   = []string{"line", "list-presets", "version", "help", "h"}
	stringOptions = []string{"config", "preset", "save-preset"}
)

// Usage is the help text.
const Usage = `usage: tokenbox [--line] [--config PATH] [--preset NAME] [--save-preset NAME]
                [--list-presets] [--version]

  --line              read lines instead of running the TUI
  --config PATH       config file (default ~/.tokenbox/config.toml)
  --preset NAME       start from a saved preset
  --save-preset NAME  save the result as a preset
  --list-presets      list saved presets and exit
  --version           print the version and exit
`

// ParseArgs parses the program arguments (without the program name).
func ParseArgs(raw []string) (Options, error) {
	p := NewArgParser(raw, boolOptions...)

	known := make(map[string]bool)
	for _, n := range append(boolOptions, stringOptions...) {
		known[n] = true
	}
	for _, n := range p.Names() {
		if !known[n] {
			return Options{}, NewValidationError("flag", "--"+n, "unknown flag")
		}
	}
	for _, n := range stringOptions {
		if p.BoolFlag(n) {
			return Options{}, NewValidationError("flag", "--"+n, "requires a value")
		}
	}
	if pos := p.Positional(); len(pos) > 0 {
		return Options{}, NewValidationError("argument", pos[0], "unexpected argument")
	}

	opts := Options{
		Line:        p.BoolFlag("line"),
		ConfigPath:  p.Flag("config"),
		Preset:      p.Flag("preset"),
		SavePreset:  p.Flag("save-preset"),
		ListPresets: p.BoolFlag("list-presets"),
		Version:     p.BoolFlag("version"),
		Help:        p.BoolFlag("help") || p.BoolFlag("h"),
	}
	return opts, nil
}

// String renders opts for logging.
func (o Options) String() string {
	return fmt.Sprintf("line=%t config=%q preset=%q save_preset=%q", o.Line, o.ConfigPath, o.Preset, o.SavePreset)
}
