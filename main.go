// tokenbox - a token input box for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jeranaias/tokenbox/internal/cli"
	"github.com/jeranaias/tokenbox/internal/config"
	"github.com/jeranaias/tokenbox/internal/storage"
	"github.com/jeranaias/tokenbox/internal/ui/components"
	"github.com/jeranaias/tokenbox/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := cli.ParseArgs(args)
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		fmt.Fprint(os.Stderr, cli.Usage)
		return cli.GetExitCode(err)
	}
	switch {
	case opts.Help:
		cli.DisplayHelp(os.Stdout, cli.IsStdoutTTY())
		return cli.ExitSuccess
	case opts.Version:
		fmt.Fprintf(os.Stdout, "tokenbox %s (%s, %s)\n", Version, GitCommit, BuildDate)
		return cli.ExitSuccess
	}

	closeLog := setupLogging()
	defer closeLog()
	log.Printf("STARTUP | version=%s %s", Version, opts)

	if err := execute(opts); err != nil {
		if !errors.Is(err, cli.ErrAborted) {
			cli.DisplayError(os.Stderr, err)
		}
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// setupLogging sends the standard logger to a file when TOKENBOX_DEBUG is
// set and discards it otherwise. The terminal belongs to the UI.
func setupLogging() func() {
	path := os.Getenv("TOKENBOX_DEBUG")
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	if path == "1" || path == "true" {
		path = "tokenbox-debug.log"
	}
	f, err := tea.LogToFile(path, "tokenbox")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open debug log: %v\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	return func() { f.Close() }
}

func execute(opts cli.Options) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	presets, err := storage.NewPresetStore(cfg.Presets.Dir)
	if err != nil {
		return err
	}
	if opts.ListPresets {
		return listPresets(os.Stdout, presets)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if opts.Preset != "" {
		p, err := presets.Load(opts.Preset)
		if err != nil {
			return fmt.Errorf("preset %q: %w", opts.Preset, err)
		}
		a.box.SetItems(p.Payloads())
		log.Printf("PRESET_LOADED | name=%s tokens=%d", p.Name, len(p.Tokens))
	}

	if opts.Line || !interactive() {
		err = a.runLine(ctx)
	} else {
		err = a.runTUI(ctx)
	}
	if err != nil {
		return err
	}

	printResult(os.Stdout, a.box.TokenStrings(), cfg.Input.Delimiter)

	if opts.SavePreset != "" {
		p := storage.NewPreset(opts.SavePreset, cfg.Input.Delimiter, a.provider.Committed())
		if err := presets.Save(p); err != nil {
			return err
		}
		log.Printf("PRESET_SAVED | name=%s tokens=%d", p.Name, len(p.Tokens))
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromPath(config.ExpandPath(path))
	} else {
		path = "~/.tokenbox/config.toml"
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, &cli.ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// interactive reports whether both ends of the UI are a terminal. Stdout
// may be redirected since the UI draws on stderr.
func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

func printResult(w io.Writer, tokens []string, delimiter string) {
	if len(tokens) == 0 {
		return
	}
	sep := delimiter
	if sep == "" {
		sep = "\n"
	}
	fmt.Fprintln(w, strings.Join(tokens, sep))
}

var presetName = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)

func listPresets(w io.Writer, store *storage.PresetStore) error {
	metas, err := store.List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Fprintln(w, "No presets saved.")
		return nil
	}
	width := 0
	for _, m := range metas {
		width = max(width, len(m.Name))
	}
	for _, m := range metas {
		name := presetName.Render(m.Name + strings.Repeat(" ", width-len(m.Name)))
		fmt.Fprintf(w, "%s  %3d  %s  %s\n", name, m.TokenCount, m.UpdatedAt.Format("2006-01-02 15:04"), m.Preview)
	}
	return nil
}

// inputConfig maps the ui section onto the input component.
func inputConfig(cfg *config.Config) components.InputConfig {
	return components.InputConfig{
		Placeholder:    cfg.Input.Placeholder,
		ChipWidth:      cfg.UI.ChipWidth,
		MaxSuggestions: cfg.UI.MaxSuggestions,
	}
}
