// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tokenbox/internal/cli"
	"github.com/jeranaias/tokenbox/internal/config"
	"github.com/jeranaias/tokenbox/internal/history"
	"github.com/jeranaias/tokenbox/internal/suggest"
	"github.com/jeranaias/tokenbox/internal/tokenbox"
	"github.com/jeranaias/tokenbox/internal/ui/components"
	"github.com/jeranaias/tokenbox/internal/ui/styles"
)

// app holds one token box and everything wired to it.
type app struct {
	cfg      *config.Config
	keys     *tokenbox.HeldKeys
	box      *tokenbox.Box
	provider *suggest.Provider
	history  *history.Store
	watcher  *suggest.Watcher
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	catalog, err := openCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, keys: &tokenbox.HeldKeys{}}
	a.box = tokenbox.New(
		tokenbox.WithDelimiter(cfg.Input.Delimiter),
		tokenbox.WithMaxTokens(cfg.Input.MaxTokens),
		tokenbox.WithTabNavigateBack(cfg.Input.TabNavigateBack),
		tokenbox.WithKeyboard(a.keys),
		tokenbox.WithFocus(&tokenbox.MemoryFocus{}),
		tokenbox.WithClipboard(components.SystemClipboard{}),
	)
	a.box.SetItems(initialItems(catalog, cfg.Input.InitialTokens))

	opts := suggest.Options{
		Mode:     suggest.Mode(strings.ToLower(cfg.Catalog.Match)),
		Restrict: cfg.Catalog.Restrict,
		Limit:    cfg.UI.MaxSuggestions,
		OnFilter: func(committed []suggest.SearchToken) {
			log.Printf("FILTER | tokens=%d", len(committed))
		},
	}
	if cfg.History.Enabled {
		a.history, err = history.Open(cfg.History.Path)
		if err != nil {
			log.Printf("HISTORY_OPEN_FAILED | path=%s err=%v", cfg.History.Path, err)
		} else {
			opts.Recorder = a.history
			if opts.Usage, err = a.history.Counts(ctx); err != nil {
				log.Printf("HISTORY_READ_FAILED | err=%v", err)
			}
		}
	}
	a.provider = suggest.Attach(a.box, catalog, opts)

	if cfg.Input.InitialText != "" {
		if err := a.box.SetText(ctx, cfg.Input.InitialText); err != nil {
			a.Close()
			return nil, err
		}
	}

	if cfg.Catalog.Watch && cfg.Catalog.Path != "" {
		if a.watcher, err = suggest.NewWatcher(cfg.Catalog.Path, suggest.DefaultDebounce); err != nil {
			log.Printf("CATALOG_WATCH_FAILED | path=%s err=%v", cfg.Catalog.Path, err)
		} else {
			go func() {
				if err := a.watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("CATALOG_WATCH_STOPPED | err=%v", err)
				}
			}()
		}
	}
	return a, nil
}

// openCatalog loads the catalog at path. A missing file is an empty catalog.
func openCatalog(path string) (*suggest.Catalog, error) {
	if path == "" {
		return suggest.EmptyCatalog(), nil
	}
	catalog, err := suggest.LoadCatalog(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("CATALOG_MISSING | path=%s", path)
		return suggest.EmptyCatalog(), nil
	}
	if err != nil {
		return nil, &cli.ConfigError{Path: path, Err: err}
	}
	log.Printf("CATALOG_LOADED | path=%s tokens=%d", path, catalog.Len())
	return catalog, nil
}

// initialItems maps configured token text onto catalog tokens where they
// match, keeping the rest as free text.
func initialItems(catalog *suggest.Catalog, texts []string) []any {
	items := make([]any, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if tok, ok := catalog.Lookup(text); ok {
			items = append(items, tok)
		} else {
			items = append(items, text)
		}
	}
	return items
}

func (a *app) runTUI(ctx context.Context) error {
	theme := styles.NewTheme(a.cfg.UI.Theme)
	input := components.NewTokenInput(ctx, a.box, a.keys, a.provider, theme, inputConfig(a.cfg))
	if a.watcher != nil {
		input.WatchCatalog(a.watcher.Reloads())
	}

	p := tea.NewProgram(input,
		tea.WithOutput(os.Stderr),
		tea.WithMouseCellMotion(),
	)
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	if input.Aborted() {
		return cli.ErrAborted
	}
	return nil
}

func (a *app) runLine(ctx context.Context) error {
	if a.watcher != nil {
		go func() {
			for r := range a.watcher.Reloads() {
				if r.Err != nil {
					log.Printf("CATALOG_RELOAD_FAILED | err=%v", r.Err)
					continue
				}
				a.provider.SetCatalog(r.Catalog)
			}
		}()
	}

	session := cli.NewLineSession(a.box, a.provider, os.Stderr)
	historyFile := ""
	if dir, err := config.ConfigDir(); err == nil {
		historyFile = filepath.Join(dir, "line_history")
	}
	return cli.RunLineMode(ctx, session, historyFile)
}

// Close releases the history database.
func (a *app) Close() {
	a.provider.Detach()
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			log.Printf("HISTORY_CLOSE_FAILED | err=%v", err)
		}
	}
}
