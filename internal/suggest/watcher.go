// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 250 * time.Millisecond

// Reload is the outcome of reloading the catalog file.
type Reload struct {
	Catalog *Catalog
	Err     error
}

// Watcher reloads a catalog file when it changes. It watches the parent
// directory so editors that replace the file by rename are seen too.
type Watcher struct {
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
	out      chan Reload
}

// NewWatcher starts watching the directory holding path.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		fs:       fw,
		out:      make(chan Reload, 1),
	}, nil
}

// Reloads delivers reload results. It is closed when Run returns.
func (w *Watcher) Reloads() <-chan Reload { return w.out }

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.out)
	defer w.fs.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			cat, err := LoadCatalog(w.path)
			if err != nil {
				log.Printf("CATALOG_RELOAD_FAILED | path=%s error=%v", w.path, err)
			}
			select {
			case w.out <- Reload{Catalog: cat, Err: err}:
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Printf("CATALOG_WATCH_ERROR | path=%s error=%v", w.path, err)
		}
	}
}
