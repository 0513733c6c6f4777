// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/tokenbox/internal/suggest"
	"github.com/jeranaias/tokenbox/internal/tokenbox"
)

// LineReader is the part of liner.State line mode uses.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// LineSession feeds lines into a Box.
type LineSession struct {
	box      *tokenbox.Box
	provider *suggest.Provider
	out      io.Writer
	prompt   string
}

// NewLineSession creates a session writing its echo to out.
func NewLineSession(box *tokenbox.Box, provider *suggest.Provider, out io.Writer) *LineSession {
	return &LineSession{box: box, provider: provider, out: out, prompt: "> "}
}

// Completions returns the Tab completions for line: the word after the last
// delimiter is replaced with every catalog value it matches.
func (s *LineSession) Completions(line string) []string {
	if s.provider == nil {
		return nil
	}
	head, word := line, line
	if d := s.box.Delimiter(); d != "" {
		if i := strings.LastIndex(line, d); i >= 0 {
			head, word = line[:i+len(d)], line[i+len(d):]
		} else {
			head = ""
		}
	} else {
		head = ""
	}
	if strings.TrimSpace(word) == "" {
		return nil
	}

	var out []string
	for _, tok := range s.provider.Suggestions(word) {
		if tok.IsNotFound() {
			continue
		}
		out = append(out, head+tok.Value)
	}
	return out
}

// Feed applies one line. Complete segments become tokens through the
// tokenizer and the rest of the line is committed as a query. It reports
// false for a blank line, which ends the session.
func (s *LineSession) Feed(ctx context.Context, line string) (bool, error) {
	if strings.TrimSpace(line) == "" {
		return false, nil
	}
	if err := s.box.InsertText(ctx, line); err != nil {
		return true, err
	}
	if rest := s.box.Text(); strings.TrimSpace(rest) != "" {
		if err := s.box.SubmitQuery(ctx, rest, nil); err != nil {
			return true, err
		}
	}
	s.echo()
	return true, nil
}

func (s *LineSession) echo() {
	if s.out == nil {
		return
	}
	var b strings.Builder
	for i, t := range s.box.TokenStrings() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "[%s]", t)
	}
	count, maxTokens, reached := s.box.TokenCounter()
	if maxTokens > 0 {
		fmt.Fprintf(&b, "  %d/%d", count, maxTokens)
		if reached {
			b.WriteString(" (limit)")
		}
	}
	fmt.Fprintln(s.out, b.String())
}

// Run prompts until a blank line or EOF. Ctrl+C returns ErrAborted.
func (s *LineSession) Run(ctx context.Context, r LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := r.Prompt(s.prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return ErrAborted
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read line: %w", err)
		}

		more, err := s.Feed(ctx, line)
		if err != nil {
			log.Printf("LINE_FAILED | err=%v", err)
			DisplayError(os.Stderr, err)
		}
		if !more {
			return nil
		}
		r.AppendHistory(line)
	}
}

// =============================================================================
// TERMINAL
// =============================================================================

// RunLineMode runs s on the terminal with liner, persisting prompt history
// to historyFile when it is not empty.
func RunLineMode(ctx context.Context, s *LineSession, historyFile string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetCompleter(s.Completions)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				log.Printf("LINE_HISTORY_READ_FAILED | path=%s err=%v", historyFile, err)
			}
			f.Close()
		}
		defer func() {
			f, err := os.OpenFile(historyFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
			if err != nil {
				log.Printf("LINE_HISTORY_WRITE_FAILED | path=%s err=%v", historyFile, err)
				return
			}
			defer f.Close()
			line.WriteHistory(f)
		}()
	}

	return s.Run(ctx, line)
}
