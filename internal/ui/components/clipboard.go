// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no clipboard utility is found.
var ErrClipboardUnsupported = errors.New("no clipboard utility available")

// SystemClipboard writes to the OS clipboard. It implements
// tokenbox.Clipboard.
type SystemClipboard struct{}

// WriteText replaces the clipboard contents.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}
