// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jeranaias/tokenbox/internal/config"
	"github.com/jeranaias/tokenbox/internal/storage"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"validation", NewValidationError("flag", "--x", "unknown flag"), ExitUsageError},
		{"config", &ConfigError{Path: "c.toml", Err: errors.New("bad")}, ExitConfigError},
		{"config validation", config.ValidateErrors{{Field: "input.delimiter", Message: "bad"}}, ExitConfigError},
		{"preset missing", fmt.Errorf("load: %w", storage.ErrPresetNotFound), ExitNotFoundError},
		{"aborted", ErrAborted, ExitAborted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer

	DisplayError(&buf, NewValidationError("flag", "--x", "unknown flag"))
	DisplayError(&buf, nil)

	out := buf.String()
	if !strings.Contains(out, "invalid flag: unknown flag (got: --x)") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("nil error should print nothing, got %q", out)
	}
}
