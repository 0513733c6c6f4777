// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tokenbox/internal/config"
	"github.com/jeranaias/tokenbox/internal/storage"
	"github.com/jeranaias/tokenbox/internal/ui/styles"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file or catalog error
	ExitConfigError = 3
	// ExitNotFoundError indicates a preset was not found
	ExitNotFoundError = 7
	// ExitAborted indicates the user aborted the input
	ExitAborted = 130
)

// ErrAborted is returned when the user aborts with Ctrl+C.
var ErrAborted = errors.New("aborted")

// =============================================================================
// ERROR TYPES
// =============================================================================

// ValidationError represents invalid user input.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	return msg
}

// NewValidationError creates a new validation error.
func NewValidationError(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// ConfigError wraps a failure to load configuration or the catalog.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e *ConfigError) Unwrap() error { return e.Err }

// =============================================================================
// DISPLAY
// =============================================================================

var errorLabel = lipgloss.NewStyle().Foreground(styles.Rose).Bold(true)

// DisplayError writes err to w in the standard format.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", errorLabel.Render("[ERROR]"), err.Error())
}

// GetExitCode determines the exit code for err.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}
	var configErr *ConfigError
	var configValidation config.ValidateErrors
	if errors.As(err, &configErr) || errors.As(err, &configValidation) {
		return ExitConfigError
	}
	switch {
	case errors.Is(err, storage.ErrPresetNotFound):
		return ExitNotFoundError
	case errors.Is(err, storage.ErrInvalidName):
		return ExitUsageError
	case errors.Is(err, ErrAborted):
		return ExitAborted
	}
	return ExitGeneralError
}
