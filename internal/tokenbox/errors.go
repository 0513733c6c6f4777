// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"errors"
	"fmt"
	"log"
)

// Rejections (max-token bound reached) and subscriber vetoes are not errors;
// operations report them through their return values. The errors below are
// programming defects or abandoned operations.
var (
	// ErrTrailingEdit is returned when a caller tries to remove the
	// permanent trailing text slot.
	ErrTrailingEdit = errors.New("tokenbox: trailing text edit cannot be removed")

	// ErrEntryNotFound is returned when an entry is not in the collection.
	ErrEntryNotFound = errors.New("tokenbox: entry not found")

	// ErrIndexOutOfRange is returned for an insert or remove index outside
	// the collection.
	ErrIndexOutOfRange = errors.New("tokenbox: index out of range")

	// ErrNilEntry is returned when a nil entry is inserted.
	ErrNilEntry = errors.New("tokenbox: nil entry")
)

// InvariantError describes a guarded invariant violation.
type InvariantError struct {
	Op  string
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %v", e.Op, e.Err)
}

func (e *InvariantError) Unwrap() error { return e.Err }

// violation reports a broken invariant. Debug builds panic; release builds
// log and let the caller fall back to a no-op.
func violation(op string, err error) error {
	ierr := &InvariantError{Op: op, Err: err}
	if debugInvariants {
		panic(ierr)
	}
	log.Printf("INVARIANT_VIOLATION | op=%s reason=%v", op, err)
	return ierr
}
