// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kms

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrClosed is returned by operations on a closed Card.
	ErrClosed = errors.New("kms: card closed")

	// ErrTruncatedEvent is returned when the event stream holds a record
	// whose length is shorter than its header or runs past the read.
	ErrTruncatedEvent = errors.New("kms: truncated event")
)

// Error is a failed kernel request. It keeps the errno so callers can report
// the exact code and match it with errors.Is.
type Error struct {
	Op    string
	Errno unix.Errno
}

func (e *Error) Error() string {
	return fmt.Sprintf("kms: %s: %v (errno %d)", e.Op, e.Errno, int(e.Errno))
}

// Unwrap returns the underlying errno.
func (e *Error) Unwrap() error { return e.Errno }

func opError(op string, err error) error {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return &Error{Op: op, Errno: errno}
	}
	return fmt.Errorf("kms: %s: %w", op, err)
}
