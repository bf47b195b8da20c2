// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !linux

package gles

// Load reports ErrUnsupported outside Linux.
func Load() (*GL, error) {
	return nil, ErrUnsupported
}
