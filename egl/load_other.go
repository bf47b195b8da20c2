// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !linux

package egl

// Load reports ErrUnsupported: GBM only exists on Linux.
func Load() (*Library, error) {
	return nil, ErrUnsupported
}
