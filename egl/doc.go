// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package egl binds the GBM buffer allocator and the EGL display API
// needed to render into scan-out buffers without a window system.
//
// Both libraries are loaded at run time with purego, so the package builds
// without cgo. A [Library] is obtained from [Load]; every object it hands out
// is an opaque handle that is only meaningful to the same Library.
//
//	lib, err := egl.Load()
//	if err != nil {
//		return err
//	}
//	dev, err := lib.CreateDevice(fd)
package egl
