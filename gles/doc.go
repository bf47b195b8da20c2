// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gles loads the subset of OpenGL ES 2.0 used to draw the stereo
// scene. Entry points are resolved from libGLESv2 at run time with purego.
//
// All calls must be made from the OS thread that holds the current EGL
// context.
package gles
