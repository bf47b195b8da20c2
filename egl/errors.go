// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package egl

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned by Load on platforms without GBM.
	ErrUnsupported = errors.New("egl: GBM/EGL is not supported on this platform")

	// ErrNoConfig is returned when no configuration matches a request.
	ErrNoConfig = errors.New("egl: no matching config")
)

// EGL error codes reported by eglGetError.
const (
	Success           int32 = 0x3000
	NotInitialized    int32 = 0x3001
	BadAccess         int32 = 0x3002
	BadAlloc          int32 = 0x3003
	BadAttribute      int32 = 0x3004
	BadConfig         int32 = 0x3005
	BadContext        int32 = 0x3006
	BadCurrentSurface int32 = 0x3007
	BadDisplay        int32 = 0x3008
	BadMatch          int32 = 0x3009
	BadNativePixmap   int32 = 0x300a
	BadNativeWindow   int32 = 0x300b
	BadParameter      int32 = 0x300c
	BadSurface        int32 = 0x300d
	ContextLost       int32 = 0x300e
)

var codeNames = map[int32]string{
	Success:           "EGL_SUCCESS",
	NotInitialized:    "EGL_NOT_INITIALIZED",
	BadAccess:         "EGL_BAD_ACCESS",
	BadAlloc:          "EGL_BAD_ALLOC",
	BadAttribute:      "EGL_BAD_ATTRIBUTE",
	BadConfig:         "EGL_BAD_CONFIG",
	BadContext:        "EGL_BAD_CONTEXT",
	BadCurrentSurface: "EGL_BAD_CURRENT_SURFACE",
	BadDisplay:        "EGL_BAD_DISPLAY",
	BadMatch:          "EGL_BAD_MATCH",
	BadNativePixmap:   "EGL_BAD_NATIVE_PIXMAP",
	BadNativeWindow:   "EGL_BAD_NATIVE_WINDOW",
	BadParameter:      "EGL_BAD_PARAMETER",
	BadSurface:        "EGL_BAD_SURFACE",
	ContextLost:       "EGL_CONTEXT_LOST",
}

// CodeName returns the symbolic name of an EGL error code.
func CodeName(code int32) string {
	if name, ok := codeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%04x", code)
}

// Error is a failed GBM or EGL call. Code is the value of eglGetError at
// the time of the failure; GBM calls report Success since GBM has no error
// query.
type Error struct {
	Op   string
	Code int32
}

func (e *Error) Error() string {
	if e.Code == Success {
		return fmt.Sprintf("egl: %s failed", e.Op)
	}
	return fmt.Sprintf("egl: %s failed: %s", e.Op, CodeName(e.Code))
}
