// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package egl

// Opaque handles. The zero value of each is the "no object" handle.
type (
	// Device is a GBM allocator device (struct gbm_device *).
	Device uintptr
	// Surface is a GBM buffer chain (struct gbm_surface *).
	Surface uintptr
	// BO is a GBM buffer object locked from a Surface (struct gbm_bo *).
	BO uintptr

	// Display is an EGL display connection (EGLDisplay).
	Display uintptr
	// Config is an EGL framebuffer configuration (EGLConfig).
	Config uintptr
	// WindowSurface is an EGL surface wrapping a GBM Surface (EGLSurface).
	WindowSurface uintptr
	// Context is an EGL rendering context (EGLContext).
	Context uintptr
)

// BufferInfo describes a locked buffer object.
type BufferInfo struct {
	Width  uint32
	Height uint32
	Stride uint32
	Handle uint32
	Format uint32
}

// GBM pixel formats (fourcc codes).
const (
	FormatXRGB8888 uint32 = 'X' | 'R'<<8 | '2'<<16 | '4'<<24
	FormatARGB8888 uint32 = 'A' | 'R'<<8 | '2'<<16 | '4'<<24
)

// GBM buffer usage flags (GBM_BO_USE_*).
const (
	UseScanout   uint32 = 1 << 0
	UseCursor    uint32 = 1 << 1
	UseRendering uint32 = 1 << 2
	UseWrite     uint32 = 1 << 3
	UseLinear    uint32 = 1 << 4
)

// EGL attribute names and values.
const (
	BufferSize           int32 = 0x3020
	AlphaSize            int32 = 0x3021
	BlueSize             int32 = 0x3022
	GreenSize            int32 = 0x3023
	RedSize              int32 = 0x3024
	DepthSize            int32 = 0x3025
	NativeVisualID       int32 = 0x302e
	SurfaceType          int32 = 0x3033
	None                 int32 = 0x3038
	RenderableType       int32 = 0x3040
	ContextClientVersion int32 = 0x3098

	DontCare    int32  = -1
	OpenGLES2   int32  = 0x0004
	WindowBit   int32  = 0x0004
	PlatformGBM uint32 = 0x31d7
)

// EGL booleans.
const (
	eglFalse uint32 = 0
	eglTrue  uint32 = 1
)
