// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package egl

import "runtime"

// Library holds the resolved GBM and EGL entry points.
//
// A Library is not safe for concurrent use. EGL binds the current context
// to the calling OS thread, so callers keep all rendering on one locked
// goroutine.
type Library struct {
	gbmCreateDevice           func(fd int32) uintptr
	gbmDeviceDestroy          func(dev uintptr)
	gbmSurfaceCreate          func(dev uintptr, width, height, format, flags uint32) uintptr
	gbmSurfaceDestroy         func(surf uintptr)
	gbmSurfaceLockFrontBuffer func(surf uintptr) uintptr
	gbmSurfaceReleaseBuffer   func(surf, bo uintptr)
	gbmBOGetWidth             func(bo uintptr) uint32
	gbmBOGetHeight            func(bo uintptr) uint32
	gbmBOGetStride            func(bo uintptr) uint32
	gbmBOGetFormat            func(bo uintptr) uint32
	gbmBOGetHandle            func(bo uintptr) uint64

	eglGetError              func() int32
	eglGetDisplay            func(native uintptr) uintptr
	eglGetPlatformDisplayEXT func(platform uint32, native uintptr, attribs *int32) uintptr
	eglInitialize            func(dpy uintptr, major, minor *int32) uint32
	eglTerminate             func(dpy uintptr) uint32
	eglChooseConfig          func(dpy uintptr, attribs *int32, configs *uintptr, size int32, num *int32) uint32
	eglGetConfigAttrib       func(dpy, cfg uintptr, attr int32, value *int32) uint32
	eglCreateWindowSurface   func(dpy, cfg, win uintptr, attribs *int32) uintptr
	eglDestroySurface        func(dpy, surf uintptr) uint32
	eglCreateContext         func(dpy, cfg, share uintptr, attribs *int32) uintptr
	eglDestroyContext        func(dpy, ctx uintptr) uint32
	eglMakeCurrent           func(dpy, draw, read, ctx uintptr) uint32
	eglSwapBuffers           func(dpy, surf uintptr) uint32

	closers []func() error
}

// Close unloads the libraries. Handles obtained from l are invalid
// afterwards.
func (l *Library) Close() error {
	var first error
	for i := len(l.closers) - 1; i >= 0; i-- {
		if err := l.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}

func (l *Library) fail(op string) error {
	return &Error{Op: op, Code: l.eglGetError()}
}

// attribPtr returns a pointer to an EGL_NONE terminated attribute list.
func attribPtr(attribs []int32) *int32 {
	if len(attribs) == 0 || attribs[len(attribs)-1] != None {
		attribs = append(attribs[:len(attribs):len(attribs)], None)
	}
	return &attribs[0]
}

// CreateDevice opens a GBM allocator on a DRM file descriptor.
func (l *Library) CreateDevice(fd int) (Device, error) {
	dev := l.gbmCreateDevice(int32(fd))
	if dev == 0 {
		return 0, &Error{Op: "gbm_create_device", Code: Success}
	}
	return Device(dev), nil
}

// DestroyDevice closes a GBM allocator.
func (l *Library) DestroyDevice(dev Device) {
	if dev != 0 {
		l.gbmDeviceDestroy(uintptr(dev))
	}
}

// CreateSurface allocates a GBM buffer chain.
func (l *Library) CreateSurface(dev Device, width, height, format, flags uint32) (Surface, error) {
	surf := l.gbmSurfaceCreate(uintptr(dev), width, height, format, flags)
	if surf == 0 {
		return 0, &Error{Op: "gbm_surface_create", Code: Success}
	}
	return Surface(surf), nil
}

// DestroySurface frees a GBM buffer chain.
func (l *Library) DestroySurface(surf Surface) {
	if surf != 0 {
		l.gbmSurfaceDestroy(uintptr(surf))
	}
}

// LockFrontBuffer locks the buffer most recently swapped in by
// SwapBuffers. It must be released with ReleaseBuffer.
func (l *Library) LockFrontBuffer(surf Surface) (BO, error) {
	bo := l.gbmSurfaceLockFrontBuffer(uintptr(surf))
	if bo == 0 {
		return 0, &Error{Op: "gbm_surface_lock_front_buffer", Code: Success}
	}
	return BO(bo), nil
}

// ReleaseBuffer returns a locked buffer to its surface.
func (l *Library) ReleaseBuffer(surf Surface, bo BO) {
	if bo != 0 {
		l.gbmSurfaceReleaseBuffer(uintptr(surf), uintptr(bo))
	}
}

// BufferInfo reports the geometry and kernel handle of a buffer object.
func (l *Library) BufferInfo(bo BO) BufferInfo {
	p := uintptr(bo)
	return BufferInfo{
		Width:  l.gbmBOGetWidth(p),
		Height: l.gbmBOGetHeight(p),
		Stride: l.gbmBOGetStride(p),
		// union gbm_bo_handle; the GEM handle is its low 32 bits.
		Handle: uint32(l.gbmBOGetHandle(p)),
		Format: l.gbmBOGetFormat(p),
	}
}

// GetDisplay returns the EGL display for a GBM device, preferring
// eglGetPlatformDisplayEXT when the driver exposes it.
func (l *Library) GetDisplay(dev Device) (Display, error) {
	var dpy uintptr
	if l.eglGetPlatformDisplayEXT != nil {
		dpy = l.eglGetPlatformDisplayEXT(PlatformGBM, uintptr(dev), nil)
	}
	if dpy == 0 {
		dpy = l.eglGetDisplay(uintptr(dev))
	}
	if dpy == 0 {
		return 0, l.fail("eglGetDisplay")
	}
	return Display(dpy), nil
}

// Initialize initializes a display and returns the EGL version.
func (l *Library) Initialize(dpy Display) (major, minor int32, err error) {
	if l.eglInitialize(uintptr(dpy), &major, &minor) == eglFalse {
		return 0, 0, l.fail("eglInitialize")
	}
	return major, minor, nil
}

// Terminate releases a display's resources.
func (l *Library) Terminate(dpy Display) error {
	if dpy == 0 {
		return nil
	}
	if l.eglTerminate(uintptr(dpy)) == eglFalse {
		return l.fail("eglTerminate")
	}
	return nil
}

// ChooseConfigs returns up to limit configurations matching attribs.
func (l *Library) ChooseConfigs(dpy Display, attribs []int32, limit int) ([]Config, error) {
	if limit <= 0 {
		return nil, nil
	}
	raw := make([]uintptr, limit)
	var n int32
	ok := l.eglChooseConfig(uintptr(dpy), attribPtr(attribs), &raw[0], int32(limit), &n)
	runtime.KeepAlive(attribs)
	if ok == eglFalse {
		return nil, l.fail("eglChooseConfig")
	}
	if n < 1 {
		return nil, ErrNoConfig
	}
	configs := make([]Config, n)
	for i := range configs {
		configs[i] = Config(raw[i])
	}
	return configs, nil
}

// ConfigAttrib queries one attribute of a configuration.
func (l *Library) ConfigAttrib(dpy Display, cfg Config, attr int32) (int32, error) {
	var v int32
	if l.eglGetConfigAttrib(uintptr(dpy), uintptr(cfg), attr, &v) == eglFalse {
		return 0, l.fail("eglGetConfigAttrib")
	}
	return v, nil
}

// CreateWindowSurface wraps a GBM surface as an EGL window surface.
func (l *Library) CreateWindowSurface(dpy Display, cfg Config, surf Surface) (WindowSurface, error) {
	ws := l.eglCreateWindowSurface(uintptr(dpy), uintptr(cfg), uintptr(surf), nil)
	if ws == 0 {
		return 0, l.fail("eglCreateWindowSurface")
	}
	return WindowSurface(ws), nil
}

// DestroyWindowSurface destroys an EGL window surface.
func (l *Library) DestroyWindowSurface(dpy Display, ws WindowSurface) error {
	if ws == 0 {
		return nil
	}
	if l.eglDestroySurface(uintptr(dpy), uintptr(ws)) == eglFalse {
		return l.fail("eglDestroySurface")
	}
	return nil
}

// CreateContext creates a rendering context. attribs usually carries
// ContextClientVersion.
func (l *Library) CreateContext(dpy Display, cfg Config, attribs []int32) (Context, error) {
	ctx := l.eglCreateContext(uintptr(dpy), uintptr(cfg), 0, attribPtr(attribs))
	runtime.KeepAlive(attribs)
	if ctx == 0 {
		return 0, l.fail("eglCreateContext")
	}
	return Context(ctx), nil
}

// DestroyContext destroys a rendering context.
func (l *Library) DestroyContext(dpy Display, ctx Context) error {
	if ctx == 0 {
		return nil
	}
	if l.eglDestroyContext(uintptr(dpy), uintptr(ctx)) == eglFalse {
		return l.fail("eglDestroyContext")
	}
	return nil
}

// MakeCurrent binds ctx and ws to the calling thread.
func (l *Library) MakeCurrent(dpy Display, ws WindowSurface, ctx Context) error {
	if l.eglMakeCurrent(uintptr(dpy), uintptr(ws), uintptr(ws), uintptr(ctx)) == eglFalse {
		return l.fail("eglMakeCurrent")
	}
	return nil
}

// ReleaseCurrent unbinds any context from the calling thread.
func (l *Library) ReleaseCurrent(dpy Display) error {
	if dpy == 0 {
		return nil
	}
	if l.eglMakeCurrent(uintptr(dpy), 0, 0, 0) == eglFalse {
		return l.fail("eglMakeCurrent")
	}
	return nil
}

// SwapBuffers posts the back buffer of ws. For GBM surfaces the result
// becomes available to LockFrontBuffer.
func (l *Library) SwapBuffers(dpy Display, ws WindowSurface) error {
	if l.eglSwapBuffers(uintptr(dpy), uintptr(ws)) == eglFalse {
		return l.fail("eglSwapBuffers")
	}
	return nil
}
