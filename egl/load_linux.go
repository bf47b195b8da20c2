// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build linux

package egl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Library names tried in order.
var (
	gbmNames = []string{"libgbm.so.1", "libgbm.so"}
	eglNames = []string{"libEGL.so.1", "libEGL.so"}
)

func dlopen(names []string) (uintptr, error) {
	var lastErr error
	for _, name := range names {
		h, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return h, nil
		}
		lastErr = err
	}
	return 0, fmt.Errorf("egl: load %s: %w", names[0], lastErr)
}

// register resolves name into fn. purego panics on a missing symbol; that
// is turned into an error.
func register(fn any, lib uintptr, name string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("egl: resolve %s: %v", name, r)
		}
	}()
	purego.RegisterLibFunc(fn, lib, name)
	return nil
}

// Load opens libgbm and libEGL and resolves every entry point the package
// uses.
func Load() (*Library, error) {
	gbm, err := dlopen(gbmNames)
	if err != nil {
		return nil, err
	}
	l := &Library{}
	l.closers = append(l.closers, func() error { return purego.Dlclose(gbm) })

	egl, err := dlopen(eglNames)
	if err != nil {
		_ = l.Close()
		return nil, err
	}
	l.closers = append(l.closers, func() error { return purego.Dlclose(egl) })

	syms := []struct {
		fn   any
		lib  uintptr
		name string
	}{
		{&l.gbmCreateDevice, gbm, "gbm_create_device"},
		{&l.gbmDeviceDestroy, gbm, "gbm_device_destroy"},
		{&l.gbmSurfaceCreate, gbm, "gbm_surface_create"},
		{&l.gbmSurfaceDestroy, gbm, "gbm_surface_destroy"},
		{&l.gbmSurfaceLockFrontBuffer, gbm, "gbm_surface_lock_front_buffer"},
		{&l.gbmSurfaceReleaseBuffer, gbm, "gbm_surface_release_buffer"},
		{&l.gbmBOGetWidth, gbm, "gbm_bo_get_width"},
		{&l.gbmBOGetHeight, gbm, "gbm_bo_get_height"},
		{&l.gbmBOGetStride, gbm, "gbm_bo_get_stride"},
		{&l.gbmBOGetFormat, gbm, "gbm_bo_get_format"},
		{&l.gbmBOGetHandle, gbm, "gbm_bo_get_handle"},

		{&l.eglGetError, egl, "eglGetError"},
		{&l.eglGetDisplay, egl, "eglGetDisplay"},
		{&l.eglInitialize, egl, "eglInitialize"},
		{&l.eglTerminate, egl, "eglTerminate"},
		{&l.eglChooseConfig, egl, "eglChooseConfig"},
		{&l.eglGetConfigAttrib, egl, "eglGetConfigAttrib"},
		{&l.eglCreateWindowSurface, egl, "eglCreateWindowSurface"},
		{&l.eglDestroySurface, egl, "eglDestroySurface"},
		{&l.eglCreateContext, egl, "eglCreateContext"},
		{&l.eglDestroyContext, egl, "eglDestroyContext"},
		{&l.eglMakeCurrent, egl, "eglMakeCurrent"},
		{&l.eglSwapBuffers, egl, "eglSwapBuffers"},
	}
	for _, s := range syms {
		if err := register(s.fn, s.lib, s.name); err != nil {
			_ = l.Close()
			return nil, err
		}
	}

	var getProcAddress func(name string) uintptr
	if err := register(&getProcAddress, egl, "eglGetProcAddress"); err == nil {
		if p := getProcAddress("eglGetPlatformDisplayEXT"); p != 0 {
			purego.RegisterFunc(&l.eglGetPlatformDisplayEXT, p)
		}
	}
	return l, nil
}
