// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build linux

package gles

import (
	"fmt"

	"github.com/ebitengine/purego"
)

var libNames = []string{"libGLESv2.so.2", "libGLESv2.so"}

// Load opens libGLESv2 and resolves the entry points used by GL.
func Load() (*GL, error) {
	var (
		lib uintptr
		err error
	)
	for _, name := range libNames {
		if lib, err = purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("gles: load %s: %w", libNames[0], err)
	}

	gl := &GL{closer: func() error { return purego.Dlclose(lib) }}
	if err := gl.resolve(lib); err != nil {
		_ = gl.Close()
		return nil, err
	}
	return gl, nil
}

func (gl *GL) resolve(lib uintptr) (err error) {
	var name string
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gles: resolve %s: %v", name, r)
		}
	}()
	for _, s := range gl.symbols() {
		name = s.name
		purego.RegisterLibFunc(s.fn, lib, s.name)
	}
	return nil
}

func (gl *GL) symbols() []struct {
	fn   any
	name string
} {
	return []struct {
		fn   any
		name string
	}{
		{&gl.glActiveTexture, "glActiveTexture"},
		{&gl.glAttachShader, "glAttachShader"},
		{&gl.glBindAttribLocation, "glBindAttribLocation"},
		{&gl.glBindBuffer, "glBindBuffer"},
		{&gl.glBindTexture, "glBindTexture"},
		{&gl.glBlendFunc, "glBlendFunc"},
		{&gl.glBufferData, "glBufferData"},
		{&gl.glClear, "glClear"},
		{&gl.glClearColor, "glClearColor"},
		{&gl.glCompileShader, "glCompileShader"},
		{&gl.glCreateProgram, "glCreateProgram"},
		{&gl.glCreateShader, "glCreateShader"},
		{&gl.glDeleteBuffers, "glDeleteBuffers"},
		{&gl.glDeleteProgram, "glDeleteProgram"},
		{&gl.glDeleteShader, "glDeleteShader"},
		{&gl.glDeleteTextures, "glDeleteTextures"},
		{&gl.glDisable, "glDisable"},
		{&gl.glDisableVertexAttribArray, "glDisableVertexAttribArray"},
		{&gl.glDrawArrays, "glDrawArrays"},
		{&gl.glEnable, "glEnable"},
		{&gl.glEnableVertexAttribArray, "glEnableVertexAttribArray"},
		{&gl.glGenBuffers, "glGenBuffers"},
		{&gl.glGenTextures, "glGenTextures"},
		{&gl.glGetError, "glGetError"},
		{&gl.glGetProgramInfoLog, "glGetProgramInfoLog"},
		{&gl.glGetProgramiv, "glGetProgramiv"},
		{&gl.glGetShaderInfoLog, "glGetShaderInfoLog"},
		{&gl.glGetShaderiv, "glGetShaderiv"},
		{&gl.glGetUniformLocation, "glGetUniformLocation"},
		{&gl.glLinkProgram, "glLinkProgram"},
		{&gl.glShaderSource, "glShaderSource"},
		{&gl.glTexImage2D, "glTexImage2D"},
		{&gl.glTexParameteri, "glTexParameteri"},
		{&gl.glUniform1i, "glUniform1i"},
		{&gl.glUniform4fv, "glUniform4fv"},
		{&gl.glUniformMatrix4fv, "glUniformMatrix4fv"},
		{&gl.glUseProgram, "glUseProgram"},
		{&gl.glVertexAttribPointer, "glVertexAttribPointer"},
		{&gl.glViewport, "glViewport"},
	}
}
