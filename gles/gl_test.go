// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gles

import (
	"strings"
	"testing"
	"unsafe"
)

func TestCompileShaderFailureReturnsLog(t *testing.T) {
	var deleted uint32
	var gotSource string
	gl := &GL{
		glCreateShader: func(uint32) uint32 { return 7 },
		glShaderSource: func(_ uint32, count int32, sources **byte, lengths *int32) {
			if count != 1 {
				t.Fatalf("count = %d, want 1", count)
			}
			gotSource = unsafe.String(*sources, *lengths)
		},
		glCompileShader: func(uint32) {},
		glGetShaderiv: func(_ uint32, pname uint32, params *int32) {
			switch pname {
			case CompileStatus:
				*params = False
			case InfoLogLength:
				*params = 6
			}
		},
		glGetShaderInfoLog: func(_ uint32, size int32, length *int32, log *byte) {
			copy(unsafe.Slice(log, size), "oops!\x00")
			*length = 5
		},
		glDeleteShader: func(sh uint32) { deleted = sh },
	}

	_, err := gl.CompileShader(VertexShader, "void main() {}")
	if err == nil {
		t.Fatal("CompileShader() = nil, want error")
	}
	if !strings.Contains(err.Error(), "vertex shader: oops!") {
		t.Errorf("error = %q, want info log", err)
	}
	if deleted != 7 {
		t.Errorf("deleted shader = %d, want 7", deleted)
	}
	if gotSource != "void main() {}" {
		t.Errorf("source = %q", gotSource)
	}
}

func TestLinkProgramSuccess(t *testing.T) {
	gl := &GL{
		glLinkProgram: func(uint32) {},
		glGetProgramiv: func(_ uint32, pname uint32, params *int32) {
			if pname == LinkStatus {
				*params = True
			}
		},
	}
	if err := gl.LinkProgram(3); err != nil {
		t.Errorf("LinkProgram() = %v", err)
	}
}

func TestCreateBufferSize(t *testing.T) {
	var size uintptr
	gl := &GL{
		glGenBuffers: func(_ int32, b *uint32) { *b = 9 },
		glBindBuffer: func(uint32, uint32) {},
		glBufferData: func(_ uint32, s uintptr, _ unsafe.Pointer, _ uint32) { size = s },
	}
	data := make([][6]float32, 34)
	if buf := CreateBuffer(gl, data); buf != 9 {
		t.Errorf("CreateBuffer() = %d, want 9", buf)
	}
	if size != 34*6*4 {
		t.Errorf("buffer size = %d, want %d", size, 34*6*4)
	}
}

func TestCloseWithoutLibrary(t *testing.T) {
	var gl GL
	if err := gl.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
