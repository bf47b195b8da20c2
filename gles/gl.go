// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gles

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

// ErrUnsupported is returned by Load on platforms without libGLESv2.
var ErrUnsupported = errors.New("gles: OpenGL ES is not supported on this platform")

// GL holds resolved OpenGL ES 2.0 entry points. Methods mirror the C
// functions with Go-friendly argument types.
type GL struct {
	glActiveTexture            func(texture uint32)
	glAttachShader             func(program, shader uint32)
	glBindAttribLocation       func(program, index uint32, name string)
	glBindBuffer               func(target, buffer uint32)
	glBindTexture              func(target, texture uint32)
	glBlendFunc                func(sfactor, dfactor uint32)
	glBufferData               func(target uint32, size uintptr, data unsafe.Pointer, usage uint32)
	glClear                    func(mask uint32)
	glClearColor               func(r, g, b, a float32)
	glCompileShader            func(shader uint32)
	glCreateProgram            func() uint32
	glCreateShader             func(typ uint32) uint32
	glDeleteBuffers            func(n int32, buffers *uint32)
	glDeleteProgram            func(program uint32)
	glDeleteShader             func(shader uint32)
	glDeleteTextures           func(n int32, textures *uint32)
	glDisable                  func(capability uint32)
	glDisableVertexAttribArray func(index uint32)
	glDrawArrays               func(mode uint32, first, count int32)
	glEnable                   func(capability uint32)
	glEnableVertexAttribArray  func(index uint32)
	glGenBuffers               func(n int32, buffers *uint32)
	glGenTextures              func(n int32, textures *uint32)
	glGetError                 func() uint32
	glGetProgramInfoLog        func(program uint32, size int32, length *int32, log *byte)
	glGetProgramiv             func(program, pname uint32, params *int32)
	glGetShaderInfoLog         func(shader uint32, size int32, length *int32, log *byte)
	glGetShaderiv              func(shader, pname uint32, params *int32)
	glGetUniformLocation       func(program uint32, name string) int32
	glLinkProgram              func(program uint32)
	glShaderSource             func(shader uint32, count int32, sources **byte, lengths *int32)
	glTexImage2D               func(target uint32, level, internalFormat, width, height, border int32, format, typ uint32, pixels unsafe.Pointer)
	glTexParameteri            func(target, pname uint32, param int32)
	glUniform1i                func(location, v int32)
	glUniform4fv               func(location, count int32, value *float32)
	glUniformMatrix4fv         func(location, count int32, transpose uint8, value *float32)
	glUseProgram               func(program uint32)
	glVertexAttribPointer      func(index uint32, size int32, typ uint32, normalized uint8, stride int32, offset uintptr)
	glViewport                 func(x, y, width, height int32)

	closer func() error
}

// Close unloads libGLESv2.
func (gl *GL) Close() error {
	if gl.closer == nil {
		return nil
	}
	err := gl.closer()
	gl.closer = nil
	return err
}

func (gl *GL) ActiveTexture(texture uint32)        { gl.glActiveTexture(texture) }
func (gl *GL) AttachShader(program, shader uint32) { gl.glAttachShader(program, shader) }
func (gl *GL) BindBuffer(target, buffer uint32)    { gl.glBindBuffer(target, buffer) }
func (gl *GL) BindTexture(target, texture uint32)  { gl.glBindTexture(target, texture) }
func (gl *GL) BlendFunc(sfactor, dfactor uint32)   { gl.glBlendFunc(sfactor, dfactor) }
func (gl *GL) Clear(mask uint32)                   { gl.glClear(mask) }
func (gl *GL) ClearColor(r, g, b, a float32)       { gl.glClearColor(r, g, b, a) }
func (gl *GL) CreateProgram() uint32               { return gl.glCreateProgram() }
func (gl *GL) DeleteProgram(program uint32)        { gl.glDeleteProgram(program) }
func (gl *GL) DeleteShader(shader uint32)          { gl.glDeleteShader(shader) }
func (gl *GL) Disable(capability uint32)           { gl.glDisable(capability) }
func (gl *GL) DisableVertexAttribArray(i uint32)   { gl.glDisableVertexAttribArray(i) }
func (gl *GL) DrawArrays(mode uint32, first, count int32) {
	gl.glDrawArrays(mode, first, count)
}
func (gl *GL) Enable(capability uint32)         { gl.glEnable(capability) }
func (gl *GL) EnableVertexAttribArray(i uint32) { gl.glEnableVertexAttribArray(i) }
func (gl *GL) GetError() uint32                 { return gl.glGetError() }
func (gl *GL) TexParameteri(target, pname uint32, param int32) {
	gl.glTexParameteri(target, pname, param)
}
func (gl *GL) Uniform1i(location, v int32)        { gl.glUniform1i(location, v) }
func (gl *GL) UseProgram(program uint32)          { gl.glUseProgram(program) }
func (gl *GL) Viewport(x, y, width, height int32) { gl.glViewport(x, y, width, height) }

// BindAttribLocation binds a vertex attribute name to index. Must be called
// before LinkProgram.
func (gl *GL) BindAttribLocation(program, index uint32, name string) {
	gl.glBindAttribLocation(program, index, name)
}

// GetUniformLocation returns the location of a uniform, or -1.
func (gl *GL) GetUniformLocation(program uint32, name string) int32 {
	return gl.glGetUniformLocation(program, name)
}

// Uniform4f sets a vec4 uniform.
func (gl *GL) Uniform4f(location int32, v [4]float32) {
	gl.glUniform4fv(location, 1, &v[0])
}

// UniformMatrix4 uploads one column-major 4x4 matrix.
func (gl *GL) UniformMatrix4(location int32, m *[16]float32) {
	gl.glUniformMatrix4fv(location, 1, False, &m[0])
}

// VertexAttribPointer describes a float attribute inside the bound buffer.
func (gl *GL) VertexAttribPointer(index uint32, size int32, stride int32, offset uintptr) {
	gl.glVertexAttribPointer(index, size, Float, False, stride, offset)
}

// CreateBuffer uploads data into a new static array buffer and leaves it
// bound.
func CreateBuffer[T any](gl *GL, data []T) uint32 {
	var buf uint32
	gl.glGenBuffers(1, &buf)
	gl.glBindBuffer(ArrayBuffer, buf)
	var size uintptr
	var ptr unsafe.Pointer
	if len(data) > 0 {
		var zero T
		size = uintptr(len(data)) * unsafe.Sizeof(zero)
		ptr = unsafe.Pointer(&data[0])
	}
	gl.glBufferData(ArrayBuffer, size, ptr, StaticDraw)
	runtime.KeepAlive(data)
	return buf
}

// DeleteBuffer deletes a buffer object.
func (gl *GL) DeleteBuffer(buf uint32) {
	if buf != 0 {
		gl.glDeleteBuffers(1, &buf)
	}
}

// CreateTexture uploads an RGBA image as a new 2D texture with linear
// filtering and clamped edges. The texture is left bound.
func (gl *GL) CreateTexture(width, height int, pix []byte) uint32 {
	var tex uint32
	gl.glGenTextures(1, &tex)
	gl.glBindTexture(Texture2D, tex)
	gl.glTexParameteri(Texture2D, TexMinFilter, Linear)
	gl.glTexParameteri(Texture2D, TexMagFilter, Linear)
	gl.glTexParameteri(Texture2D, TexWrapS, ClampToEdge)
	gl.glTexParameteri(Texture2D, TexWrapT, ClampToEdge)
	var ptr unsafe.Pointer
	if len(pix) > 0 {
		ptr = unsafe.Pointer(&pix[0])
	}
	gl.glTexImage2D(Texture2D, 0, RGBA, int32(width), int32(height), 0, RGBA, UnsignedByte, ptr)
	runtime.KeepAlive(pix)
	return tex
}

// DeleteTexture deletes a texture object.
func (gl *GL) DeleteTexture(tex uint32) {
	if tex != 0 {
		gl.glDeleteTextures(1, &tex)
	}
}

// CompileShader creates and compiles a shader. On failure the shader is
// deleted and the info log is returned in the error.
func (gl *GL) CompileShader(typ uint32, source string) (uint32, error) {
	sh := gl.glCreateShader(typ)
	if sh == 0 {
		return 0, fmt.Errorf("gles: glCreateShader failed: 0x%04x", gl.glGetError())
	}
	src := append([]byte(source), 0)
	p := &src[0]
	n := int32(len(source))
	gl.glShaderSource(sh, 1, &p, &n)
	runtime.KeepAlive(src)
	gl.glCompileShader(sh)

	var status int32
	gl.glGetShaderiv(sh, CompileStatus, &status)
	if status == False {
		log := gl.infoLog(sh, gl.glGetShaderiv, gl.glGetShaderInfoLog)
		gl.glDeleteShader(sh)
		return 0, fmt.Errorf("gles: compile %s shader: %s", shaderKind(typ), log)
	}
	return sh, nil
}

// LinkProgram links program and returns the info log on failure.
func (gl *GL) LinkProgram(program uint32) error {
	gl.glLinkProgram(program)
	var status int32
	gl.glGetProgramiv(program, LinkStatus, &status)
	if status == False {
		return fmt.Errorf("gles: link program: %s", gl.infoLog(program, gl.glGetProgramiv, gl.glGetProgramInfoLog))
	}
	return nil
}

func (gl *GL) infoLog(obj uint32,
	iv func(uint32, uint32, *int32),
	get func(uint32, int32, *int32, *byte)) string {
	var n int32
	iv(obj, InfoLogLength, &n)
	if n <= 1 {
		return "(no info log)"
	}
	buf := make([]byte, n)
	var written int32
	get(obj, n, &written, &buf[0])
	if written < 0 || written > n {
		written = 0
	}
	return string(buf[:written])
}

func shaderKind(typ uint32) string {
	switch typ {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return fmt.Sprintf("0x%04x", typ)
	}
}
