// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gles

// Enum values from GLES2/gl2.h.
const (
	DepthBufferBit = 0x00000100
	ColorBufferBit = 0x00004000

	False = 0
	True  = 1

	Triangles     = 0x0004
	TriangleStrip = 0x0005

	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303

	CullFace  = 0x0b44
	DepthTest = 0x0b71
	Blend     = 0x0be2

	Texture2D = 0x0de1

	UnsignedByte = 0x1401
	Float        = 0x1406

	RGBA = 0x1908

	Nearest        = 0x2600
	Linear         = 0x2601
	TexMagFilter   = 0x2800
	TexMinFilter   = 0x2801
	TexWrapS       = 0x2802
	TexWrapT       = 0x2803
	ClampToEdge    = 0x812f
	Texture0       = 0x84c0
	ArrayBuffer    = 0x8892
	StaticDraw     = 0x88e4
	FragmentShader = 0x8b30
	VertexShader   = 0x8b31
	CompileStatus  = 0x8b81
	LinkStatus     = 0x8b82
	InfoLogLength  = 0x8b84

	NoError = 0
)
