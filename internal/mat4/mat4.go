// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mat4 provides the 4x4 float32 matrices used to draw the scene.
// Matrices are column-major, the layout glUniformMatrix4fv expects.
package mat4

import "math"

// Mat is a column-major 4x4 matrix: element (row, col) is m[col*4+row].
type Mat [16]float32

// Identity returns the identity matrix.
func Identity() Mat {
	return Mat{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns element (row, col).
func (m Mat) At(row, col int) float32 { return m[col*4+row] }

// Mul returns m × n.
func (m Mat) Mul(n Mat) Mat {
	var out Mat
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += m[k*4+row] * n[col*4+k]
			}
			out[col*4+row] = s
		}
	}
	return out
}

// Rotate returns m × R, where R rotates by angle radians about the unit
// axis (x, y, z).
func (m Mat) Rotate(angle, x, y, z float32) Mat {
	s64, c64 := math.Sincos(float64(angle))
	s, c := float32(s64), float32(c64)
	r := Mat{
		x*x*(1-c) + c, y*x*(1-c) + z*s, x*z*(1-c) - y*s, 0,
		x*y*(1-c) - z*s, y*y*(1-c) + c, y*z*(1-c) + x*s, 0,
		x*z*(1-c) + y*s, y*z*(1-c) - x*s, z*z*(1-c) + c, 0,
		0, 0, 0, 1,
	}
	return m.Mul(r)
}

// Translate returns m × T(x, y, z).
func (m Mat) Translate(x, y, z float32) Mat {
	t := Mat{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
	return m.Mul(t)
}

// Transpose returns the transpose of m.
func (m Mat) Transpose() Mat {
	var out Mat
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row*4+col] = m[col*4+row]
		}
	}
	return out
}

// InvertRigid inverts a matrix made only of rotation and translation.
// The result is meaningless for matrices with scale or projection.
func (m Mat) InvertRigid() Mat {
	t := Identity()
	t[12], t[13], t[14] = -m[12], -m[13], -m[14]

	r := m
	r[12], r[13], r[14] = 0, 0, 0
	return r.Transpose().Mul(t)
}

// Frustum returns a perspective projection for the given clip planes, as
// glFrustum.
func Frustum(left, right, bottom, top, near, far float32) Mat {
	var m Mat
	m[0] = 2 * near / (right - left)
	m[5] = 2 * near / (top - bottom)
	m[8] = (right + left) / (right - left)
	m[9] = (top + bottom) / (top - bottom)
	m[10] = -(far + near) / (far - near)
	m[11] = -1
	m[14] = -2 * far * near / (far - near)
	return m
}

// Deg returns degrees in radians.
func Deg(d float32) float32 {
	return d * math.Pi / 180
}
