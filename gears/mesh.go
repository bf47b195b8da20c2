// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gears

import "math"

// Vertex is an interleaved position (x, y, z) and normal (nx, ny, nz).
type Vertex [6]float32

// VertexStride is the size of a Vertex in bytes.
const VertexStride = 6 * 4

// Byte offset of the normal inside a Vertex.
const normalOffset = 3 * 4

// Each tooth is drawn as seven strips holding 34 vertices.
const (
	StripsPerTooth   = 7
	VerticesPerTooth = 34
)

// Strip is a run of vertices drawn as one triangle strip.
type Strip struct {
	First int32
	Count int32
}

// Mesh is a gear ready for upload: vertices plus the strips indexing them.
type Mesh struct {
	Vertices []Vertex
	Strips   []Strip
}

// meshBuilder appends vertices and closes strips as it goes.
type meshBuilder struct {
	m     Mesh
	start int
	n     [3]float32
}

func (b *meshBuilder) normal(x, y, z float32) { b.n = [3]float32{x, y, z} }

func (b *meshBuilder) vertex(x, y, z float32) {
	b.m.Vertices = append(b.m.Vertices, Vertex{x, y, z, b.n[0], b.n[1], b.n[2]})
}

func (b *meshBuilder) begin() { b.start = len(b.m.Vertices) }

func (b *meshBuilder) end() {
	b.m.Strips = append(b.m.Strips, Strip{
		First: int32(b.start),
		Count: int32(len(b.m.Vertices) - b.start),
	})
}

type point struct{ x, y float32 }

// NewGear builds a gear with the given inner radius, outer radius, width,
// tooth count and tooth depth. The gear lies in the z = 0 plane, centred
// on the origin, and is width thick.
func NewGear(inner, outer, width float32, teeth int, toothDepth float32) *Mesh {
	r0 := inner
	r1 := outer - toothDepth/2
	r2 := outer + toothDepth/2
	da := 2 * math.Pi / float64(teeth) / 4
	hw := width / 2

	b := &meshBuilder{m: Mesh{
		Vertices: make([]Vertex, 0, teeth*VerticesPerTooth),
		Strips:   make([]Strip, 0, teeth*StripsPerTooth),
	}}

	at := func(r float32, a float64) point {
		s, c := math.Sincos(a)
		return point{r * float32(c), r * float32(s)}
	}

	for i := 0; i < teeth; i++ {
		a := float64(i) * 2 * math.Pi / float64(teeth)
		p := [7]point{
			at(r2, a+da),
			at(r2, a+2*da),
			at(r1, a),
			at(r1, a+3*da),
			at(r0, a),
			at(r1, a+4*da),
			at(r0, a+4*da),
		}

		// front face
		b.begin()
		b.normal(0, 0, 1)
		for _, q := range p {
			b.vertex(q.x, q.y, hw)
		}
		b.end()

		// inner face
		b.begin()
		b.quad(p[4], p[6], hw)
		b.end()

		// back face
		b.begin()
		b.normal(0, 0, -1)
		for k := len(p) - 1; k >= 0; k-- {
			b.vertex(p[k].x, p[k].y, -hw)
		}
		b.end()

		// outer faces
		for _, e := range [...][2]int{{0, 2}, {1, 0}, {3, 1}, {5, 3}} {
			b.begin()
			b.quad(p[e[0]], p[e[1]], hw)
			b.end()
		}
	}
	return &b.m
}

// quad appends the side face between p1 and p2, spanning z = ±hw.
func (b *meshBuilder) quad(p1, p2 point, hw float32) {
	b.normal(p1.y-p2.y, -(p1.x - p2.x), 0)
	b.vertex(p1.x, p1.y, -hw)
	b.vertex(p1.x, p1.y, hw)
	b.vertex(p2.x, p2.y, -hw)
	b.vertex(p2.x, p2.y, hw)
}
