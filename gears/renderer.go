// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gears

import (
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/stereo"
	"github.com/gogpu/stereo/gles"
	"github.com/gogpu/stereo/internal/mat4"
)

// Options configures a Renderer.
type Options struct {
	// HUD labels each eye with its name and the transmission format.
	HUD bool

	// Background is the clear colour. The zero value is opaque black.
	Background gputypes.Color
}

// Scene constants.
var (
	lightSource = [4]float32{5, 5, 10, 1}

	gearRed   = [4]float32{0.8, 0.1, 0, 1}
	gearGreen = [4]float32{0, 0.8, 0.2, 1}
	gearBlue  = [4]float32{0.2, 0.2, 1, 1}
)

// Distance from the viewer to the scene.
const sceneDepth = -20

// gearSpec places one gear in the scene. Its rotation in degrees is
// speed*angle + phase.
type gearSpec struct {
	inner, outer, width float32
	teeth               int
	toothDepth          float32

	x, y         float32
	color        [4]float32
	speed, phase float32
}

var scene = [...]gearSpec{
	{inner: 1, outer: 4, width: 1, teeth: 20, toothDepth: 0.7, x: -3, y: -2, color: gearRed, speed: 1},
	{inner: 0.5, outer: 2, width: 2, teeth: 10, toothDepth: 0.7, x: 3.1, y: -2, color: gearGreen, speed: -2, phase: -9},
	{inner: 1.3, outer: 2, width: 0.5, teeth: 10, toothDepth: 0.7, x: -3.1, y: 4.2, color: gearBlue, speed: -2, phase: -25},
}

type gear struct {
	spec gearSpec
	mesh *Mesh
	vbo  uint32
}

// Renderer draws the gears scene. It implements stereo.FrameRenderer and
// must be used on the thread where the rendering context is current.
type Renderer struct {
	gl       *gles.GL
	provider gpucontext.DeviceProvider
	opts     Options

	program   uint32
	mvpLoc    int32
	normalLoc int32
	lightLoc  int32
	colorLoc  int32

	gears  []gear
	anim   *Animation
	layout stereo.Layout
	hud    *hud
}

var _ stereo.FrameRenderer = (*Renderer)(nil)

// NewRenderer returns a renderer drawing through gl into the surface of
// provider, usually a *stereo.Context. Resources are created by Init.
func NewRenderer(gl *gles.GL, provider gpucontext.DeviceProvider, opts Options) *Renderer {
	if opts.Background == (gputypes.Color{}) {
		opts.Background = gputypes.Color{A: 1}
	}
	return &Renderer{gl: gl, provider: provider, opts: opts, anim: NewAnimation()}
}

// checkSurface accepts the 8-bit RGBA surface formats the shaders write.
func checkSurface(p gpucontext.DeviceProvider) error {
	switch f := p.SurfaceFormat(); f {
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8Unorm:
		return nil
	default:
		return fmt.Errorf("gears: unsupported surface format %v", f)
	}
}

// Animation returns the frame timing state.
func (r *Renderer) Animation() *Animation { return r.anim }

// Init compiles the shaders and uploads the gear meshes.
func (r *Renderer) Init(l stereo.Layout) error {
	if err := checkSurface(r.provider); err != nil {
		return err
	}
	info := r.provider.AdapterInfo()
	stereo.Logger().Debug("gears: surface",
		"format", r.provider.SurfaceFormat(), "adapter", info.Name, "type", info.Type)

	gl := r.gl
	program, err := buildProgram(gl, gearVertexShader, gearFragmentShader, "position", "normal")
	if err != nil {
		return err
	}
	r.program = program
	r.layout = l

	r.mvpLoc = gl.GetUniformLocation(program, "ModelViewProjectionMatrix")
	r.normalLoc = gl.GetUniformLocation(program, "NormalMatrix")
	r.lightLoc = gl.GetUniformLocation(program, "LightSourcePosition")
	r.colorLoc = gl.GetUniformLocation(program, "MaterialColor")

	gl.UseProgram(program)
	gl.Uniform4f(r.lightLoc, lightSource)

	gl.Enable(gles.CullFace)
	gl.Enable(gles.DepthTest)

	r.gears = make([]gear, len(scene))
	for i, s := range scene {
		m := NewGear(s.inner, s.outer, s.width, s.teeth, s.toothDepth)
		r.gears[i] = gear{spec: s, mesh: m, vbo: gles.CreateBuffer(gl, m.Vertices)}
	}

	if r.opts.HUD {
		h, err := newHUD(gl, l)
		if err != nil {
			r.Close()
			return err
		}
		r.hud = h
	}

	stereo.Logger().Debug("gears: renderer ready",
		"vertices", r.vertexCount(), "hud", r.opts.HUD)
	return nil
}

func (r *Renderer) vertexCount() int {
	n := 0
	for _, g := range r.gears {
		n += len(g.mesh.Vertices)
	}
	return n
}

// BeginFrame advances the animation and clears the whole buffer.
func (r *Renderer) BeginFrame(now time.Time) {
	if rep, ok := r.anim.Advance(now); ok {
		stereo.Logger().Info("gears: " + rep.String())
	}
	bg := r.opts.Background
	r.gl.ClearColor(float32(bg.R), float32(bg.G), float32(bg.B), float32(bg.A))
	r.gl.Clear(gles.ColorBufferBit | gles.DepthBufferBit)
}

// DrawEye draws the scene into one eye's viewport. Eyes outside the
// buffer are skipped.
func (r *Renderer) DrawEye(v stereo.EyeView) {
	if !r.layout.Visible(v.Eye) {
		return
	}
	gl := r.gl
	vp := v.Viewport
	gl.Viewport(vp.X, vp.Y, vp.Width, vp.Height)
	gl.UseProgram(r.program)

	p := v.Projection
	proj := mat4.Frustum(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
	view := r.viewTransform(p.EyeOffset)

	angle := r.anim.Angle()
	for i := range r.gears {
		r.drawGear(&r.gears[i], proj, view, angle)
	}

	if r.hud != nil {
		r.hud.draw(v.Eye)
	}
}

// viewTransform shifts the scene by the eye offset, pushes it away from
// the viewer and applies the view rotation.
func (r *Renderer) viewTransform(eyeOffset float32) mat4.Mat {
	rot := r.anim.ViewRotation()
	return mat4.Identity().
		Translate(eyeOffset, 0, 0).
		Translate(0, 0, sceneDepth).
		Rotate(mat4.Deg(rot[0]), 1, 0, 0).
		Rotate(mat4.Deg(rot[1]), 0, 1, 0).
		Rotate(mat4.Deg(rot[2]), 0, 0, 1)
}

func (r *Renderer) drawGear(g *gear, proj, view mat4.Mat, angle float32) {
	gl := r.gl
	s := g.spec
	rotation := s.speed*angle + s.phase

	modelView := view.
		Translate(s.x, s.y, 0).
		Rotate(mat4.Deg(rotation), 0, 0, 1)
	mvp := proj.Mul(modelView)
	normal := modelView.InvertRigid().Transpose()

	gl.UniformMatrix4(r.mvpLoc, (*[16]float32)(&mvp))
	gl.UniformMatrix4(r.normalLoc, (*[16]float32)(&normal))
	gl.Uniform4f(r.colorLoc, s.color)

	gl.BindBuffer(gles.ArrayBuffer, g.vbo)
	gl.VertexAttribPointer(attribPosition, 3, VertexStride, 0)
	gl.VertexAttribPointer(attribNormal, 3, VertexStride, normalOffset)
	gl.EnableVertexAttribArray(attribPosition)
	gl.EnableVertexAttribArray(attribNormal)

	for _, st := range g.mesh.Strips {
		gl.DrawArrays(gles.TriangleStrip, st.First, st.Count)
	}

	gl.DisableVertexAttribArray(attribNormal)
	gl.DisableVertexAttribArray(attribPosition)
}

// Close releases the buffers and programs.
func (r *Renderer) Close() {
	if r.hud != nil {
		r.hud.close()
		r.hud = nil
	}
	for _, g := range r.gears {
		r.gl.DeleteBuffer(g.vbo)
	}
	r.gears = nil
	if r.program != 0 {
		r.gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// buildProgram compiles and links a program, binding attribs[i] to
// location i.
func buildProgram(gl *gles.GL, vertex, fragment string, attribs ...string) (uint32, error) {
	vs, err := gl.CompileShader(gles.VertexShader, vertex)
	if err != nil {
		return 0, fmt.Errorf("gears: %w", err)
	}
	fs, err := gl.CompileShader(gles.FragmentShader, fragment)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, fmt.Errorf("gears: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	for i, name := range attribs {
		gl.BindAttribLocation(program, uint32(i), name)
	}
	err = gl.LinkProgram(program)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	if err != nil {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("gears: %w", err)
	}
	return program, nil
}
