// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gears

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/stereo"
	"github.com/gogpu/stereo/gles"
)

// HUD text metrics in buffer pixels.
const (
	hudFontSize = 18
	hudPadding  = 6
	hudMargin   = 12
)

var (
	hudBackground = color.RGBA{0, 0, 0, 160}
	hudForeground = color.White
)

var regularFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// Label returns the HUD text for one eye, e.g. "Left Eye: Side By Side Half".
func Label(f stereo.Format, eye stereo.Eye) string {
	title := cases.Title(language.English)
	return fmt.Sprintf("%s Eye: %s", title.String(eye.String()), title.String(f.String()))
}

// RasterizeLabel draws text in white on a translucent box. The result is
// sized to fit the text plus padding.
func RasterizeLabel(text string, size float64) (*image.RGBA, error) {
	f, err := regularFont()
	if err != nil {
		return nil, fmt.Errorf("gears: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("gears: create face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	m := face.Metrics()
	width := font.MeasureString(face, text).Ceil() + 2*hudPadding
	height := (m.Ascent + m.Descent).Ceil() + 2*hudPadding

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(hudBackground), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(hudForeground),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(hudPadding), Y: fixed.I(hudPadding) + m.Ascent},
	}
	d.DrawString(text)
	return img, nil
}

// labelQuad returns a triangle strip of (x, y, u, v) vertices placing a
// w x h pixel label at the top-left corner of a viewport. Rows of the
// label image run top to bottom, so v is flipped.
func labelQuad(vp stereo.Viewport, w, h int) [4][4]float32 {
	sx := 2 / float32(vp.Width)
	sy := 2 / float32(vp.Height)
	x0 := -1 + hudMargin*sx
	x1 := x0 + float32(w)*sx
	y1 := 1 - hudMargin*sy
	y0 := y1 - float32(h)*sy
	return [4][4]float32{
		{x0, y0, 0, 1},
		{x1, y0, 1, 1},
		{x0, y1, 0, 0},
		{x1, y1, 1, 0},
	}
}

type hudLabel struct {
	texture uint32
	quad    uint32
}

// hud draws one label per visible eye.
type hud struct {
	gl      *gles.GL
	program uint32
	sampler int32
	labels  map[stereo.Eye]hudLabel
}

func newHUD(gl *gles.GL, l stereo.Layout) (*hud, error) {
	program, err := buildProgram(gl, hudVertexShader, hudFragmentShader, "position", "texcoord")
	if err != nil {
		return nil, err
	}
	h := &hud{
		gl:      gl,
		program: program,
		sampler: gl.GetUniformLocation(program, "label"),
		labels:  make(map[stereo.Eye]hudLabel, 2),
	}

	for _, eye := range [...]stereo.Eye{stereo.LeftEye, stereo.RightEye} {
		if !l.Visible(eye) {
			continue
		}
		img, err := RasterizeLabel(Label(l.Format, eye), hudFontSize)
		if err != nil {
			h.close()
			return nil, err
		}
		b := img.Bounds()
		quad := labelQuad(l.Viewport(eye), b.Dx(), b.Dy())
		h.labels[eye] = hudLabel{
			texture: gl.CreateTexture(b.Dx(), b.Dy(), img.Pix),
			quad:    gles.CreateBuffer(gl, quad[:]),
		}
	}
	return h, nil
}

func (h *hud) draw(eye stereo.Eye) {
	lb, ok := h.labels[eye]
	if !ok {
		return
	}
	gl := h.gl
	gl.Disable(gles.DepthTest)
	gl.Enable(gles.Blend)
	gl.BlendFunc(gles.SrcAlpha, gles.OneMinusSrcAlpha)

	gl.UseProgram(h.program)
	gl.ActiveTexture(gles.Texture0)
	gl.BindTexture(gles.Texture2D, lb.texture)
	gl.Uniform1i(h.sampler, 0)

	gl.BindBuffer(gles.ArrayBuffer, lb.quad)
	gl.VertexAttribPointer(attribPosition, 2, 16, 0)
	gl.VertexAttribPointer(attribTexcoord, 2, 16, 8)
	gl.EnableVertexAttribArray(attribPosition)
	gl.EnableVertexAttribArray(attribTexcoord)
	gl.DrawArrays(gles.TriangleStrip, 0, 4)
	gl.DisableVertexAttribArray(attribTexcoord)
	gl.DisableVertexAttribArray(attribPosition)

	gl.Disable(gles.Blend)
	gl.Enable(gles.DepthTest)
}

func (h *hud) close() {
	for eye, lb := range h.labels {
		h.gl.DeleteTexture(lb.texture)
		h.gl.DeleteBuffer(lb.quad)
		delete(h.labels, eye)
	}
	h.gl.DeleteProgram(h.program)
	h.program = 0
}
