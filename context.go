// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/stereo/egl"
)

// SurfaceDescriptor describes the drawable backing a presentation context.
type SurfaceDescriptor struct {
	Width  uint32
	Height uint32

	// Format is the color format. Only 32-bit formats without alpha
	// scan-out are accepted.
	Format gputypes.TextureFormat

	// Usage must include TextureUsageRenderAttachment.
	Usage gputypes.TextureUsage

	// Scanout makes the buffers usable as display framebuffers.
	Scanout bool
}

// SurfaceDescriptorFor returns the drawable description for a layout:
// the full buffer size, 32-bit color, render and scan-out usage.
func SurfaceDescriptorFor(l Layout) SurfaceDescriptor {
	return SurfaceDescriptor{
		Width:   uint32(l.BufferWidth),
		Height:  uint32(l.BufferHeight),
		Format:  gputypes.TextureFormatBGRA8Unorm,
		Usage:   gputypes.TextureUsageRenderAttachment,
		Scanout: true,
	}
}

// fourcc maps the color format to the allocator's pixel format.
func (d SurfaceDescriptor) fourcc() (uint32, error) {
	switch d.Format {
	case gputypes.TextureFormatBGRA8Unorm:
		// B, G, R, X in memory is XRGB8888 in little-endian fourcc terms.
		return egl.FormatXRGB8888, nil
	default:
		return 0, fmt.Errorf("stereo: unsupported surface format %v", d.Format)
	}
}

func (d SurfaceDescriptor) flags() uint32 {
	var f uint32
	if d.Usage&gputypes.TextureUsageRenderAttachment != 0 {
		f |= egl.UseRendering
	}
	if d.Scanout {
		f |= egl.UseScanout
	}
	return f
}

// configAttribs is the minimal request: any color and depth, ES 2 windows.
var configAttribs = []int32{
	egl.RedSize, 1,
	egl.GreenSize, 1,
	egl.BlueSize, 1,
	egl.AlphaSize, egl.DontCare,
	egl.DepthSize, 1,
	egl.BufferSize, egl.DontCare,
	egl.RenderableType, egl.OpenGLES2,
	egl.SurfaceType, egl.WindowBit,
	egl.None,
}

var contextAttribs = []int32{
	egl.ContextClientVersion, 2,
	egl.None,
}

const maxConfigs = 64

// scanout is a locked buffer and the framebuffer registered for it.
type scanout struct {
	bo egl.BO
	fb uint32
}

// Context is the rendering side of a Device: the buffer allocator, the
// drawable sized to the stereo layout and a current GLES 2 context bound to
// it. It also tracks the buffer on screen so it can be retired only after
// its successor is live.
//
// Context implements gpucontext.DeviceProvider.
type Context struct {
	dev      *Device
	platform Platform
	desc     SurfaceDescriptor

	gbm     egl.Device
	surface egl.Surface
	display egl.Display
	config  egl.Config
	window  egl.WindowSurface
	context egl.Context

	current scanout
	// dropped is a buffer whose registration failed; released next cycle.
	dropped egl.BO
	// stale is the previous buffer when a flip wait failed; it may still
	// be on screen until the CRTC is restored.
	stale scanout

	frames    uint64
	destroyed bool
}

// NewContext creates the presentation context for dev and makes it current
// on the calling thread. On failure every resource acquired so far is
// released in reverse order and the error is a *StageError.
func NewContext(dev *Device, p Platform) (*Context, error) {
	if dev.closed {
		return nil, ErrClosed
	}
	if dev.ctx != nil {
		return nil, errors.New("stereo: device already has a presentation context")
	}

	c := &Context{
		dev:      dev,
		platform: p,
		desc:     SurfaceDescriptorFor(dev.layout),
	}
	var stack releaseStack
	defer stack.unwind()

	var err error
	log := Logger()

	if c.gbm, err = p.CreateDevice(dev.display.Fd()); err != nil {
		return nil, stageError(StageAllocator, err)
	}
	stack.push(func() { p.DestroyDevice(c.gbm) })

	if c.display, err = p.GetDisplay(c.gbm); err != nil {
		return nil, stageError(StageDisplay, err)
	}

	major, minor, err := p.Initialize(c.display)
	if err != nil {
		return nil, stageError(StageInitialize, err)
	}
	stack.push(func() { _ = p.Terminate(c.display) })
	log.Debug("stereo: initialized EGL", "major", major, "minor", minor)

	fourcc, err := c.desc.fourcc()
	if err != nil {
		return nil, stageError(StageDrawable, err)
	}
	if c.surface, err = p.CreateSurface(c.gbm, c.desc.Width, c.desc.Height, fourcc, c.desc.flags()); err != nil {
		return nil, stageError(StageDrawable, err)
	}
	stack.push(func() { p.DestroySurface(c.surface) })
	log.Debug("stereo: created drawable", "width", c.desc.Width, "height", c.desc.Height, "fourcc", fmt.Sprintf("%#x", fourcc))

	if c.config, err = chooseConfig(p, c.display, fourcc); err != nil {
		return nil, stageError(StageConfig, err)
	}

	if c.window, err = p.CreateWindowSurface(c.display, c.config, c.surface); err != nil {
		return nil, stageError(StageSurface, err)
	}
	stack.push(func() { _ = p.DestroyWindowSurface(c.display, c.window) })

	if c.context, err = p.CreateContext(c.display, c.config, contextAttribs); err != nil {
		return nil, stageError(StageContext, err)
	}
	stack.push(func() { _ = p.DestroyContext(c.display, c.context) })

	if err := p.MakeCurrent(c.display, c.window, c.context); err != nil {
		return nil, stageError(StageMakeCurrent, err)
	}

	stack.disarm()
	dev.ctx = c
	return c, nil
}

// chooseConfig picks the config whose native visual matches the drawable
// format, or the first match when none does.
func chooseConfig(p Platform, dpy egl.Display, fourcc uint32) (egl.Config, error) {
	configs, err := p.ChooseConfigs(dpy, configAttribs, maxConfigs)
	if err != nil {
		return 0, err
	}
	if len(configs) == 0 {
		return 0, egl.ErrNoConfig
	}
	for _, cfg := range configs {
		id, err := p.ConfigAttrib(dpy, cfg, egl.NativeVisualID)
		if err != nil {
			continue
		}
		if uint32(id) == fourcc {
			Logger().Debug("stereo: chose config by visual", "config", uintptr(cfg), "candidates", len(configs))
			return cfg, nil
		}
	}
	Logger().Debug("stereo: no config with matching visual, using first", "candidates", len(configs))
	return configs[0], nil
}

// Layout returns the buffer layout the drawable was sized for.
func (c *Context) Layout() Layout { return c.dev.layout }

// Descriptor returns the drawable description.
func (c *Context) Descriptor() SurfaceDescriptor { return c.desc }

// Frames returns the number of frames put on screen.
func (c *Context) Frames() uint64 { return c.frames }

// releaseScanout removes the framebuffer and returns the buffer to the
// allocator.
func (c *Context) releaseScanout(s *scanout) error {
	var err error
	if s.fb != 0 {
		if rmErr := c.dev.display.RmFB(s.fb); rmErr != nil {
			err = fmt.Errorf("stereo: remove fb %d: %w", s.fb, rmErr)
		}
	}
	if s.bo != 0 {
		c.platform.ReleaseBuffer(c.surface, s.bo)
	}
	*s = scanout{}
	return err
}

func (c *Context) releaseDropped() {
	if c.dropped != 0 {
		c.platform.ReleaseBuffer(c.surface, c.dropped)
		c.dropped = 0
	}
}

// Destroy restores the CRTC, releases any registered buffers and tears the
// context down in reverse creation order. Destroy is idempotent.
func (c *Context) Destroy() error {
	if c.destroyed {
		return nil
	}
	c.destroyed = true
	p := c.platform

	var errs []error
	if err := c.dev.restore(); err != nil {
		errs = append(errs, err)
	}
	if err := c.releaseScanout(&c.current); err != nil {
		errs = append(errs, err)
	}
	if err := c.releaseScanout(&c.stale); err != nil {
		errs = append(errs, err)
	}
	c.releaseDropped()

	if err := p.ReleaseCurrent(c.display); err != nil {
		errs = append(errs, err)
	}
	if err := p.DestroyContext(c.display, c.context); err != nil {
		errs = append(errs, err)
	}
	if err := p.DestroyWindowSurface(c.display, c.window); err != nil {
		errs = append(errs, err)
	}
	p.DestroySurface(c.surface)
	if err := p.Terminate(c.display); err != nil {
		errs = append(errs, err)
	}
	p.DestroyDevice(c.gbm)

	if c.dev.ctx == c {
		c.dev.ctx = nil
	}
	for _, err := range errs {
		Logger().Warn("stereo: teardown", "err", err)
	}
	return errors.Join(errs...)
}

// Device returns the *Device the context renders for.
func (c *Context) Device() gpucontext.Device { return c.dev }

// Queue returns the context itself: frames are submitted with Present.
func (c *Context) Queue() gpucontext.Queue { return c }

// Adapter returns the Display behind the Device.
func (c *Context) Adapter() gpucontext.Adapter { return c.dev.display }

// AdapterInfo names the card node. KMS does not report the adapter
// type, so it is always AdapterTypeUnknown.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo {
	name := "drm"
	if p, ok := c.dev.display.(interface{ Path() string }); ok {
		name = "drm " + p.Path()
	}
	return gpucontext.AdapterInfo{Name: name, Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat returns the drawable's color format.
func (c *Context) SurfaceFormat() gputypes.TextureFormat { return c.desc.Format }

var _ gpucontext.DeviceProvider = (*Context)(nil)
