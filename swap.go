// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"fmt"
)

// Framebuffer registration parameters for 32-bit XRGB buffers.
const (
	fbDepth = 24
	fbBPP   = 32
)

// Present puts the frame rendered into the context on screen.
//
// The first call programs the CRTC directly. Later calls request a page
// flip and block until the kernel reports its completion, so at most one
// flip is ever in flight and at most two buffers are locked. The buffer
// that was on screen before is released only after its successor is live.
//
// Errors matching ErrFrameDropped are transient: the frame was skipped and
// the caller may continue. Errors matching ErrFatalPresent end the run.
func (c *Context) Present() error {
	if c.destroyed {
		return ErrClosed
	}
	dev := c.dev
	p := c.platform

	c.releaseDropped()

	if err := p.SwapBuffers(c.display, c.window); err != nil {
		return fmt.Errorf("%w: swap buffers: %w", ErrFatalPresent, err)
	}

	bo, err := p.LockFrontBuffer(c.surface)
	if err != nil {
		return fmt.Errorf("%w: lock front buffer: %w", ErrFatalPresent, err)
	}

	info := p.BufferInfo(bo)
	fb, err := dev.display.AddFB(info.Width, info.Height, info.Stride, fbDepth, fbBPP, info.Handle)
	if err != nil {
		Logger().Warn("stereo: failed to create framebuffer, dropping frame",
			"width", info.Width, "height", info.Height, "stride", info.Stride, "err", err)
		c.dropped = bo
		return fmt.Errorf("%w: add fb: %w", ErrFrameDropped, err)
	}
	next := scanout{bo: bo, fb: fb}

	if !dev.crtcSet {
		if err := dev.setInitialCRTC(fb); err != nil {
			_ = c.releaseScanout(&next)
			return fmt.Errorf("%w: %w", ErrFatalPresent, err)
		}
	} else {
		if err := dev.flip(fb); err != nil {
			_ = c.releaseScanout(&next)
			return fmt.Errorf("%w: %w", ErrFatalPresent, err)
		}
		if err := dev.waitFlip(); err != nil {
			// Whether next reached the screen is unknown; keep both until
			// teardown restores the CRTC.
			c.stale = c.current
			c.current = next
			return fmt.Errorf("%w: %w", ErrFatalPresent, err)
		}
	}

	if err := c.releaseScanout(&c.current); err != nil {
		Logger().Warn("stereo: release previous buffer", "err", err)
	}
	c.current = next
	c.frames++
	return nil
}
