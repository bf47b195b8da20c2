// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"errors"
	"fmt"

	"github.com/gogpu/stereo/kms"
)

// SwapState is the page flip state of a Device.
type SwapState int

const (
	// SwapIdle means no page flip is pending.
	SwapIdle SwapState = iota
	// FlipSubmitted means a page flip was requested and its completion
	// event has not been seen yet.
	FlipSubmitted
)

func (s SwapState) String() string {
	switch s {
	case SwapIdle:
		return "idle"
	case FlipSubmitted:
		return "flip submitted"
	default:
		return fmt.Sprintf("SwapState(%d)", int(s))
	}
}

// Device is a display output configured for stereo scan-out: the open card,
// the selected connector, mode and CRTC, and the CRTC configuration to put
// back on Close.
type Device struct {
	display   Display
	connector uint32
	name      string
	crtc      uint32
	mode      kms.ModeInfo
	layout    Layout

	saved   *kms.CRTC
	crtcSet bool
	state   SwapState

	ctx    *Context
	closed bool
}

// NewDevice selects an output on d. connectorID 0 picks the first usable
// connector; a nil preferred format picks the best one available.
//
// On success the Device owns d and closes it in Close.
func NewDevice(d Display, connectorID uint32, preferred *Format) (*Device, error) {
	res, err := d.Resources()
	if err != nil {
		return nil, fmt.Errorf("stereo: retrieve resources: %w", err)
	}

	conn, mode, err := SelectConnector(d, res, connectorID, preferred)
	if err != nil {
		return nil, err
	}

	layout := ComputeLayout(mode)
	log := Logger().With("connector", conn.ID, "name", conn.Name())
	log.Info(fmt.Sprintf("stereo: mode for connector %d is %dx%d (%v)",
		conn.ID, layout.EyeWidth, layout.EyeHeight, layout.Format),
		"mode", mode.String(), "buffer", fmt.Sprintf("%dx%d", layout.BufferWidth, layout.BufferHeight))
	if layout.Format == FormatNone {
		log.Warn("stereo: no usable stereoscopic mode was found, rendering in 2D")
	}

	crtc, err := FindCRTC(d, res, conn)
	if err != nil {
		return nil, err
	}
	log.Debug("stereo: selected crtc", "crtc", crtc)

	return &Device{
		display:   d,
		connector: conn.ID,
		name:      conn.Name(),
		crtc:      crtc,
		mode:      mode,
		layout:    layout,
	}, nil
}

// Layout returns the buffer layout of the selected mode.
func (d *Device) Layout() Layout { return d.layout }

// Mode returns the selected mode.
func (d *Device) Mode() kms.ModeInfo { return d.mode }

// Format returns the transmission format of the selected mode.
func (d *Device) Format() Format { return d.layout.Format }

// ConnectorID returns the selected connector.
func (d *Device) ConnectorID() uint32 { return d.connector }

// ConnectorName returns the selected connector's name, e.g. "HDMI-A-1".
func (d *Device) ConnectorName() string { return d.name }

// CRTCID returns the CRTC driving the connector.
func (d *Device) CRTCID() uint32 { return d.crtc }

// State returns the page flip state.
func (d *Device) State() SwapState { return d.state }

// Display returns the underlying display.
func (d *Device) Display() Display { return d.display }

// setInitialCRTC saves the CRTC's current configuration and programs the
// selected mode with fbID.
func (d *Device) setInitialCRTC(fbID uint32) error {
	saved, err := d.display.CRTC(d.crtc)
	if err != nil {
		Logger().Warn("stereo: cannot save crtc, it will not be restored", "crtc", d.crtc, "err", err)
		saved = nil
	}
	if err := d.display.SetCRTC(d.crtc, fbID, 0, 0, []uint32{d.connector}, &d.mode); err != nil {
		return fmt.Errorf("stereo: set mode %v on crtc %d: %w", d.mode, d.crtc, err)
	}
	d.saved = saved
	d.crtcSet = true
	return nil
}

// restore puts back the configuration saved by setInitialCRTC. It runs at
// most once per mode set.
func (d *Device) restore() error {
	if !d.crtcSet {
		return nil
	}
	saved := d.saved
	d.saved, d.crtcSet = nil, false
	if saved == nil {
		return nil
	}

	var err error
	if saved.ModeValid {
		err = d.display.SetCRTC(saved.ID, saved.FBID, saved.X, saved.Y, []uint32{d.connector}, &saved.Mode)
	} else {
		err = d.display.SetCRTC(saved.ID, 0, 0, 0, nil, nil)
	}
	if err != nil {
		return fmt.Errorf("stereo: restore crtc %d: %w", saved.ID, err)
	}
	Logger().Debug("stereo: restored crtc", "crtc", saved.ID, "fb", saved.FBID, "mode_valid", saved.ModeValid)
	return nil
}

// flip requests a page flip to fbID with a completion event.
func (d *Device) flip(fbID uint32) error {
	if err := d.display.PageFlip(d.crtc, fbID, kms.PageFlipEvent, uint64(d.crtc)); err != nil {
		return fmt.Errorf("stereo: page flip crtc %d to fb %d: %w", d.crtc, fbID, err)
	}
	d.state = FlipSubmitted
	return nil
}

// waitFlip blocks until the pending flip completes. The state is idle when
// it returns, also on error.
func (d *Device) waitFlip() error {
	h := &kms.EventHandler{
		PageFlip: func(e kms.Event) {
			if e.UserData == uint64(d.crtc) {
				d.state = SwapIdle
			}
		},
	}
	for d.state == FlipSubmitted {
		if err := d.display.HandleEvents(h); err != nil {
			d.state = SwapIdle
			return fmt.Errorf("stereo: wait for page flip: %w", err)
		}
	}
	return nil
}

// Close destroys an attached presentation context, restores the saved CRTC
// configuration and closes the display. Close is idempotent.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	var errs []error
	if d.ctx != nil {
		if err := d.ctx.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := d.restore(); err != nil {
		errs = append(errs, err)
	}
	if err := d.display.Close(); err != nil {
		errs = append(errs, err)
	}
	d.closed = true
	return errors.Join(errs...)
}
