// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kms

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Card is an open DRM card node.
type Card struct {
	fd     int
	path   string
	closed bool
}

// Open opens the card node at path for reading and writing.
func Open(path string) (*Card, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, opError("open "+path, err)
	}
	return &Card{fd: fd, path: path}, nil
}

// Fd returns the card file descriptor. It is -1 once the card is closed.
func (c *Card) Fd() int {
	if c.closed {
		return -1
	}
	return c.fd
}

// Path returns the node the card was opened from.
func (c *Card) Path() string { return c.path }

// Close closes the card. Close is idempotent.
func (c *Card) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if err := unix.Close(c.fd); err != nil {
		return opError("close", err)
	}
	return nil
}

func (c *Card) ioctl(op string, req uintptr, arg unsafe.Pointer) error {
	if c.closed {
		return ErrClosed
	}
	if err := ioctl(c.fd, req, arg); err != nil {
		return opError(op, err)
	}
	return nil
}

// SetClientCap enables a client capability such as ClientCapStereo3D.
func (c *Card) SetClientCap(capability, value uint64) error {
	arg := setClientCap{capability: capability, value: value}
	return c.ioctl("set client cap", ioctlSetClientCap, unsafe.Pointer(&arg))
}

// Resources lists the card's framebuffers, CRTCs, connectors and encoders.
func (c *Card) Resources() (*Resources, error) {
	for {
		var probe cardRes
		if err := c.ioctl("get resources", ioctlModeGetResources, unsafe.Pointer(&probe)); err != nil {
			return nil, err
		}

		res := &Resources{
			FBs:        make([]uint32, probe.countFBs),
			CRTCs:      make([]uint32, probe.countCRTCs),
			Connectors: make([]uint32, probe.countConns),
			Encoders:   make([]uint32, probe.countEncoders),
		}
		arg := cardRes{
			fbIDPtr:        slicePtr(res.FBs),
			crtcIDPtr:      slicePtr(res.CRTCs),
			connectorIDPtr: slicePtr(res.Connectors),
			encoderIDPtr:   slicePtr(res.Encoders),
			countFBs:       probe.countFBs,
			countCRTCs:     probe.countCRTCs,
			countConns:     probe.countConns,
			countEncoders:  probe.countEncoders,
		}
		err := c.ioctl("get resources", ioctlModeGetResources, unsafe.Pointer(&arg))
		runtime.KeepAlive(res)
		if err != nil {
			return nil, err
		}

		// Hotplug between the two calls: start over.
		if arg.countFBs > probe.countFBs || arg.countCRTCs > probe.countCRTCs ||
			arg.countConns > probe.countConns || arg.countEncoders > probe.countEncoders {
			continue
		}

		res.FBs = res.FBs[:arg.countFBs]
		res.CRTCs = res.CRTCs[:arg.countCRTCs]
		res.Connectors = res.Connectors[:arg.countConns]
		res.Encoders = res.Encoders[:arg.countEncoders]
		res.MinWidth, res.MaxWidth = arg.minWidth, arg.maxWidth
		res.MinHeight, res.MaxHeight = arg.minHeight, arg.maxHeight
		return res, nil
	}
}

// Connector fetches a connector with its modes and usable encoders.
// The first query makes the kernel probe the output.
func (c *Card) Connector(id uint32) (*Connector, error) {
	for {
		probe := getConnector{connectorID: id}
		if err := c.ioctl("get connector", ioctlModeGetConnector, unsafe.Pointer(&probe)); err != nil {
			return nil, err
		}

		modes := make([]ModeInfo, probe.countModes)
		encoders := make([]uint32, probe.countEncoders)
		arg := getConnector{
			connectorID:   id,
			modesPtr:      slicePtr(modes),
			encodersPtr:   slicePtr(encoders),
			countModes:    probe.countModes,
			countEncoders: probe.countEncoders,
		}
		err := c.ioctl("get connector", ioctlModeGetConnector, unsafe.Pointer(&arg))
		runtime.KeepAlive(modes)
		runtime.KeepAlive(encoders)
		if err != nil {
			return nil, err
		}
		if arg.countModes > probe.countModes || arg.countEncoders > probe.countEncoders {
			continue
		}

		return &Connector{
			ID:         arg.connectorID,
			EncoderID:  arg.encoderID,
			Type:       ConnectorType(arg.connectorType),
			TypeID:     arg.connectorTypeID,
			Connection: Connection(arg.connection),
			MMWidth:    arg.mmWidth,
			MMHeight:   arg.mmHeight,
			Subpixel:   arg.subpixel,
			Modes:      modes[:arg.countModes],
			Encoders:   encoders[:arg.countEncoders],
		}, nil
	}
}

// Encoder fetches an encoder.
func (c *Card) Encoder(id uint32) (*Encoder, error) {
	arg := getEncoder{encoderID: id}
	if err := c.ioctl("get encoder", ioctlModeGetEncoder, unsafe.Pointer(&arg)); err != nil {
		return nil, err
	}
	return &Encoder{
		ID:             arg.encoderID,
		Type:           arg.encoderType,
		CRTCID:         arg.crtcID,
		PossibleCRTCs:  arg.possibleCRTCs,
		PossibleClones: arg.possibleClones,
	}, nil
}

// CRTC fetches the current configuration of a CRTC.
func (c *Card) CRTC(id uint32) (*CRTC, error) {
	arg := modeCRTC{crtcID: id}
	if err := c.ioctl("get crtc", ioctlModeGetCRTC, unsafe.Pointer(&arg)); err != nil {
		return nil, err
	}
	return &CRTC{
		ID:        arg.crtcID,
		FBID:      arg.fbID,
		X:         arg.x,
		Y:         arg.y,
		GammaSize: arg.gammaSize,
		ModeValid: arg.modeValid != 0,
		Mode:      arg.mode,
	}, nil
}

// SetCRTC configures a CRTC to scan out fbID on the given connectors.
// A nil mode with no connectors disables the CRTC.
func (c *Card) SetCRTC(crtcID, fbID, x, y uint32, connectors []uint32, mode *ModeInfo) error {
	arg := modeCRTC{
		setConnectorsPtr: slicePtr(connectors),
		countConnectors:  uint32(len(connectors)),
		crtcID:           crtcID,
		fbID:             fbID,
		x:                x,
		y:                y,
	}
	if mode != nil {
		arg.mode = *mode
		arg.modeValid = 1
	}
	err := c.ioctl("set crtc", ioctlModeSetCRTC, unsafe.Pointer(&arg))
	runtime.KeepAlive(connectors)
	return err
}

// AddFB registers a buffer object as a framebuffer and returns its id.
func (c *Card) AddFB(width, height, pitch uint32, depth, bpp uint8, handle uint32) (uint32, error) {
	arg := fbCmd{
		width:  width,
		height: height,
		pitch:  pitch,
		bpp:    uint32(bpp),
		depth:  uint32(depth),
		handle: handle,
	}
	if err := c.ioctl("add fb", ioctlModeAddFB, unsafe.Pointer(&arg)); err != nil {
		return 0, err
	}
	return arg.fbID, nil
}

// RmFB removes a framebuffer. Removing the framebuffer a CRTC is scanning
// out disables that CRTC.
func (c *Card) RmFB(fbID uint32) error {
	arg := fbID
	return c.ioctl("rm fb", ioctlModeRmFB, unsafe.Pointer(&arg))
}

// PageFlip schedules crtcID to switch to fbID at the next vertical blank.
// With PageFlipEvent set, completion is reported on the event stream
// carrying userData.
func (c *Card) PageFlip(crtcID, fbID, flags uint32, userData uint64) error {
	arg := pageFlip{
		crtcID:   crtcID,
		fbID:     fbID,
		flags:    flags,
		userData: userData,
	}
	return c.ioctl("page flip", ioctlModePageFlip, unsafe.Pointer(&arg))
}
