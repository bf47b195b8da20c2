// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"github.com/gogpu/stereo/egl"
	"github.com/gogpu/stereo/kms"
)

// Display is the kernel mode-setting device the pipeline drives.
// *kms.Card implements it.
type Display interface {
	Fd() int
	Resources() (*kms.Resources, error)
	Connector(id uint32) (*kms.Connector, error)
	Encoder(id uint32) (*kms.Encoder, error)
	CRTC(id uint32) (*kms.CRTC, error)
	SetCRTC(crtcID, fbID, x, y uint32, connectors []uint32, mode *kms.ModeInfo) error
	AddFB(width, height, pitch uint32, depth, bpp uint8, handle uint32) (uint32, error)
	RmFB(fbID uint32) error
	PageFlip(crtcID, fbID, flags uint32, userData uint64) error
	HandleEvents(h *kms.EventHandler) error
	Close() error
}

// Platform allocates scan-out buffers and creates rendering contexts on
// them. *egl.Library implements it.
type Platform interface {
	CreateDevice(fd int) (egl.Device, error)
	DestroyDevice(dev egl.Device)
	CreateSurface(dev egl.Device, width, height, format, flags uint32) (egl.Surface, error)
	DestroySurface(surf egl.Surface)
	LockFrontBuffer(surf egl.Surface) (egl.BO, error)
	ReleaseBuffer(surf egl.Surface, bo egl.BO)
	BufferInfo(bo egl.BO) egl.BufferInfo

	GetDisplay(dev egl.Device) (egl.Display, error)
	Initialize(dpy egl.Display) (major, minor int32, err error)
	Terminate(dpy egl.Display) error
	ChooseConfigs(dpy egl.Display, attribs []int32, limit int) ([]egl.Config, error)
	ConfigAttrib(dpy egl.Display, cfg egl.Config, attr int32) (int32, error)
	CreateWindowSurface(dpy egl.Display, cfg egl.Config, surf egl.Surface) (egl.WindowSurface, error)
	DestroyWindowSurface(dpy egl.Display, ws egl.WindowSurface) error
	CreateContext(dpy egl.Display, cfg egl.Config, attribs []int32) (egl.Context, error)
	DestroyContext(dpy egl.Display, ctx egl.Context) error
	MakeCurrent(dpy egl.Display, ws egl.WindowSurface, ctx egl.Context) error
	ReleaseCurrent(dpy egl.Display) error
	SwapBuffers(dpy egl.Display, ws egl.WindowSurface) error
}

var (
	_ Display  = (*kms.Card)(nil)
	_ Platform = (*egl.Library)(nil)
)
