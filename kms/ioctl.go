// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kms

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl direction bits, as in <asm-generic/ioctl.h>.
const (
	iocWrite = 1
	iocRead  = 2

	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	drmIoctlBase = 'd'
)

func ioc(dir, nr, size uintptr) uintptr {
	return dir<<iocDirShift | size<<iocSizeShift | drmIoctlBase<<iocTypeShift | nr<<iocNRShift
}

// Request numbers. Sizes come from the wire structs so a layout mistake
// shows up as a wrong request number in tests.
var (
	ioctlSetClientCap     = ioc(iocWrite, 0x0d, unsafe.Sizeof(setClientCap{}))
	ioctlModeGetResources = ioc(iocRead|iocWrite, 0xa0, unsafe.Sizeof(cardRes{}))
	ioctlModeGetCRTC      = ioc(iocRead|iocWrite, 0xa1, unsafe.Sizeof(modeCRTC{}))
	ioctlModeSetCRTC      = ioc(iocRead|iocWrite, 0xa2, unsafe.Sizeof(modeCRTC{}))
	ioctlModeGetEncoder   = ioc(iocRead|iocWrite, 0xa6, unsafe.Sizeof(getEncoder{}))
	ioctlModeGetConnector = ioc(iocRead|iocWrite, 0xa7, unsafe.Sizeof(getConnector{}))
	ioctlModeAddFB        = ioc(iocRead|iocWrite, 0xae, unsafe.Sizeof(fbCmd{}))
	ioctlModeRmFB         = ioc(iocRead|iocWrite, 0xaf, unsafe.Sizeof(uint32(0)))
	ioctlModePageFlip     = ioc(iocRead|iocWrite, 0xb0, unsafe.Sizeof(pageFlip{}))
)

// struct drm_set_client_cap
type setClientCap struct {
	capability uint64
	value      uint64
}

// struct drm_mode_card_res
type cardRes struct {
	fbIDPtr        uint64
	crtcIDPtr      uint64
	connectorIDPtr uint64
	encoderIDPtr   uint64
	countFBs       uint32
	countCRTCs     uint32
	countConns     uint32
	countEncoders  uint32
	minWidth       uint32
	maxWidth       uint32
	minHeight      uint32
	maxHeight      uint32
}

// struct drm_mode_crtc
type modeCRTC struct {
	setConnectorsPtr uint64
	countConnectors  uint32
	crtcID           uint32
	fbID             uint32
	x                uint32
	y                uint32
	gammaSize        uint32
	modeValid        uint32
	mode             ModeInfo
}

// struct drm_mode_get_encoder
type getEncoder struct {
	encoderID      uint32
	encoderType    uint32
	crtcID         uint32
	possibleCRTCs  uint32
	possibleClones uint32
}

// struct drm_mode_get_connector
type getConnector struct {
	encodersPtr     uint64
	modesPtr        uint64
	propsPtr        uint64
	propValuesPtr   uint64
	countModes      uint32
	countProps      uint32
	countEncoders   uint32
	encoderID       uint32
	connectorID     uint32
	connectorType   uint32
	connectorTypeID uint32
	connection      uint32
	mmWidth         uint32
	mmHeight        uint32
	subpixel        uint32
	pad             uint32
}

// struct drm_mode_fb_cmd
type fbCmd struct {
	fbID   uint32
	width  uint32
	height uint32
	pitch  uint32
	bpp    uint32
	depth  uint32
	handle uint32
}

// struct drm_mode_crtc_page_flip
type pageFlip struct {
	crtcID   uint32
	fbID     uint32
	flags    uint32
	reserved uint32
	userData uint64
}

// ioctl issues a DRM request, restarting it when interrupted the way
// libdrm's drmIoctl does.
func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
		switch errno {
		case 0:
			return nil
		case unix.EINTR, unix.EAGAIN:
			continue
		default:
			return errno
		}
	}
}

// slicePtr returns the address of the first element as the kernel expects it
// in a __u64 pointer field. Callers keep s alive across the ioctl.
func slicePtr[T any](s []T) uint64 {
	if len(s) == 0 {
		return 0
	}
	return uint64(uintptr(unsafe.Pointer(&s[0])))
}
