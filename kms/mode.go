// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kms

import (
	"bytes"
	"fmt"
)

// Mode flags describing the 3D transmission format (DRM_MODE_FLAG_3D_*).
// They are only reported once ClientCapStereo3D is enabled.
const (
	Flag3DMask              uint32 = 0x1f << 14
	Flag3DNone              uint32 = 0 << 14
	Flag3DFramePacking      uint32 = 1 << 14
	Flag3DFieldAlternative  uint32 = 2 << 14
	Flag3DLineAlternative   uint32 = 3 << 14
	Flag3DSideBySideFull    uint32 = 4 << 14
	Flag3DLDepth            uint32 = 5 << 14
	Flag3DLDepthGfxGfxDepth uint32 = 6 << 14
	Flag3DTopAndBottom      uint32 = 7 << 14
	Flag3DSideBySideHalf    uint32 = 8 << 14
)

// Mode type bits (DRM_MODE_TYPE_*).
const (
	ModeTypePreferred uint32 = 1 << 3
	ModeTypeDriver    uint32 = 1 << 6
)

// modeNameLen is DRM_DISPLAY_MODE_LEN.
const modeNameLen = 32

// ModeInfo is a display timing. Its layout matches struct
// drm_mode_modeinfo so it can be handed to the kernel as is.
type ModeInfo struct {
	Clock uint32

	HDisplay   uint16
	HSyncStart uint16
	HSyncEnd   uint16
	HTotal     uint16
	HSkew      uint16

	VDisplay   uint16
	VSyncStart uint16
	VSyncEnd   uint16
	VTotal     uint16
	VScan      uint16

	VRefresh uint32
	Flags    uint32
	Type     uint32

	name [modeNameLen]byte
}

// Name returns the mode name reported by the driver, e.g. "1920x1080".
func (m *ModeInfo) Name() string {
	if i := bytes.IndexByte(m.name[:], 0); i >= 0 {
		return string(m.name[:i])
	}
	return string(m.name[:])
}

// SetName stores name, truncated to the kernel limit.
func (m *ModeInfo) SetName(name string) {
	m.name = [modeNameLen]byte{}
	copy(m.name[:modeNameLen-1], name)
}

// Stereo3D returns the 3D transmission format bits of the mode.
func (m *ModeInfo) Stereo3D() uint32 {
	return m.Flags & Flag3DMask
}

// Preferred reports whether the connector marks this mode as preferred.
func (m *ModeInfo) Preferred() bool {
	return m.Type&ModeTypePreferred != 0
}

func (m ModeInfo) String() string {
	return fmt.Sprintf("%dx%d@%d", m.HDisplay, m.VDisplay, m.VRefresh)
}
