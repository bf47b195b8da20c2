// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kms

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"
)

func TestIoctlNumbers(t *testing.T) {
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"SET_CLIENT_CAP", ioctlSetClientCap, 0x4010640d},
		{"MODE_GETRESOURCES", ioctlModeGetResources, 0xc04064a0},
		{"MODE_GETCRTC", ioctlModeGetCRTC, 0xc06864a1},
		{"MODE_SETCRTC", ioctlModeSetCRTC, 0xc06864a2},
		{"MODE_GETENCODER", ioctlModeGetEncoder, 0xc01464a6},
		{"MODE_GETCONNECTOR", ioctlModeGetConnector, 0xc05064a7},
		{"MODE_ADDFB", ioctlModeAddFB, 0xc01c64ae},
		{"MODE_RMFB", ioctlModeRmFB, 0xc00464af},
		{"MODE_PAGE_FLIP", ioctlModePageFlip, 0xc01864b0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("DRM_IOCTL_%s = %#x, want %#x", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestWireSizes(t *testing.T) {
	tests := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"drm_mode_modeinfo", unsafe.Sizeof(ModeInfo{}), 68},
		{"drm_mode_crtc", unsafe.Sizeof(modeCRTC{}), 104},
		{"drm_mode_get_connector", unsafe.Sizeof(getConnector{}), 80},
		{"drm_mode_card_res", unsafe.Sizeof(cardRes{}), 64},
		{"drm_mode_get_encoder", unsafe.Sizeof(getEncoder{}), 20},
		{"drm_mode_fb_cmd", unsafe.Sizeof(fbCmd{}), 28},
		{"drm_mode_crtc_page_flip", unsafe.Sizeof(pageFlip{}), 24},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("sizeof(%s) = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestModeInfoName(t *testing.T) {
	var m ModeInfo
	m.SetName("1920x1080")
	if got := m.Name(); got != "1920x1080" {
		t.Errorf("Name() = %q, want %q", got, "1920x1080")
	}

	m.SetName(strings.Repeat("x", 40))
	if got := len(m.Name()); got != modeNameLen-1 {
		t.Errorf("long name length = %d, want %d", got, modeNameLen-1)
	}
}

func TestModeInfoStereo3D(t *testing.T) {
	m := ModeInfo{HDisplay: 1920, VDisplay: 1080, VRefresh: 24, Flags: 0x5 | Flag3DFramePacking}
	if got := m.Stereo3D(); got != Flag3DFramePacking {
		t.Errorf("Stereo3D() = %#x, want %#x", got, Flag3DFramePacking)
	}
	if got := m.String(); got != "1920x1080@24" {
		t.Errorf("String() = %q", got)
	}
	if m.Preferred() {
		t.Error("Preferred() = true for a mode without the preferred bit")
	}
}

func TestConnectorName(t *testing.T) {
	c := Connector{Type: 11, TypeID: 1}
	if got := c.Name(); got != "HDMI-A-1" {
		t.Errorf("Name() = %q, want HDMI-A-1", got)
	}
	if got := ConnectorType(99).String(); got != "ConnectorType(99)" {
		t.Errorf("unknown type = %q", got)
	}
	if got := Disconnected.String(); got != "disconnected" {
		t.Errorf("Disconnected.String() = %q", got)
	}
}

func putEvent(buf []byte, typ uint32, length uint32, userData uint64, seq, crtc uint32) []byte {
	rec := make([]byte, length)
	binary.NativeEndian.PutUint32(rec[0:4], typ)
	binary.NativeEndian.PutUint32(rec[4:8], length)
	if length >= eventVBlankSize {
		binary.NativeEndian.PutUint64(rec[8:16], userData)
		binary.NativeEndian.PutUint32(rec[16:20], 100)
		binary.NativeEndian.PutUint32(rec[20:24], 250)
		binary.NativeEndian.PutUint32(rec[24:28], seq)
		binary.NativeEndian.PutUint32(rec[28:32], crtc)
	}
	return append(buf, rec...)
}

func TestParseEvents(t *testing.T) {
	var buf []byte
	buf = putEvent(buf, EventVBlank, 32, 1, 10, 40)
	buf = putEvent(buf, 0x80000000, 16, 0, 0, 0) // vendor event, skipped
	buf = putEvent(buf, EventFlipComplete, 32, 0xfeed, 11, 41)

	var vblanks, flips []Event
	h := &EventHandler{
		VBlank:   func(e Event) { vblanks = append(vblanks, e) },
		PageFlip: func(e Event) { flips = append(flips, e) },
	}
	if err := ParseEvents(buf, h); err != nil {
		t.Fatalf("ParseEvents() = %v", err)
	}
	if len(vblanks) != 1 || vblanks[0].Sequence != 10 || vblanks[0].CRTCID != 40 {
		t.Errorf("vblanks = %+v", vblanks)
	}
	if len(flips) != 1 {
		t.Fatalf("got %d flip events, want 1", len(flips))
	}
	f := flips[0]
	if f.UserData != 0xfeed || f.Sequence != 11 || f.CRTCID != 41 {
		t.Errorf("flip = %+v", f)
	}
	if got := f.Time().UnixMicro(); got != 100*1_000_000+250 {
		t.Errorf("Time() = %d µs, want %d", got, 100*1_000_000+250)
	}
}

func TestParseEventsNilCallback(t *testing.T) {
	buf := putEvent(nil, EventFlipComplete, 32, 1, 1, 1)
	if err := ParseEvents(buf, &EventHandler{}); err != nil {
		t.Errorf("ParseEvents() with no callbacks = %v", err)
	}
}

func TestParseEventsTruncated(t *testing.T) {
	full := putEvent(nil, EventFlipComplete, 32, 1, 1, 1)
	tests := []struct {
		name string
		buf  []byte
	}{
		{"short header", full[:5]},
		{"cut record", full[:20]},
		{"length below header", func() []byte {
			b := append([]byte(nil), full...)
			binary.NativeEndian.PutUint32(b[4:8], 4)
			return b
		}()},
		{"flip record too small", putEvent(nil, EventFlipComplete, 16, 0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseEvents(tt.buf, &EventHandler{PageFlip: func(Event) {}})
			if !errors.Is(err, ErrTruncatedEvent) {
				t.Errorf("ParseEvents() = %v, want ErrTruncatedEvent", err)
			}
		})
	}
}

func TestErrorCarriesErrno(t *testing.T) {
	err := opError("page flip", unix.EBUSY)
	var kerr *Error
	if !errors.As(err, &kerr) {
		t.Fatalf("opError() = %T, want *Error", err)
	}
	if !errors.Is(err, unix.EBUSY) {
		t.Error("errors.Is(err, EBUSY) = false")
	}
	if !strings.Contains(err.Error(), "errno 16") {
		t.Errorf("Error() = %q, want errno code", err.Error())
	}
}

func TestClosedCard(t *testing.T) {
	c := &Card{fd: -1, closed: true}
	if c.Fd() != -1 {
		t.Errorf("Fd() = %d, want -1", c.Fd())
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if _, err := c.Resources(); !errors.Is(err, ErrClosed) {
		t.Errorf("Resources() on closed card = %v, want ErrClosed", err)
	}
	if err := c.HandleEvents(&EventHandler{}); !errors.Is(err, ErrClosed) {
		t.Errorf("HandleEvents() on closed card = %v, want ErrClosed", err)
	}
}

func TestOpenMissingNode(t *testing.T) {
	_, err := Open("/nonexistent/dri/card9")
	if !errors.Is(err, unix.ENOENT) {
		t.Errorf("Open() = %v, want ENOENT", err)
	}
}
