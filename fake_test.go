// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"errors"
	"fmt"

	"github.com/gogpu/stereo/egl"
	"github.com/gogpu/stereo/kms"
	"golang.org/x/sys/unix"
)

type setCRTCCall struct {
	crtc, fb   uint32
	connectors []uint32
	mode       *kms.ModeInfo
}

// fakeDisplay is an in-memory kms card.
type fakeDisplay struct {
	res        *kms.Resources
	connectors map[uint32]*kms.Connector
	encoders   map[uint32]*kms.Encoder
	crtcs      map[uint32]*kms.CRTC

	resErr       error
	connectorErr map[uint32]error
	encoderErr   map[uint32]error
	crtcErr      error
	setCRTCErr   error
	addFBErr     error
	pageFlipErr  error
	handleErr    error
	// dropFlipEvents makes HandleEvents return without completing the flip
	// this many times.
	dropFlipEvents int

	fbs      map[uint32]bool
	nextFB   uint32
	setCRTC  []setCRTCCall
	flips    int
	waits    int
	pending  *kms.Event
	rmFBErr  error
	closed   int
	lastFlip uint32
}

func newFakeDisplay() *fakeDisplay {
	m := mode1080(FormatSideBySideFull)
	return &fakeDisplay{
		res: &kms.Resources{
			CRTCs:      []uint32{40, 41},
			Connectors: []uint32{30},
			Encoders:   []uint32{20},
		},
		connectors: map[uint32]*kms.Connector{
			30: {
				ID: 30, EncoderID: 20, Type: 11, TypeID: 1,
				Connection: kms.Connected,
				Modes:      []kms.ModeInfo{mode1080(FormatNone), m},
				Encoders:   []uint32{20},
			},
		},
		encoders: map[uint32]*kms.Encoder{
			20: {ID: 20, CRTCID: 41, PossibleCRTCs: 0b11},
		},
		crtcs: map[uint32]*kms.CRTC{
			41: {ID: 41, FBID: 7, ModeValid: true, Mode: mode1080(FormatNone)},
		},
		fbs:    map[uint32]bool{},
		nextFB: 100,
	}
}

func (d *fakeDisplay) Fd() int { return 3 }

func (d *fakeDisplay) Resources() (*kms.Resources, error) {
	if d.resErr != nil {
		return nil, d.resErr
	}
	return d.res, nil
}

func (d *fakeDisplay) Connector(id uint32) (*kms.Connector, error) {
	if err := d.connectorErr[id]; err != nil {
		return nil, err
	}
	c, ok := d.connectors[id]
	if !ok {
		return nil, &kms.Error{Op: "get connector", Errno: unix.ENOENT}
	}
	return c, nil
}

func (d *fakeDisplay) Encoder(id uint32) (*kms.Encoder, error) {
	if err := d.encoderErr[id]; err != nil {
		return nil, err
	}
	e, ok := d.encoders[id]
	if !ok {
		return nil, &kms.Error{Op: "get encoder", Errno: unix.ENOENT}
	}
	return e, nil
}

func (d *fakeDisplay) CRTC(id uint32) (*kms.CRTC, error) {
	if d.crtcErr != nil {
		return nil, d.crtcErr
	}
	c, ok := d.crtcs[id]
	if !ok {
		return &kms.CRTC{ID: id}, nil
	}
	cp := *c
	return &cp, nil
}

func (d *fakeDisplay) SetCRTC(crtcID, fbID, x, y uint32, connectors []uint32, mode *kms.ModeInfo) error {
	if d.setCRTCErr != nil {
		return d.setCRTCErr
	}
	d.setCRTC = append(d.setCRTC, setCRTCCall{crtc: crtcID, fb: fbID, connectors: connectors, mode: mode})
	return nil
}

func (d *fakeDisplay) AddFB(width, height, pitch uint32, depth, bpp uint8, handle uint32) (uint32, error) {
	if d.addFBErr != nil {
		return 0, d.addFBErr
	}
	if depth != 24 || bpp != 32 {
		return 0, &kms.Error{Op: "add fb", Errno: unix.EINVAL}
	}
	d.nextFB++
	d.fbs[d.nextFB] = true
	return d.nextFB, nil
}

func (d *fakeDisplay) RmFB(fbID uint32) error {
	if !d.fbs[fbID] {
		return &kms.Error{Op: "rm fb", Errno: unix.ENOENT}
	}
	delete(d.fbs, fbID)
	return d.rmFBErr
}

func (d *fakeDisplay) PageFlip(crtcID, fbID, flags uint32, userData uint64) error {
	if d.pageFlipErr != nil {
		return d.pageFlipErr
	}
	if d.pending != nil {
		return &kms.Error{Op: "page flip", Errno: unix.EBUSY}
	}
	d.flips++
	d.lastFlip = fbID
	if flags&kms.PageFlipEvent != 0 {
		d.pending = &kms.Event{Type: kms.EventFlipComplete, UserData: userData, CRTCID: crtcID, Sequence: uint32(d.flips)}
	}
	return nil
}

func (d *fakeDisplay) HandleEvents(h *kms.EventHandler) error {
	d.waits++
	if d.handleErr != nil {
		return d.handleErr
	}
	if d.dropFlipEvents > 0 {
		d.dropFlipEvents--
		if h.VBlank != nil {
			h.VBlank(kms.Event{Type: kms.EventVBlank})
		}
		return nil
	}
	if d.pending == nil {
		return errors.New("fake: HandleEvents with nothing pending would block forever")
	}
	e := *d.pending
	d.pending = nil
	if h.PageFlip != nil {
		h.PageFlip(e)
	}
	return nil
}

func (d *fakeDisplay) Close() error {
	d.closed++
	return nil
}

// fakePlatform records every call so tests can check acquisition and
// release order.
type fakePlatform struct {
	calls  []string
	failOn map[string]error

	visuals map[egl.Config]int32
	nextBO  egl.BO
	locked  map[egl.BO]bool
	current bool
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		failOn:  map[string]error{},
		visuals: map[egl.Config]int32{0xc1: 0x34325241, 0xc2: int32(egl.FormatXRGB8888)},
		nextBO:  0xb000,
		locked:  map[egl.BO]bool{},
	}
}

func (p *fakePlatform) record(op string) error {
	p.calls = append(p.calls, op)
	return p.failOn[op]
}

func (p *fakePlatform) CreateDevice(fd int) (egl.Device, error) {
	if err := p.record("CreateDevice"); err != nil {
		return 0, err
	}
	return 0xd0, nil
}

func (p *fakePlatform) DestroyDevice(egl.Device) { p.record("DestroyDevice") }

func (p *fakePlatform) CreateSurface(dev egl.Device, w, h, format, flags uint32) (egl.Surface, error) {
	if err := p.record("CreateSurface"); err != nil {
		return 0, err
	}
	if format != egl.FormatXRGB8888 || flags != egl.UseScanout|egl.UseRendering {
		return 0, fmt.Errorf("fake: unexpected surface format %#x flags %#x", format, flags)
	}
	return 0x50, nil
}

func (p *fakePlatform) DestroySurface(egl.Surface) { p.record("DestroySurface") }

func (p *fakePlatform) LockFrontBuffer(egl.Surface) (egl.BO, error) {
	if err := p.record("LockFrontBuffer"); err != nil {
		return 0, err
	}
	if len(p.locked) >= 3 {
		return 0, errors.New("fake: surface has no free buffers")
	}
	p.nextBO++
	p.locked[p.nextBO] = true
	return p.nextBO, nil
}

func (p *fakePlatform) ReleaseBuffer(_ egl.Surface, bo egl.BO) {
	p.record("ReleaseBuffer")
	if !p.locked[bo] {
		panic(fmt.Sprintf("fake: release of unlocked buffer %#x", bo))
	}
	delete(p.locked, bo)
}

func (p *fakePlatform) BufferInfo(bo egl.BO) egl.BufferInfo {
	return egl.BufferInfo{Width: 3840, Height: 1080, Stride: 3840 * 4, Handle: uint32(bo), Format: egl.FormatXRGB8888}
}

func (p *fakePlatform) GetDisplay(egl.Device) (egl.Display, error) {
	if err := p.record("GetDisplay"); err != nil {
		return 0, err
	}
	return 0xe0, nil
}

func (p *fakePlatform) Initialize(egl.Display) (int32, int32, error) {
	if err := p.record("Initialize"); err != nil {
		return 0, 0, err
	}
	return 1, 5, nil
}

func (p *fakePlatform) Terminate(egl.Display) error { return p.record("Terminate") }

func (p *fakePlatform) ChooseConfigs(_ egl.Display, attribs []int32, limit int) ([]egl.Config, error) {
	if err := p.record("ChooseConfigs"); err != nil {
		return nil, err
	}
	return []egl.Config{0xc1, 0xc2}, nil
}

func (p *fakePlatform) ConfigAttrib(_ egl.Display, cfg egl.Config, attr int32) (int32, error) {
	if attr != egl.NativeVisualID {
		return 0, &egl.Error{Op: "eglGetConfigAttrib", Code: egl.BadAttribute}
	}
	return p.visuals[cfg], nil
}

func (p *fakePlatform) CreateWindowSurface(egl.Display, egl.Config, egl.Surface) (egl.WindowSurface, error) {
	if err := p.record("CreateWindowSurface"); err != nil {
		return 0, err
	}
	return 0x60, nil
}

func (p *fakePlatform) DestroyWindowSurface(egl.Display, egl.WindowSurface) error {
	return p.record("DestroyWindowSurface")
}

func (p *fakePlatform) CreateContext(_ egl.Display, _ egl.Config, attribs []int32) (egl.Context, error) {
	if err := p.record("CreateContext"); err != nil {
		return 0, err
	}
	return 0x70, nil
}

func (p *fakePlatform) DestroyContext(egl.Display, egl.Context) error {
	return p.record("DestroyContext")
}

func (p *fakePlatform) MakeCurrent(egl.Display, egl.WindowSurface, egl.Context) error {
	if err := p.record("MakeCurrent"); err != nil {
		return err
	}
	p.current = true
	return nil
}

func (p *fakePlatform) ReleaseCurrent(egl.Display) error {
	p.current = false
	return p.record("ReleaseCurrent")
}

func (p *fakePlatform) SwapBuffers(egl.Display, egl.WindowSurface) error {
	return p.record("SwapBuffers")
}

// since returns the calls recorded after the first n.
func (p *fakePlatform) since(n int) []string {
	return append([]string(nil), p.calls[n:]...)
}

// newTestContext builds a Device and Context on fakes.
func newTestContext(t interface {
	Helper()
	Fatalf(string, ...any)
}) (*fakeDisplay, *fakePlatform, *Device, *Context) {
	t.Helper()
	d := newFakeDisplay()
	p := newFakePlatform()
	dev, err := NewDevice(d, 0, nil)
	if err != nil {
		t.Fatalf("NewDevice() = %v", err)
	}
	ctx, err := NewContext(dev, p)
	if err != nil {
		t.Fatalf("NewContext() = %v", err)
	}
	return d, p, dev, ctx
}
