// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"errors"
	"testing"

	"github.com/gogpu/stereo/kms"
	"golang.org/x/sys/unix"
)

func TestFindCRTC(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(d *fakeDisplay, conn *kms.Connector)
		want    uint32
		wantErr error
	}{
		{
			name: "current encoder",
			want: 41,
		},
		{
			name: "unbound encoder uses possible mask",
			setup: func(d *fakeDisplay, conn *kms.Connector) {
				d.encoders[20].CRTCID = 0
			},
			want: 40,
		},
		{
			name: "mask selects second crtc",
			setup: func(d *fakeDisplay, conn *kms.Connector) {
				conn.EncoderID = 0
				d.encoders[20].PossibleCRTCs = 0b10
			},
			want: 41,
		},
		{
			name: "failing encoder skipped",
			setup: func(d *fakeDisplay, conn *kms.Connector) {
				conn.EncoderID = 0
				conn.Encoders = []uint32{21, 22}
				d.encoderErr = map[uint32]error{21: &kms.Error{Op: "get encoder", Errno: unix.ENOENT}}
				d.encoders[22] = &kms.Encoder{ID: 22, PossibleCRTCs: 0b10}
			},
			want: 41,
		},
		{
			name: "no possible crtc",
			setup: func(d *fakeDisplay, conn *kms.Connector) {
				conn.EncoderID = 0
				d.encoders[20].PossibleCRTCs = 0b100
			},
			wantErr: ErrNoController,
		},
		{
			name: "no encoders",
			setup: func(d *fakeDisplay, conn *kms.Connector) {
				conn.EncoderID = 0
				conn.Encoders = nil
			},
			wantErr: ErrNoController,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDisplay()
			conn := d.connectors[30]
			if tt.setup != nil {
				tt.setup(d, conn)
			}
			got, err := FindCRTC(d, d.res, conn)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FindCRTC() = %d, %v; want %v", got, err, tt.wantErr)
				}
				if !errors.Is(err, ErrNotFound) {
					t.Error("ErrNoController does not match ErrNotFound")
				}
				return
			}
			if err != nil {
				t.Fatalf("FindCRTC() = %v", err)
			}
			if got != tt.want {
				t.Errorf("FindCRTC() = %d, want %d", got, tt.want)
			}
		})
	}
}
