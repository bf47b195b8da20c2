// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"errors"
	"testing"

	"github.com/gogpu/stereo/kms"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		short string
		want  Format
		long  string
	}{
		{"none", FormatNone, "none"},
		{"fp", FormatFramePacking, "frame packing"},
		{"fa", FormatFieldAlternative, "field alternative"},
		{"la", FormatLineAlternative, "line alternative"},
		{"sbsf", FormatSideBySideFull, "side by side full"},
		{"ld", FormatLDepth, "l depth"},
		{"ldggd", FormatLDepthGfxGfxDepth, "l depth gfx gfx depth"},
		{"tb", FormatTopAndBottom, "top and bottom"},
		{"sbsh", FormatSideBySideHalf, "side by side half"},
	}
	for _, tt := range tests {
		t.Run(tt.short, func(t *testing.T) {
			got, err := ParseFormat(tt.short)
			if err != nil {
				t.Fatalf("ParseFormat(%q) = %v", tt.short, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %#x, want %#x", tt.short, uint32(got), uint32(tt.want))
			}
			if got.ShortName() != tt.short || got.String() != tt.long {
				t.Errorf("names = %q/%q, want %q/%q", got.ShortName(), got.String(), tt.short, tt.long)
			}
		})
	}

	if _, err := ParseFormat("anaglyph"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(anaglyph) = %v, want ErrUnknownFormat", err)
	}
}

func TestFormatValues(t *testing.T) {
	if got := uint32(FormatSideBySideHalf); got != 8<<14 {
		t.Errorf("FormatSideBySideHalf = %#x, want %#x", got, 8<<14)
	}
	if len(Formats()) != 9 {
		t.Errorf("len(Formats()) = %d, want 9", len(Formats()))
	}
	if Format(0x1f << 14).Valid() {
		t.Error("out-of-catalog value reported valid")
	}
}

func TestFormatOf(t *testing.T) {
	m := kms.ModeInfo{Flags: 0x5 | kms.Flag3DTopAndBottom}
	if got := FormatOf(&m); got != FormatTopAndBottom {
		t.Errorf("FormatOf() = %v, want top and bottom", got)
	}
}
