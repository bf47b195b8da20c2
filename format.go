// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"fmt"

	"github.com/gogpu/stereo/kms"
)

// Format is a 3D transmission format. Its value is the mode flag bits the
// kernel uses for it, so a mode's format is its flags masked with
// kms.Flag3DMask.
type Format uint32

// The fixed format catalog.
const (
	FormatNone              = Format(kms.Flag3DNone)
	FormatFramePacking      = Format(kms.Flag3DFramePacking)
	FormatFieldAlternative  = Format(kms.Flag3DFieldAlternative)
	FormatLineAlternative   = Format(kms.Flag3DLineAlternative)
	FormatSideBySideFull    = Format(kms.Flag3DSideBySideFull)
	FormatLDepth            = Format(kms.Flag3DLDepth)
	FormatLDepthGfxGfxDepth = Format(kms.Flag3DLDepthGfxGfxDepth)
	FormatTopAndBottom      = Format(kms.Flag3DTopAndBottom)
	FormatSideBySideHalf    = Format(kms.Flag3DSideBySideHalf)
)

type formatInfo struct {
	format Format
	short  string
	long   string
	// rank orders formats the layout resolver supports; -1 marks formats
	// that are never selected.
	rank int
}

var catalog = [...]formatInfo{
	{FormatNone, "none", "none", 0},
	{FormatFramePacking, "fp", "frame packing", 2},
	{FormatFieldAlternative, "fa", "field alternative", -1},
	{FormatLineAlternative, "la", "line alternative", -1},
	{FormatSideBySideFull, "sbsf", "side by side full", 2},
	{FormatLDepth, "ld", "l depth", -1},
	{FormatLDepthGfxGfxDepth, "ldggd", "l depth gfx gfx depth", -1},
	{FormatTopAndBottom, "tb", "top and bottom", 1},
	{FormatSideBySideHalf, "sbsh", "side by side half", 1},
}

func (f Format) info() (formatInfo, bool) {
	for _, fi := range catalog {
		if fi.format == f {
			return fi, true
		}
	}
	return formatInfo{}, false
}

// Formats returns the catalog in kernel flag order.
func Formats() []Format {
	out := make([]Format, len(catalog))
	for i, fi := range catalog {
		out[i] = fi.format
	}
	return out
}

// ShortName returns the command line name, e.g. "sbsh".
func (f Format) ShortName() string {
	if fi, ok := f.info(); ok {
		return fi.short
	}
	return fmt.Sprintf("0x%x", uint32(f))
}

// String returns the descriptive name, e.g. "side by side half".
func (f Format) String() string {
	if fi, ok := f.info(); ok {
		return fi.long
	}
	return fmt.Sprintf("Format(0x%x)", uint32(f))
}

// Valid reports whether f is in the catalog.
func (f Format) Valid() bool {
	_, ok := f.info()
	return ok
}

// Supported reports whether a layout exists for f.
func (f Format) Supported() bool {
	return f.rank() >= 0
}

func (f Format) rank() int {
	if fi, ok := f.info(); ok {
		return fi.rank
	}
	return -1
}

// ParseFormat looks a format up by its short name.
func ParseFormat(short string) (Format, error) {
	for _, fi := range catalog {
		if fi.short == short {
			return fi.format, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, short)
}

// FormatOf returns the transmission format of a mode.
func FormatOf(m *kms.ModeInfo) Format {
	return Format(m.Stereo3D())
}
