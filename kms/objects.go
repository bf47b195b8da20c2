// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kms

import "fmt"

// Resources lists the mode-setting objects exposed by a card.
type Resources struct {
	FBs        []uint32
	CRTCs      []uint32
	Connectors []uint32
	Encoders   []uint32

	MinWidth, MaxWidth   uint32
	MinHeight, MaxHeight uint32
}

// Connection is the electrical state of a connector.
type Connection uint32

// Connection states (DRM_MODE_CONNECTED and friends).
const (
	Connected         Connection = 1
	Disconnected      Connection = 2
	UnknownConnection Connection = 3
)

func (c Connection) String() string {
	switch c {
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	case UnknownConnection:
		return "unknown"
	default:
		return fmt.Sprintf("Connection(%d)", uint32(c))
	}
}

// ConnectorType identifies the physical port (DRM_MODE_CONNECTOR_*).
type ConnectorType uint32

var connectorTypeNames = [...]string{
	"Unknown", "VGA", "DVI-I", "DVI-D", "DVI-A", "Composite", "SVIDEO",
	"LVDS", "Component", "DIN", "DP", "HDMI-A", "HDMI-B", "TV", "eDP",
	"Virtual", "DSI", "DPI", "Writeback", "SPI", "USB",
}

func (t ConnectorType) String() string {
	if int(t) < len(connectorTypeNames) {
		return connectorTypeNames[t]
	}
	return fmt.Sprintf("ConnectorType(%d)", uint32(t))
}

// Connector is a display output port and the modes it advertises.
type Connector struct {
	ID         uint32
	EncoderID  uint32
	Type       ConnectorType
	TypeID     uint32
	Connection Connection
	MMWidth    uint32
	MMHeight   uint32
	Subpixel   uint32

	Modes    []ModeInfo
	Encoders []uint32
}

// Name returns the conventional connector name, e.g. "HDMI-A-1".
func (c *Connector) Name() string {
	return fmt.Sprintf("%s-%d", c.Type, c.TypeID)
}

// Encoder routes a CRTC to a connector.
type Encoder struct {
	ID             uint32
	Type           uint32
	CRTCID         uint32
	PossibleCRTCs  uint32
	PossibleClones uint32
}

// CRTC is the state of a scan-out engine.
type CRTC struct {
	ID        uint32
	FBID      uint32
	X, Y      uint32
	GammaSize uint32
	ModeValid bool
	Mode      ModeInfo
}

// Client capabilities (DRM_CLIENT_CAP_*).
const (
	ClientCapStereo3D        uint64 = 1
	ClientCapUniversalPlanes uint64 = 2
	ClientCapAtomic          uint64 = 3
)

// Page flip flags (DRM_MODE_PAGE_FLIP_*).
const (
	PageFlipEvent uint32 = 0x01
	PageFlipAsync uint32 = 0x02
)
