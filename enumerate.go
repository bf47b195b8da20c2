// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"fmt"

	"github.com/gogpu/stereo/kms"
)

// DefaultDevicePath is the primary card node.
const DefaultDevicePath = "/dev/dri/card0"

// OpenDevice opens a card node and enables stereo modes on it. Without
// the stereo client capability the kernel hides 3D modes.
func OpenDevice(path string) (*kms.Card, error) {
	if path == "" {
		path = DefaultDevicePath
	}
	card, err := kms.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stereo: open device: %w", err)
	}
	if err := card.SetClientCap(kms.ClientCapStereo3D, 1); err != nil {
		_ = card.Close()
		return nil, fmt.Errorf("stereo: enable stereo modes on %s: %w", path, err)
	}
	Logger().Debug("stereo: opened device", "path", path, "fd", card.Fd())
	return card, nil
}

// ListConnectors fetches every connector of the card. Connectors that
// cannot be queried are logged and skipped.
func ListConnectors(d Display, res *kms.Resources) []*kms.Connector {
	conns := make([]*kms.Connector, 0, len(res.Connectors))
	for i, id := range res.Connectors {
		conn, err := d.Connector(id)
		if err != nil {
			Logger().Warn("stereo: cannot retrieve connector", "index", i, "id", id, "err", err)
			continue
		}
		conns = append(conns, conn)
	}
	return conns
}

// SelectMode picks the mode with the best stereo format. When preferred is
// non-nil only modes of that format are eligible. Among equally ranked
// formats the first mode listed wins.
func SelectMode(conn *kms.Connector, preferred *Format) (kms.ModeInfo, error) {
	if conn.Connection != kms.Connected {
		return kms.ModeInfo{}, fmt.Errorf("%w: connector %d is %v", ErrNotFound, conn.ID, conn.Connection)
	}

	best, bestRank := -1, -1
	for i := range conn.Modes {
		f := FormatOf(&conn.Modes[i])
		if preferred != nil && f != *preferred {
			continue
		}
		if r := f.rank(); r > bestRank {
			best, bestRank = i, r
		}
	}
	if best < 0 {
		if preferred != nil {
			return kms.ModeInfo{}, fmt.Errorf("%w: no %v mode on connector %d", ErrNotFound, *preferred, conn.ID)
		}
		return kms.ModeInfo{}, fmt.Errorf("%w: no valid mode for connector %d", ErrNotFound, conn.ID)
	}
	return conn.Modes[best], nil
}

// SelectConnector picks the output to drive. With a non-zero id only that
// connector is considered; otherwise the first connector with an eligible
// mode is used.
func SelectConnector(d Display, res *kms.Resources, id uint32, preferred *Format) (*kms.Connector, kms.ModeInfo, error) {
	conns := ListConnectors(d, res)

	if id != 0 {
		for _, conn := range conns {
			if conn.ID != id {
				continue
			}
			mode, err := SelectMode(conn, preferred)
			if err != nil {
				return nil, kms.ModeInfo{}, err
			}
			return conn, mode, nil
		}
		return nil, kms.ModeInfo{}, fmt.Errorf("%w: no connector with id %d", ErrNotFound, id)
	}

	for _, conn := range conns {
		mode, err := SelectMode(conn, preferred)
		if err != nil {
			Logger().Debug("stereo: ignoring connector", "connector", conn.ID, "name", conn.Name(), "err", err)
			continue
		}
		return conn, mode, nil
	}
	return nil, kms.ModeInfo{}, fmt.Errorf("%w: no usable connector", ErrNotFound)
}
