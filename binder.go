// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"fmt"

	"github.com/gogpu/stereo/kms"
)

// FindCRTC returns a CRTC able to drive conn. The CRTC already bound to
// the connector's current encoder is preferred; otherwise the first CRTC
// allowed by any of the connector's encoders is used.
func FindCRTC(d Display, res *kms.Resources, conn *kms.Connector) (uint32, error) {
	if conn.EncoderID != 0 {
		enc, err := d.Encoder(conn.EncoderID)
		if err != nil {
			Logger().Debug("stereo: cannot retrieve current encoder", "encoder", conn.EncoderID, "err", err)
		} else if enc.CRTCID > 0 {
			return enc.CRTCID, nil
		}
	}

	for i, encID := range conn.Encoders {
		enc, err := d.Encoder(encID)
		if err != nil {
			Logger().Warn("stereo: cannot retrieve encoder", "index", i, "id", encID, "err", err)
			continue
		}
		for j, crtc := range res.CRTCs {
			if j >= 32 || enc.PossibleCRTCs&(1<<j) == 0 {
				continue
			}
			if crtc > 0 {
				return crtc, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: connector %d", ErrNoController, conn.ID)
}
