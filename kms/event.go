// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package kms

import (
	"encoding/binary"
	"time"

	"golang.org/x/sys/unix"
)

// Event types on the card's event stream (DRM_EVENT_*).
const (
	EventVBlank        uint32 = 0x01
	EventFlipComplete  uint32 = 0x02
	EventCRTCSequence  uint32 = 0x03
	eventHeaderSize           = 8
	eventVBlankSize           = 32
	eventReadBufferLen        = 1024
)

// Event is a decoded vblank or flip-completion record
// (struct drm_event_vblank).
type Event struct {
	Type     uint32
	UserData uint64
	Sec      uint32
	Usec     uint32
	Sequence uint32
	CRTCID   uint32
}

// Time returns the vblank timestamp carried by the event.
func (e Event) Time() time.Time {
	return time.Unix(int64(e.Sec), int64(e.Usec)*int64(time.Microsecond))
}

// EventHandler dispatches decoded events. Nil callbacks drop the event.
type EventHandler struct {
	VBlank   func(Event)
	PageFlip func(Event)
}

// ParseEvents decodes every record in buf and dispatches it to h.
// Records of unknown type are skipped.
func ParseEvents(buf []byte, h *EventHandler) error {
	for len(buf) > 0 {
		if len(buf) < eventHeaderSize {
			return ErrTruncatedEvent
		}
		typ := binary.NativeEndian.Uint32(buf[0:4])
		length := int(binary.NativeEndian.Uint32(buf[4:8]))
		if length < eventHeaderSize || length > len(buf) {
			return ErrTruncatedEvent
		}
		rec := buf[:length]
		buf = buf[length:]

		var fn func(Event)
		switch typ {
		case EventVBlank:
			fn = h.VBlank
		case EventFlipComplete:
			fn = h.PageFlip
		default:
			continue
		}
		if len(rec) < eventVBlankSize {
			return ErrTruncatedEvent
		}
		if fn == nil {
			continue
		}
		fn(Event{
			Type:     typ,
			UserData: binary.NativeEndian.Uint64(rec[8:16]),
			Sec:      binary.NativeEndian.Uint32(rec[16:20]),
			Usec:     binary.NativeEndian.Uint32(rec[20:24]),
			Sequence: binary.NativeEndian.Uint32(rec[24:28]),
			CRTCID:   binary.NativeEndian.Uint32(rec[28:32]),
		})
	}
	return nil
}

// HandleEvents blocks until the card has events to deliver, reads one batch
// and dispatches it to h. There is no timeout.
func (c *Card) HandleEvents(h *EventHandler) error {
	if c.closed {
		return ErrClosed
	}
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLIN}}
	for {
		_, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return opError("poll", err)
		}
		break
	}

	buf := make([]byte, eventReadBufferLen)
	for {
		n, err := unix.Read(c.fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return opError("read events", err)
		}
		return ParseEvents(buf[:n], h)
	}
}
