// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package kms is a small client for the Linux kernel mode-setting (DRM/KMS)
// interface.
//
// It talks to a DRM card node directly through ioctls and covers exactly what
// a single-output, page-flipped renderer needs:
//
//   - client capabilities (stereo 3D modes are hidden unless requested)
//   - resources, connectors, encoders and CRTCs
//   - framebuffer registration and removal
//   - CRTC configuration and asynchronous page flips
//   - decoding of the card's event stream (vblank and flip completion)
//
// Structures that cross the kernel boundary mirror the kernel UAPI layout
// byte for byte; see ModeInfo.
//
// # Thread Safety
//
// A Card is not safe for concurrent use. The rendering loop that owns it is
// expected to be the only caller.
package kms
