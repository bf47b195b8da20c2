// Package stereo drives a stereoscopic display directly through kernel
// mode setting, without a window system.
//
// # Overview
//
// The pipeline opens a DRM card, picks a connector and the mode with the
// best 3D transmission format, derives where each eye goes in the scan-out
// buffer, allocates that buffer through GBM with a GLES 2 context bound to
// it, and presents frames with vsynced page flips.
//
// # Quick Start
//
//	runtime.LockOSThread()
//
//	lib, _ := egl.Load()
//	p, err := stereo.Open(stereo.Options{Platform: lib})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	err = p.Run(ctx, renderer)
//
// # Architecture
//
// The package is organized as:
//   - Enumeration: OpenDevice, ListConnectors, SelectMode, SelectConnector
//   - Layout: Format, ComputeLayout, Layout, Camera
//   - Binding: FindCRTC, Device
//   - Presentation: Context, Present
//   - Loop: Pipeline, FrameRenderer
//
// Kernel access lives in package kms, buffer and context creation in
// package egl.
//
// # Formats
//
// Modes are ranked none < side by side half = top and bottom < side by side
// full = frame packing. Equal ranks keep the mode listed first by the
// connector, which depends on the display's EDID. Field alternative, line
// alternative and the depth formats have no layout and are never selected.
//
// # Coordinate System
//
// Layouts and viewports use the rendering API convention:
//   - Origin (0,0) at the bottom-left of the buffer
//   - X increases right
//   - Y increases up
//
// # Threading
//
// Everything is single threaded. The rendering context is current on the
// OS thread that created it; lock it with runtime.LockOSThread before Open.
// Present blocks until the page flip completes and cannot be interrupted.
package stereo
