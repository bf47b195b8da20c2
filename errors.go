// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match them with errors.Is; kernel and EGL failures
// underneath stay reachable with errors.As (*kms.Error, *egl.Error).
var (
	// ErrNotFound reports a missing output: no connected connector, no
	// eligible mode, no connector with the requested id, or no controller.
	ErrNotFound = errors.New("stereo: not found")

	// ErrNoController reports that no CRTC can drive the connector.
	// It matches ErrNotFound.
	ErrNoController = fmt.Errorf("%w: no usable controller", ErrNotFound)

	// ErrResourceCreation is matched by every *StageError.
	ErrResourceCreation = errors.New("stereo: resource creation failed")

	// ErrFrameDropped reports a frame skipped because its buffer could not
	// be registered as a framebuffer. The render loop continues.
	ErrFrameDropped = errors.New("stereo: frame dropped")

	// ErrFatalPresent reports a present failure that ends the run: the
	// initial mode set, a page flip request, or waiting for its completion.
	ErrFatalPresent = errors.New("stereo: present failed")

	// ErrClosed is returned by operations on a closed Device, Context or
	// Pipeline.
	ErrClosed = errors.New("stereo: closed")

	// ErrUnknownFormat is returned by ParseFormat.
	ErrUnknownFormat = errors.New("stereo: unknown stereo format")
)

// Stage names one step of presentation context creation.
type Stage string

// Creation stages, in acquisition order.
const (
	StageAllocator   Stage = "allocator"
	StageDisplay     Stage = "display connection"
	StageInitialize  Stage = "display initialization"
	StageDrawable    Stage = "drawable"
	StageConfig      Stage = "config"
	StageSurface     Stage = "surface"
	StageContext     Stage = "context"
	StageMakeCurrent Stage = "make current"
)

// StageError identifies the creation stage that failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stereo: create %s: %v", e.Stage, e.Err)
}

// Unwrap exposes both ErrResourceCreation and the underlying error.
func (e *StageError) Unwrap() []error {
	return []error{ErrResourceCreation, e.Err}
}

func stageError(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
