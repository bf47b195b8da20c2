// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

// releaseStack records how to undo each acquisition so a failed
// construction can release everything acquired so far, newest first.
type releaseStack struct {
	fns []func()
}

func (s *releaseStack) push(fn func()) {
	s.fns = append(s.fns, fn)
}

// unwind runs the recorded releases in reverse order and empties the stack.
func (s *releaseStack) unwind() {
	for i := len(s.fns) - 1; i >= 0; i-- {
		s.fns[i]()
	}
	s.fns = nil
}

// disarm forgets the recorded releases once ownership moved elsewhere.
func (s *releaseStack) disarm() {
	s.fns = nil
}
