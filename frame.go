/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package emul8

import (
	"sync"

	"github.com/senojj/emul8/chip8"
)

// frame collects the cycles run since the window was last updated.
type frame struct {
	mu      sync.Mutex
	last    Snapshot
	trace   []string // newest last, at most capacity entries
	redraw  bool
	pending bool
}

func newFrame(capacity int) *frame {
	return &frame{trace: make([]string, 0, capacity)}
}

// record is called from the machine for every cycle.
func (f *frame) record(s Snapshot) {
	line := s.Opcode.String()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.last = s
	f.redraw = f.redraw || s.Info&chip8.Redraw != 0
	f.pending = true
	if cap(f.trace) == 0 {
		return
	}
	if len(f.trace) == cap(f.trace) {
		copy(f.trace, f.trace[1:])
		f.trace = f.trace[:len(f.trace)-1]
	}
	f.trace = append(f.trace, line)
}

// take returns the collected cycles and starts a new frame. ok is false if
// no cycle ran.
func (f *frame) take() (snap Snapshot, trace []string, redraw, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.pending {
		return Snapshot{}, nil, false, false
	}
	snap, redraw = f.last, f.redraw
	trace = append([]string(nil), f.trace...)
	f.trace = f.trace[:0]
	f.redraw = false
	f.pending = false
	return snap, trace, redraw, true
}
