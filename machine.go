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
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/chip8"
	"golang.org/x/sync/errgroup"
)

// Snapshot is a copy of the VM state taken after an instruction cycle.
type Snapshot struct {
	Opcode     chip8.Opcode // instruction executed by the cycle
	Info       chip8.Info
	PC         uint16
	Index      uint16
	StackDepth int
	Registers  [chip8.RegisterCount]byte
	Display    [chip8.Area]byte
}

// Machine drives a VM. It runs the instruction clock and the timer clock
// and serialises every access to the VM, which is not safe for concurrent
// use on its own.
type Machine struct {
	mu       sync.Mutex
	vm       *chip8.VM
	cfg      Config
	logger   *log.Logger
	observer func(Snapshot)

	paused atomic.Bool
	next   atomic.Bool
}

func NewMachine(vm *chip8.VM, cfg Config, logger *log.Logger) *Machine {
	return &Machine{
		vm:     vm,
		cfg:    cfg,
		logger: logger,
	}
}

// OnStep registers a function called after every instruction cycle. It must
// be set before Run.
func (m *Machine) OnStep(fn func(Snapshot)) {
	m.observer = fn
}

// Load resets the VM and loads a program image.
func (m *Machine) Load(image []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.vm.Reset()
	if err := m.vm.Load(image); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	m.logger.Debug("Program loaded", log.Int("size", len(image)))
	return nil
}

// SetKey updates the key matrix between instruction cycles.
func (m *Machine) SetKey(key uint8, pressed bool) {
	m.mu.Lock()
	m.vm.SetKey(key, pressed)
	m.mu.Unlock()
}

func (m *Machine) Pause() {
	m.paused.Store(true)
}

func (m *Machine) Resume() {
	m.paused.Store(false)
}

func (m *Machine) TogglePause() {
	for {
		paused := m.paused.Load()
		if m.paused.CompareAndSwap(paused, !paused) {
			return
		}
	}
}

func (m *Machine) Paused() bool {
	return m.paused.Load()
}

// StepOnce lets a single instruction cycle run while paused.
func (m *Machine) StepOnce() {
	m.next.Store(true)
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(m.vm.OpcodeAt(m.vm.ProgramCounter()), 0)
}

// Run executes the program until ctx is cancelled or the VM fails. Unsupported
// opcodes and stack faults both halt the machine.
func (m *Machine) Run(ctx context.Context) error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}

	m.logger.Info("Machine started",
		log.String("clock", m.cfg.ClockRate.String()),
		log.String("timer", m.cfg.TimerRate.String()))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.runClock(ctx)
	})
	g.Go(func() error {
		return m.runTimers(ctx)
	})

	err := g.Wait()
	if err != nil {
		m.logger.Error("Machine halted", err)
		return err
	}
	m.logger.Info("Machine stopped")
	return nil
}

// RunCycles executes n instruction cycles without real-time pacing, ticking
// the timers at the configured ratio of instruction cycles to timer ticks.
func (m *Machine) RunCycles(n int) error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}

	perTick := m.cfg.cyclesPerTick()
	for cycle := 1; cycle <= n; cycle++ {
		if err := m.cycle(); err != nil {
			return err
		}
		if cycle%perTick == 0 {
			m.tick()
		}
	}
	return nil
}

func (m *Machine) runClock(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.ClockRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if m.paused.Load() && !m.next.CompareAndSwap(true, false) {
			continue
		}

		if err := m.cycle(); err != nil {
			return err
		}
	}
}

func (m *Machine) runTimers(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.TimerRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if m.paused.Load() {
			continue
		}
		m.tick()
	}
}

func (m *Machine) tick() {
	m.mu.Lock()
	m.vm.TickTimers()
	m.mu.Unlock()
}

// cycle runs one instruction cycle and reports it to the observer.
func (m *Machine) cycle() error {
	m.mu.Lock()
	pc := m.vm.ProgramCounter()
	op := m.vm.OpcodeAt(pc)
	info, err := m.vm.Step()

	var snap Snapshot
	if m.observer != nil {
		snap = m.snapshot(op, info)
	}
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("executing %s: %w", op, err)
	}

	if info&chip8.Waiting == 0 {
		m.logger.Debug("Executed",
			log.Uint16("pc", pc),
			log.Uint16("opcode", uint16(op)),
			log.String("instruction", op.String()))
	}

	if m.observer != nil {
		m.observer(snap)
	}
	return nil
}

// snapshot must be called with the lock held.
func (m *Machine) snapshot(op chip8.Opcode, info chip8.Info) Snapshot {
	snap := Snapshot{
		Opcode:     op,
		Info:       info,
		PC:         m.vm.ProgramCounter(),
		Index:      m.vm.Index(),
		StackDepth: m.vm.StackDepth(),
	}
	for x := range uint8(chip8.RegisterCount) {
		snap.Registers[x] = m.vm.Register(x)
	}
	copy(snap.Display[:], m.vm.Display())
	return snap
}
