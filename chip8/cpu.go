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

// Package chip8 implements the CHIP-8 virtual CPU: memory, registers, call
// stack, framebuffer, key matrix and the two countdown timers.
//
// A VM is not safe for concurrent use. Step and TickTimers must be called
// from one goroutine at a time, the driver owns the pacing of both.
package chip8

import (
	"math/rand/v2"
	"time"
)

const (
	MemorySize          = 4096
	RegisterCount       = 16
	StackSize           = 16
	KeyCount            = 16
	FontStartAddress    = 0x50
	GlyphSize           = 5
	ProgramStartAddress = 0x200
	MaxImageSize        = MemorySize - ProgramStartAddress
	AddressMask         = 0x0FFF
	CarryFlag           = 0xF

	TimerRate time.Duration = time.Second / 60  // 60hz
	ClockRate time.Duration = time.Second / 700 // 700hz

	Width  int = 64
	Height int = 32
	Area   int = Width * Height
)

// Info reports the state of the VM after a call to Step.
type Info uint8

const (
	Delay Info = 1 << iota
	Sound
	Redraw
	Waiting
)

var fontSet = [...]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

type VM struct {
	memory  [MemorySize]byte
	v       [RegisterCount]byte
	keys    [KeyCount]bool
	display [Area]byte
	stack   [StackSize]uint16
	sp      uint8
	pc      uint16
	i       uint16
	delay   uint8
	sound   uint8

	// awaiting is set while an Fx0A instruction is unresolved. awaitX names
	// the register that receives the key.
	awaiting bool
	awaitX   uint8

	// fault latches a stack error. The VM will not execute again until Reset.
	fault error

	rand *rand.Rand
}

// Option configures a VM created by New.
type Option func(*VM)

// WithRand replaces the random source used by the RND instruction.
func WithRand(r *rand.Rand) Option {
	return func(vm *VM) {
		vm.rand = r
	}
}

// WithSeed seeds the random source used by the RND instruction so that runs
// are repeatable.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)))
}

func New(opts ...Option) *VM {
	vm := &VM{}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.rand == nil {
		vm.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	vm.Reset()
	return vm
}

// Reset returns the VM to its power-on state. The random source is kept.
func (vm *VM) Reset() {
	clear(vm.memory[:])
	clear(vm.v[:])
	clear(vm.keys[:])
	clear(vm.display[:])
	clear(vm.stack[:])

	vm.sp = 0
	vm.pc = ProgramStartAddress
	vm.i = 0
	vm.delay = 0
	vm.sound = 0
	vm.awaiting = false
	vm.awaitX = 0
	vm.fault = nil

	copy(vm.memory[FontStartAddress:], fontSet[:])
}

// Load copies a program image into memory at ProgramStartAddress.
func (vm *VM) Load(image []byte) error {
	if len(image) > MaxImageSize {
		return &ImageTooLargeError{Size: len(image)}
	}
	copy(vm.memory[ProgramStartAddress:], image)
	return nil
}

// WriteMemory copies data into memory starting at loc and returns the number
// of bytes written. Copying stops at the end of the address space.
func (vm *VM) WriteMemory(loc uint16, data []byte) int {
	if int(loc) >= MemorySize {
		return 0
	}
	return copy(vm.memory[loc:], data)
}

// ReadMemory copies memory starting at loc into data and returns the number
// of bytes read.
func (vm *VM) ReadMemory(loc uint16, data []byte) int {
	if int(loc) >= MemorySize {
		return 0
	}
	return copy(data, vm.memory[loc:])
}

// Display returns the framebuffer, one byte per pixel in row-major order. A
// value of 1 is an on pixel. The slice aliases VM state and must be treated
// as read-only.
func (vm *VM) Display() []byte {
	return vm.display[:]
}

// Pixel reports whether the pixel at x, y is on. Coordinates wrap.
func (vm *VM) Pixel(x, y int) bool {
	x &= Width - 1
	y &= Height - 1
	return vm.display[x+y*Width] == 1
}

func (vm *VM) SetKey(key uint8, pressed bool) {
	vm.keys[key&0x0F] = pressed
}

func (vm *VM) Key(key uint8) bool {
	return vm.keys[key&0x0F]
}

func (vm *VM) Register(x uint8) byte {
	return vm.v[x&0x0F]
}

func (vm *VM) Index() uint16 {
	return vm.i
}

func (vm *VM) ProgramCounter() uint16 {
	return vm.pc
}

func (vm *VM) StackDepth() int {
	return int(vm.sp)
}

func (vm *VM) DelayTimer() uint8 {
	return vm.delay
}

func (vm *VM) SoundTimer() uint8 {
	return vm.sound
}

// SoundActive reports whether a tone should be playing.
func (vm *VM) SoundActive() bool {
	return vm.sound > 0
}

// Waiting reports whether the VM is suspended on an Fx0A instruction and, if
// so, which register will receive the key.
func (vm *VM) Waiting() (uint8, bool) {
	return vm.awaitX, vm.awaiting
}

// Fault returns the stack error that halted the VM, if any.
func (vm *VM) Fault() error {
	return vm.fault
}

// OpcodeAt assembles the big-endian instruction word at loc.
func (vm *VM) OpcodeAt(loc uint16) Opcode {
	high := uint16(vm.memory[loc&AddressMask])
	low := uint16(vm.memory[(loc+1)&AddressMask])
	return Opcode((high << 8) | low)
}

// DrawSprite XORs an n row sprite read from memory at I onto the framebuffer
// at (x, y). Both the origin and every pixel wrap around the screen edges.
// Returns true if any pixel was turned off.
func (vm *VM) DrawSprite(x, y, n byte) bool {
	startX := int(x) & (Width - 1)
	startY := int(y) & (Height - 1)

	collision := false

	for row := range int(n) {
		sprite := vm.memory[(vm.i+uint16(row))&AddressMask]
		py := (startY + row) & (Height - 1)

		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}

			px := (startX + col) & (Width - 1)
			index := px + py*Width

			if vm.display[index] == 1 {
				collision = true
			}
			vm.display[index] ^= 1
		}
	}
	return collision
}

// Step executes one instruction cycle. While the VM is waiting on a key press
// only the key matrix is inspected.
func (vm *VM) Step() (Info, error) {
	if vm.fault != nil {
		return vm.status(), vm.fault
	}

	var info Info

	if vm.awaiting {
		if key, ok := vm.pressedKey(); ok {
			vm.v[vm.awaitX] = key
			vm.awaiting = false
			vm.pc = (vm.pc + 2) & AddressMask
		}
		return info | vm.status(), nil
	}

	pc := vm.pc
	op := vm.OpcodeAt(pc)
	vm.pc = (pc + 2) & AddressMask

	err := vm.execute(op, pc, &info)
	if err != nil && !isUnsupported(err) {
		vm.fault = err
	}
	return info | vm.status(), err
}

// TickTimers decrements the delay and sound timers, stopping at zero.
func (vm *VM) TickTimers() {
	if vm.delay > 0 {
		vm.delay--
	}
	if vm.sound > 0 {
		vm.sound--
	}
}

func (vm *VM) status() Info {
	var info Info
	if vm.delay > 0 {
		info |= Delay
	}
	if vm.sound > 0 {
		info |= Sound
	}
	if vm.awaiting {
		info |= Waiting
	}
	return info
}

// pressedKey returns the lowest pressed key.
func (vm *VM) pressedKey() (uint8, bool) {
	for i := range uint8(KeyCount) {
		if vm.keys[i] {
			return i, true
		}
	}
	return 0, false
}
