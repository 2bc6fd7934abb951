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

package chip8

// execute runs a single decoded instruction. pc is the address op was fetched
// from; vm.pc already points at the following instruction.
func (vm *VM) execute(op Opcode, pc uint16, info *Info) error {
	x, y := op.X(), op.Y()

	switch Decode(op) {
	case ClearScreen:
		vm.clearScreen(info)
	case Return:
		return vm.returnFromSubroutine(pc)
	case Jump:
		vm.pc = op.NNN()
	case Call:
		return vm.callSubroutine(op.NNN(), pc)
	case SkipEqualNN:
		vm.skipIf(vm.v[x] == op.NN())
	case SkipNotEqualNN:
		vm.skipIf(vm.v[x] != op.NN())
	case SkipEqualY:
		vm.skipIf(vm.v[x] == vm.v[y])
	case LoadNN:
		vm.v[x] = op.NN()
	case AddNN:
		vm.v[x] += op.NN()
	case LoadY:
		vm.v[x] = vm.v[y]
	case Or:
		vm.v[x] |= vm.v[y]
	case And:
		vm.v[x] &= vm.v[y]
	case Xor:
		vm.v[x] ^= vm.v[y]
	case AddY:
		vm.addXY(x, y)
	case SubY:
		vm.subtractYFromX(x, y)
	case ShiftRight:
		vm.shiftRightX(x)
	case SubX:
		vm.subtractXFromY(x, y)
	case ShiftLeft:
		vm.shiftLeftX(x)
	case SkipNotEqualY:
		vm.skipIf(vm.v[x] != vm.v[y])
	case LoadIndex:
		vm.i = op.NNN()
	case JumpOffset:
		vm.pc = (op.NNN() + uint16(vm.v[0x0])) & AddressMask
	case Random:
		vm.v[x] = byte(vm.rand.Uint32N(256)) & op.NN()
	case DrawSprite:
		vm.drawSprite(x, y, op.N(), info)
	case SkipKeyDown:
		vm.skipIf(vm.keyDown(vm.v[x]))
	case SkipKeyUp:
		vm.skipIf(!vm.keyDown(vm.v[x]))
	case LoadDelay:
		vm.v[x] = vm.delay
	case AwaitKey:
		vm.awaitKey(x, pc)
	case SetDelay:
		vm.delay = vm.v[x]
	case SetSound:
		vm.sound = vm.v[x]
	case AddIndex:
		vm.i = (vm.i + uint16(vm.v[x])) & AddressMask
	case LoadGlyph:
		vm.i = FontStartAddress + uint16(vm.v[x])*GlyphSize
	case StoreBCD:
		vm.binaryCodedDecimal(x)
	case StoreRegisters:
		vm.storeRegisters(x)
	case LoadRegisters:
		vm.loadRegisters(x)
	default:
		return &UnsupportedOpcodeError{Opcode: op, PC: pc}
	}
	return nil
}

func (vm *VM) skipIf(cond bool) {
	if cond {
		vm.pc = (vm.pc + 2) & AddressMask
	}
}

func (vm *VM) clearScreen(info *Info) {
	clear(vm.display[:])
	*info |= Redraw
}

func (vm *VM) callSubroutine(nnn, pc uint16) error {
	if int(vm.sp) >= len(vm.stack) {
		return &StackError{Err: ErrStackOverflow, PC: pc}
	}
	vm.stack[vm.sp] = vm.pc
	vm.sp++
	vm.pc = nnn
	return nil
}

func (vm *VM) returnFromSubroutine(pc uint16) error {
	if vm.sp == 0 {
		return &StackError{Err: ErrStackUnderflow, PC: pc}
	}
	vm.sp--
	vm.pc = vm.stack[vm.sp]
	return nil
}

// The arithmetic instructions write the result before the flag, so VF reads
// as the flag when it is also the destination.

func (vm *VM) addXY(x, y uint8) {
	sum := uint16(vm.v[x]) + uint16(vm.v[y])
	vm.v[x] = byte(sum)
	vm.v[CarryFlag] = byte(sum >> 8)
}

func (vm *VM) subtractYFromX(x, y uint8) {
	var flag byte
	if vm.v[x] >= vm.v[y] {
		flag = 1
	}
	vm.v[x] -= vm.v[y]
	vm.v[CarryFlag] = flag
}

func (vm *VM) subtractXFromY(x, y uint8) {
	var flag byte
	if vm.v[y] >= vm.v[x] {
		flag = 1
	}
	vm.v[x] = vm.v[y] - vm.v[x]
	vm.v[CarryFlag] = flag
}

func (vm *VM) shiftRightX(x uint8) {
	flag := vm.v[x] & 0x1
	vm.v[x] >>= 1
	vm.v[CarryFlag] = flag
}

func (vm *VM) shiftLeftX(x uint8) {
	flag := (vm.v[x] & 0x80) >> 7
	vm.v[x] <<= 1
	vm.v[CarryFlag] = flag
}

func (vm *VM) drawSprite(x, y, n uint8, info *Info) {
	vm.v[CarryFlag] = 0
	if vm.DrawSprite(vm.v[x], vm.v[y], n) {
		vm.v[CarryFlag] = 1
	}
	*info |= Redraw
}

// keyDown reports whether the key named by a register value is pressed.
// Values outside the keypad never match.
func (vm *VM) keyDown(key byte) bool {
	if int(key) >= KeyCount {
		return false
	}
	return vm.keys[key]
}

// awaitKey resolves at once if a key is already down. Otherwise the program
// counter is rewound onto the instruction and Step polls the keys until one
// is pressed.
func (vm *VM) awaitKey(x uint8, pc uint16) {
	if key, ok := vm.pressedKey(); ok {
		vm.v[x] = key
		return
	}
	vm.awaiting = true
	vm.awaitX = x
	vm.pc = pc
}

func (vm *VM) binaryCodedDecimal(x uint8) {
	// Double Dabble: shift the value into the BCD register one bit at a time,
	// adding 3 to any digit of 5 or more before the shift so that it carries
	// into the next digit.
	var bcd uint32

	val := uint32(vm.v[x])

	for i := range 8 {
		if (bcd & 0x00F) >= 0x005 {
			bcd += 0x003
		}
		if (bcd & 0x0F0) >= 0x050 {
			bcd += 0x030
		}
		if (bcd & 0xF00) >= 0x500 {
			bcd += 0x300
		}
		bcd = (bcd << 1) | ((val >> (7 - i)) & 1)
	}

	vm.memory[vm.i&AddressMask] = byte((bcd >> 8) & 0xF)     // Hundreds
	vm.memory[(vm.i+1)&AddressMask] = byte((bcd >> 4) & 0xF) // Tens
	vm.memory[(vm.i+2)&AddressMask] = byte(bcd & 0xF)        // Ones
}

func (vm *VM) storeRegisters(x uint8) {
	for r := uint16(0); r <= uint16(x); r++ {
		vm.memory[(vm.i+r)&AddressMask] = vm.v[r]
	}
}

func (vm *VM) loadRegisters(x uint8) {
	for r := uint16(0); r <= uint16(x); r++ {
		vm.v[r] = vm.memory[(vm.i+r)&AddressMask]
	}
}
