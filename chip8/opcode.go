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

import (
	"github.com/senojj/emul8/byteconv"
)

// Opcode is a 16bit instruction word.
type Opcode uint16

func (o Opcode) Kind() uint8 {
	return uint8((uint16(o) & 0xF000) >> 12)
}

func (o Opcode) X() uint8 {
	return uint8((uint16(o) & 0x0F00) >> 8)
}

func (o Opcode) Y() uint8 {
	return uint8((uint16(o) & 0x00F0) >> 4)
}

func (o Opcode) N() uint8 {
	return uint8(uint16(o) & 0x000F)
}

func (o Opcode) NN() uint8 {
	return uint8(uint16(o) & 0x00FF)
}

func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

// Class identifies one instruction of the CHIP-8 instruction set.
type Class uint8

const (
	Invalid Class = iota
	ClearScreen
	Return
	Jump
	Call
	SkipEqualNN
	SkipNotEqualNN
	SkipEqualY
	LoadNN
	AddNN
	LoadY
	Or
	And
	Xor
	AddY
	SubY
	ShiftRight
	SubX
	ShiftLeft
	SkipNotEqualY
	LoadIndex
	JumpOffset
	Random
	DrawSprite
	SkipKeyDown
	SkipKeyUp
	LoadDelay
	AwaitKey
	SetDelay
	SetSound
	AddIndex
	LoadGlyph
	StoreBCD
	StoreRegisters
	LoadRegisters
)

var mnemonics = [...]string{
	Invalid:        "DW",
	ClearScreen:    "CLS",
	Return:         "RET",
	Jump:           "JP",
	Call:           "CALL",
	SkipEqualNN:    "SE",
	SkipNotEqualNN: "SNE",
	SkipEqualY:     "SE",
	LoadNN:         "LD",
	AddNN:          "ADD",
	LoadY:          "LD",
	Or:             "OR",
	And:            "AND",
	Xor:            "XOR",
	AddY:           "ADD",
	SubY:           "SUB",
	ShiftRight:     "SHR",
	SubX:           "SUBN",
	ShiftLeft:      "SHL",
	SkipNotEqualY:  "SNE",
	LoadIndex:      "LD",
	JumpOffset:     "JP",
	Random:         "RND",
	DrawSprite:     "DRW",
	SkipKeyDown:    "SKP",
	SkipKeyUp:      "SKNP",
	LoadDelay:      "LD",
	AwaitKey:       "LD",
	SetDelay:       "LD",
	SetSound:       "LD",
	AddIndex:       "ADD",
	LoadGlyph:      "LD",
	StoreBCD:       "LD",
	StoreRegisters: "LD",
	LoadRegisters:  "LD",
}

func (c Class) String() string {
	if int(c) >= len(mnemonics) {
		return mnemonics[Invalid]
	}
	return mnemonics[c]
}

// Decode resolves an instruction word to its class. The top nibble selects
// the family; families 0, E and F are keyed further by the low byte and
// family 8 by the low nibble.
func Decode(op Opcode) Class {
	switch op.Kind() {
	case 0x0:
		switch uint16(op) {
		case 0x00E0:
			return ClearScreen
		case 0x00EE:
			return Return
		}
	case 0x1:
		return Jump
	case 0x2:
		return Call
	case 0x3:
		return SkipEqualNN
	case 0x4:
		return SkipNotEqualNN
	case 0x5:
		if op.N() == 0x0 {
			return SkipEqualY
		}
	case 0x6:
		return LoadNN
	case 0x7:
		return AddNN
	case 0x8:
		switch op.N() {
		case 0x0:
			return LoadY
		case 0x1:
			return Or
		case 0x2:
			return And
		case 0x3:
			return Xor
		case 0x4:
			return AddY
		case 0x5:
			return SubY
		case 0x6:
			return ShiftRight
		case 0x7:
			return SubX
		case 0xE:
			return ShiftLeft
		}
	case 0x9:
		if op.N() == 0x0 {
			return SkipNotEqualY
		}
	case 0xA:
		return LoadIndex
	case 0xB:
		return JumpOffset
	case 0xC:
		return Random
	case 0xD:
		return DrawSprite
	case 0xE:
		switch op.NN() {
		case 0x9E:
			return SkipKeyDown
		case 0xA1:
			return SkipKeyUp
		}
	case 0xF:
		switch op.NN() {
		case 0x07:
			return LoadDelay
		case 0x0A:
			return AwaitKey
		case 0x15:
			return SetDelay
		case 0x18:
			return SetSound
		case 0x1E:
			return AddIndex
		case 0x29:
			return LoadGlyph
		case 0x33:
			return StoreBCD
		case 0x55:
			return StoreRegisters
		case 0x65:
			return LoadRegisters
		}
	}
	return Invalid
}

// String disassembles the instruction word. Words that do not decode are
// rendered as a DW data directive.
func (op Opcode) String() string {
	class := Decode(op)
	str := class.String()

	vx := "V" + byteconv.U8toh(op.X(), 1)
	vy := "V" + byteconv.U8toh(op.Y(), 1)

	switch class {
	case ClearScreen, Return:
	case Jump, Call:
		str += " " + byteconv.U16toh(op.NNN(), 3)
	case SkipEqualNN, SkipNotEqualNN, LoadNN, AddNN, Random:
		str += " " + vx + ", " + byteconv.U8toh(op.NN(), 2)
	case SkipEqualY, SkipNotEqualY, LoadY, Or, And, Xor, AddY, SubY, SubX:
		str += " " + vx + ", " + vy
	case ShiftRight, ShiftLeft, SkipKeyDown, SkipKeyUp:
		str += " " + vx
	case LoadIndex:
		str += " I, " + byteconv.U16toh(op.NNN(), 3)
	case JumpOffset:
		str += " V0, " + byteconv.U16toh(op.NNN(), 3)
	case DrawSprite:
		str += " " + vx + ", " + vy + ", " + byteconv.U8toh(op.N(), 1)
	case LoadDelay:
		str += " " + vx + ", DT"
	case AwaitKey:
		str += " " + vx + ", K"
	case SetDelay:
		str += " DT, " + vx
	case SetSound:
		str += " ST, " + vx
	case AddIndex:
		str += " I, " + vx
	case LoadGlyph:
		str += " F, " + vx
	case StoreBCD:
		str += " B, " + vx
	case StoreRegisters:
		str += " [I], " + vx
	case LoadRegisters:
		str += " " + vx + ", [I]"
	default:
		str += " " + byteconv.U16toh(uint16(op), 4)
	}
	return str
}
