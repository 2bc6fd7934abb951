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
	"errors"
	"fmt"
)

var (
	ErrUnsupportedOpcode = errors.New("unsupported opcode")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrImageTooLarge     = errors.New("image too large")
)

// UnsupportedOpcodeError is returned by Step for an instruction word that
// does not decode. PC is the address the word was fetched from.
type UnsupportedOpcodeError struct {
	Opcode Opcode
	PC     uint16
}

func (e *UnsupportedOpcodeError) Error() string {
	return fmt.Sprintf("unsupported opcode %04X at %03X", uint16(e.Opcode), e.PC)
}

func (e *UnsupportedOpcodeError) Unwrap() error {
	return ErrUnsupportedOpcode
}

// StackError is a call stack fault. It halts the VM.
type StackError struct {
	Err error
	PC  uint16
}

func (e *StackError) Error() string {
	return fmt.Sprintf("%v at %03X", e.Err, e.PC)
}

func (e *StackError) Unwrap() error {
	return e.Err
}

type ImageTooLargeError struct {
	Size int
}

func (e *ImageTooLargeError) Error() string {
	return fmt.Sprintf("image too large: %d bytes, limit is %d", e.Size, MaxImageSize)
}

func (e *ImageTooLargeError) Unwrap() error {
	return ErrImageTooLarge
}

func isUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedOpcode)
}
