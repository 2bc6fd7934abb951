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
	"bufio"
	"io"

	"github.com/senojj/emul8/byteconv"
	"github.com/senojj/emul8/chip8"
)

// Disassemble writes one line per instruction word of a program image
// loaded at the program start address. A trailing odd byte is listed as
// data.
func Disassemble(w io.Writer, image []byte) error {
	bw := bufio.NewWriter(w)

	addr := uint16(chip8.ProgramStartAddress)
	for i := 0; i < len(image); i += 2 {
		if i+1 == len(image) {
			bw.WriteString(byteconv.U16toh(addr, 3) + "  " + byteconv.U8toh(image[i], 2) + "    DB " + byteconv.U8toh(image[i], 2) + "\n")
			break
		}

		op := chip8.Opcode(uint16(image[i])<<8 | uint16(image[i+1]))
		bw.WriteString(byteconv.U16toh(addr, 3) + "  " + byteconv.U16toh(uint16(op), 4) + "  " + op.String() + "\n")
		addr += 2
	}
	return bw.Flush()
}

// RenderText writes the framebuffer as text, one line per row.
func RenderText(w io.Writer, display []byte) error {
	bw := bufio.NewWriter(w)

	line := make([]byte, chip8.Width+1)
	line[chip8.Width] = '\n'

	for y := range chip8.Height {
		for x := range chip8.Width {
			line[x] = '.'
			if display[x+y*chip8.Width] == 1 {
				line[x] = '#'
			}
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
