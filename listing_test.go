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
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/senojj/emul8/chip8"
)

var expectedListing = `200  6005  LD V0, 05
202  A22A  LD I, 22A
204  D015  DRW V0, V1, 5
206  0123  DW 0123
208  1200  JP 200
20A  FF    DB FF
`

func TestDisassemble(t *testing.T) {
	image := append(words(0x6005, 0xA22A, 0xD015, 0x0123, 0x1200), 0xFF)

	var buf bytes.Buffer
	assert.NoError(t, Disassemble(&buf, image))
	assert.Equal(t, expectedListing, buf.String())
}

func TestRenderText(t *testing.T) {
	vm := chip8.New()
	assert.NoError(t, vm.Load(words(
		0x6000, // LD V0, 00
		0xF029, // LD F, V0
		0xD005, // DRW V0, V0, 5
	)))
	for range 3 {
		_, err := vm.Step()
		assert.NoError(t, err)
	}

	var buf bytes.Buffer
	assert.NoError(t, RenderText(&buf, vm.Display()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, chip8.Height, len(lines))
	assert.Equal(t, "####....", lines[0][:8])
	assert.Equal(t, "#..#....", lines[1][:8])
	assert.Equal(t, "####....", lines[4][:8])
	assert.Equal(t, strings.Repeat(".", chip8.Width), lines[5])
}
