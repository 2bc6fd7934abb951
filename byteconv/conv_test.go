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

package byteconv

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestBtoh(t *testing.T) {
	tests := []struct {
		name     string
		src      []byte
		n        int
		expected string
	}{
		{"full width", []byte{0xAB, 0x0C}, 4, "AB0C"},
		{"truncated", []byte{0x02, 0x00}, 3, "200"},
		{"single digit", []byte{0x0F}, 1, "F"},
		{"clamped", []byte{0x1E}, 8, "1E"},
		{"negative", []byte{0x1E}, -1, ""},
		{"empty", nil, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Btoh(tt.src, tt.n))
		})
	}
}

func TestU16toh(t *testing.T) {
	assert.Equal(t, "FFE", U16toh(0x0FFE, 3))
	assert.Equal(t, "00E0", U16toh(0x00E0, 4))
	assert.Equal(t, "5", U8toh(0x05, 1))
	assert.Equal(t, "05", U8toh(0x05, 2))
}
