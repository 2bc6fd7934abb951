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

// Package byteconv formats bytes as fixed width upper-case hex.
package byteconv

const hextableUpper = "0123456789ABCDEF"

// Btoh returns the last n hex digits of src. n is clamped to the number of
// digits available.
func Btoh(src []byte, n int) string {
	dst := make([]byte, len(src)*2)
	j := 0
	for _, v := range src {
		dst[j] = hextableUpper[v>>4]
		dst[j+1] = hextableUpper[v&0x0f]
		j += 2
	}
	n = min(max(n, 0), len(dst))
	return string(dst[len(dst)-n:])
}

// U16tob splits i into big-endian bytes.
func U16tob(i uint16) []byte {
	var b [2]byte
	b[0] = byte(i >> 8)
	b[1] = byte(i)
	return b[:]
}

// U16toh formats the low n hex digits of i.
func U16toh(i uint16, n int) string {
	return Btoh(U16tob(i), n)
}

// U8toh formats the low n hex digits of i.
func U8toh(i uint8, n int) string {
	return Btoh([]byte{i}, n)
}
