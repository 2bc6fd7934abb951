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
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/retroenv/retrogolib/assert"
)

func TestConsolePrepend(t *testing.T) {
	test.NewTempApp(t)

	c := NewConsole(3)
	first := c.lines[0]

	c.Prepend("CLS")
	c.Prepend("JP 200")
	c.Prepend("RET")
	c.Prepend("LD V0, 05")

	assert.Equal(t, "LD V0, 05", c.lines[0].Text)
	assert.Equal(t, "RET", c.lines[1].Text)
	assert.Equal(t, "JP 200", c.lines[2].Text)

	// The labels are reused rather than replaced.
	assert.True(t, first == c.lines[0])
	assert.Equal(t, 3, len(c.container.Objects))
}
