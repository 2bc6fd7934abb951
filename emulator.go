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
	"errors"
	"image"
	"image/color"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/retroenv/retrogolib/log"
	"github.com/senojj/emul8/byteconv"
	"github.com/senojj/emul8/chip8"
)

// traceLines is the number of executed instructions listed in the window.
const traceLines = 9

var keyMap = map[fyne.KeyName]uint8{
	fyne.Key1: 0x1, fyne.Key2: 0x2, fyne.Key3: 0x3, fyne.Key4: 0xC,
	fyne.KeyQ: 0x4, fyne.KeyW: 0x5, fyne.KeyE: 0x6, fyne.KeyR: 0xD,
	fyne.KeyA: 0x7, fyne.KeyS: 0x8, fyne.KeyD: 0x9, fyne.KeyF: 0xE,
	fyne.KeyZ: 0xA, fyne.KeyX: 0x0, fyne.KeyC: 0xB, fyne.KeyV: 0xF,
}

// Emulator is the desktop front-end. It renders the framebuffer, shows the
// register state and maps the keyboard onto the keypad.
type Emulator struct {
	machine *Machine
	cfg     Config
	logger  *log.Logger
}

func NewEmulator(machine *Machine, cfg Config, logger *log.Logger) *Emulator {
	return &Emulator{
		machine: machine,
		cfg:     cfg,
		logger:  logger,
	}
}

func (e *Emulator) onKeyDown(k *fyne.KeyEvent) {
	if hex, ok := keyMap[k.Name]; ok {
		e.machine.SetKey(hex, true)
	}
}

func (e *Emulator) onKeyUp(k *fyne.KeyEvent) {
	switch k.Name {
	case fyne.KeyP:
		e.machine.TogglePause()
		return
	case fyne.KeyN:
		e.machine.StepOnce()
		return
	}

	if hex, ok := keyMap[k.Name]; ok {
		e.machine.SetKey(hex, false)
	}
}

type Console struct {
	lines     []*widget.Label
	container *fyne.Container
}

func NewConsole(capacity int) *Console {
	lines := make([]*widget.Label, capacity)
	objects := make([]fyne.CanvasObject, capacity)
	for i := range capacity {
		lines[i] = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
		objects[i] = lines[i]
	}
	return &Console{
		lines:     lines,
		container: container.NewVBox(objects...),
	}
}

// Prepend adds a line at the top, dropping the oldest line.
func (o *Console) Prepend(msg string) {
	for i := len(o.lines) - 1; i > 0; i-- {
		o.lines[i].SetText(o.lines[i-1].Text)
	}
	if len(o.lines) > 0 {
		o.lines[0].SetText(msg)
	}
}

func (o *Console) Object() fyne.CanvasObject {
	return o.container
}

func registerText(x uint8, value byte) string {
	return "V" + byteconv.U8toh(x, 1) + ": " + byteconv.U8toh(value, 2)
}

func soundText(info chip8.Info) string {
	if info&chip8.Sound != 0 {
		return "Sound: on"
	}
	return "Sound: off"
}

// Run opens the window and runs the machine until the window is closed or
// the machine halts.
func (e *Emulator) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := app.New()
	w := a.NewWindow("Chip-8 Emulator")

	scale := float32(e.cfg.Scale)

	// Create a back-buffer for the pixel data
	buffer := image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))

	screen := canvas.NewImageFromImage(buffer)
	screen.FillMode = canvas.ImageFillStretch  // Scales the grid to window size
	screen.ScaleMode = canvas.ImageScalePixels // Maintains "pixelated" retro look

	canv, ok := w.Canvas().(desktop.Canvas) // Extension that exposes OnKeyUp event
	if !ok {
		return errors.New("emulator cannot be run on mobile")
	}
	canv.SetOnKeyDown(e.onKeyDown)
	canv.SetOnKeyUp(e.onKeyUp)

	imageContent := container.New(
		layout.NewGridWrapLayout(fyne.NewSize(float32(chip8.Width)*scale, float32(chip8.Height)*scale)),
		screen,
	)

	opcodeData := NewConsole(traceLines)
	opcodeContent := container.New(
		layout.NewGridWrapLayout(fyne.NewSize(125, float32(chip8.Height))),
		opcodeData.Object(),
	)

	initial := e.machine.Snapshot()

	registerData := make([]string, chip8.RegisterCount)
	for x := range uint8(chip8.RegisterCount) {
		registerData[x] = registerText(x, initial.Registers[x])
	}
	boundRegisters := binding.BindStringList(&registerData)

	registerList := widget.NewListWithData(
		boundRegisters,
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(di binding.DataItem, obj fyne.CanvasObject) {
			s, _ := di.(binding.String).Get()
			obj.(*widget.Label).SetText(s)
		},
	)

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.MediaPlayIcon(), e.machine.Resume),
		widget.NewToolbarAction(theme.MediaPauseIcon(), e.machine.Pause),
		widget.NewToolbarAction(theme.MediaSkipNextIcon(), e.machine.StepOnce),
	)

	programCounter := widget.NewLabel("PC: " + byteconv.U16toh(initial.PC, 3))
	index := widget.NewLabel("I: " + byteconv.U16toh(initial.Index, 3))
	stackDepth := widget.NewLabel("Stack: " + strconv.Itoa(initial.StackDepth))
	sound := widget.NewLabel(soundText(initial.Info))

	hbox := container.NewHBox(
		layout.NewSpacer(), programCounter,
		layout.NewSpacer(), index,
		layout.NewSpacer(), stackDepth,
		layout.NewSpacer(), sound,
		layout.NewSpacer(),
	)

	box := container.NewBorder(toolbar, hbox, opcodeContent, registerList, imageContent)

	w.SetContent(box)
	w.Resize(fyne.NewSize(float32(chip8.Width)*scale, float32(chip8.Height)*scale))
	w.SetFixedSize(true)

	pending := newFrame(traceLines)
	e.machine.OnStep(pending.record)

	update := func() {
		s, trace, redraw, ok := pending.take()
		if !ok {
			return
		}

		fyne.Do(func() {
			if redraw {
				for i, val := range s.Display {
					x, y := i%chip8.Width, i/chip8.Width
					c := color.Black
					if val == 1 {
						c = color.White
					}
					buffer.Set(x, y, c) // Directly sets pixels in the buffer
				}
				screen.Refresh()
			}

			for _, line := range trace {
				opcodeData.Prepend(line)
			}

			for x := range uint8(chip8.RegisterCount) {
				registerData[x] = registerText(x, s.Registers[x])
			}
			_ = boundRegisters.Reload()

			programCounter.SetText("PC: " + byteconv.U16toh(s.PC, 3))
			index.SetText("I: " + byteconv.U16toh(s.Index, 3))
			stackDepth.SetText("Stack: " + strconv.Itoa(s.StackDepth))
			sound.SetText(soundText(s.Info))
		})
	}

	// The window is updated at the timer rate, not once per instruction.
	go func() {
		ticker := time.NewTicker(e.cfg.TimerRate)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				update()
			}
		}
	}()

	runErr := make(chan error, 1)
	go func() {
		err := e.machine.Run(ctx)
		if err != nil {
			fyne.Do(func() {
				w.SetTitle("Chip-8 Emulator (halted)")
			})
		}
		runErr <- err
	}()

	w.ShowAndRun()
	e.logger.Debug("Window closed")
	cancel()
	return <-runErr
}
